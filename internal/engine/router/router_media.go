package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// listMedia 媒体列表
func (rt *Router) listMedia(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	media, err := rt.mediaSvc.List(teamId, c.Query("projectId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, media)
}

// uploadMedia 上传文件, multipart 字段名 file, 可选 projectId
func (rt *Router) uploadMedia(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}
	f, err := fh.Open()
	if err != nil {
		return failWith(c, err)
	}
	defer f.Close()

	media, err := rt.mediaSvc.Upload(
		c.Context(), teamId, c.FormValue("projectId"), currentUserId(c),
		fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size,
	)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, media)
}

// mediaDownloadURL 预签名下载地址
func (rt *Router) mediaDownloadURL(c *fiber.Ctx) error {
	resp, err := rt.mediaSvc.DownloadURL(c.Context(), c.Params("mediaId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// deleteMedia 删除媒体, 上传者或项目 EDIT 权限
func (rt *Router) deleteMedia(c *fiber.Ctx) error {
	if err := rt.mediaSvc.Delete(c.Context(), c.Params("mediaId"), currentUserId(c)); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}
