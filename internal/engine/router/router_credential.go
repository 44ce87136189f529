package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// listCredentials 凭据列表, 不含明文
func (rt *Router) listCredentials(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	creds, err := rt.credentialSvc.ListCredentials(teamId, c.Query("projectId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, creds)
}

// createCredential 创建凭据
func (rt *Router) createCredential(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	var req model.CreateCredentialReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	cred, err := rt.credentialSvc.CreateCredential(teamId, currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, cred)
}

// updateCredential 更新凭据
func (rt *Router) updateCredential(c *fiber.Ctx) error {
	var req model.UpdateCredentialReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.credentialSvc.UpdateCredential(c.Params("credentialId"), currentUserId(c), &req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// deleteCredential 删除凭据
func (rt *Router) deleteCredential(c *fiber.Ctx) error {
	if err := rt.credentialSvc.DeleteCredential(c.Params("credentialId"), currentUserId(c)); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// revealCredential 查看明文, PIN 校验后 5 分钟内免 PIN
func (rt *Router) revealCredential(c *fiber.Ctx) error {
	var req model.RevealCredentialReq
	if err := c.BodyParser(&req); err != nil {
		// 解锁窗口内允许空请求体
		req.Pin = ""
	}
	resp, err := rt.credentialSvc.RevealCredential(c.Params("credentialId"), currentUserId(c), req.Pin)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}
