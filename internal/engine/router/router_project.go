package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// listProjects 当前工作区可见项目
func (rt *Router) listProjects(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	projects, err := rt.projectSvc.ListProjects(teamId, currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, projects)
}

// createProject 创建项目
func (rt *Router) createProject(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	var req model.CreateProjectReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	resp, err := rt.projectSvc.CreateProject(teamId, currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// getProject 项目详情
func (rt *Router) getProject(c *fiber.Ctx) error {
	resp, err := rt.projectSvc.GetProject(c.Params("projectId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// updateProject 更新项目
func (rt *Router) updateProject(c *fiber.Ctx) error {
	var req model.UpdateProjectReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.projectSvc.UpdateProject(c.Params("projectId"), currentUserId(c), &req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// deleteProject 删除项目
func (rt *Router) deleteProject(c *fiber.Ctx) error {
	if err := rt.projectSvc.DeleteProject(c.Params("projectId"), currentUserId(c)); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// listAccess 项目访问行
func (rt *Router) listAccess(c *fiber.Ctx) error {
	rows, err := rt.projectSvc.ListAccess(c.Params("projectId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, rows)
}

// grantAccess 显式授权
func (rt *Router) grantAccess(c *fiber.Ctx) error {
	var req model.GrantAccessReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.projectSvc.GrantAccess(c.Params("projectId"), currentUserId(c), &req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// revokeAccess 撤销授权
func (rt *Router) revokeAccess(c *fiber.Ctx) error {
	if err := rt.projectSvc.RevokeAccess(c.Params("projectId"), currentUserId(c), c.Params("userId")); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}
