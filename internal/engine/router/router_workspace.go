package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/consts"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// listTeams 当前用户的工作区列表
func (rt *Router) listTeams(c *fiber.Ctx) error {
	teams, err := rt.teamSvc.ListTeams(currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, teams)
}

// createTeam 创建工作区
func (rt *Router) createTeam(c *fiber.Ctx) error {
	var req model.CreateTeamReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	resp, err := rt.teamSvc.CreateTeam(&req, currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// currentWorkspace 当前工作区
func (rt *Router) currentWorkspace(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	resp, err := rt.teamSvc.GetTeam(teamId, currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// selectWorkspace 选择工作区, 写 HTTP-only cookie
// 仅允许选择存在成员关系的工作区
func (rt *Router) selectWorkspace(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	team, err := rt.tenantSvc.ResolveWorkspace(currentUserId(c), teamId)
	if err != nil {
		return failWith(c, err)
	}
	if team == nil || team.TeamId != teamId {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg, c.Path())
	}

	c.Cookie(&fiber.Cookie{
		Name:     consts.WorkspaceCookie,
		Value:    teamId,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().AddDate(0, 1, 0),
	})
	return http.WithRepNotDetail(c)
}

// deselectWorkspace 清除工作区 cookie
func (rt *Router) deselectWorkspace(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     consts.WorkspaceCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	return http.WithRepNotDetail(c)
}

// getTeam 工作区详情
func (rt *Router) getTeam(c *fiber.Ctx) error {
	resp, err := rt.teamSvc.GetTeam(c.Params("teamId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// updateTeam 更新工作区
func (rt *Router) updateTeam(c *fiber.Ctx) error {
	var req model.UpdateTeamReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.teamSvc.UpdateTeam(c.Params("teamId"), currentUserId(c), &req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// deleteTeam 删除工作区
func (rt *Router) deleteTeam(c *fiber.Ctx) error {
	if err := rt.teamSvc.DeleteTeam(c.Params("teamId"), currentUserId(c)); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// listMembers 成员列表
func (rt *Router) listMembers(c *fiber.Ctx) error {
	members, err := rt.teamSvc.ListMembers(c.Params("teamId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, members)
}

// removeMember 移除成员
func (rt *Router) removeMember(c *fiber.Ctx) error {
	if err := rt.teamSvc.RemoveMember(c.Params("teamId"), currentUserId(c), c.Params("userId")); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}
