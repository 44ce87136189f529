package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// listInvites 当前工作区邀请列表, 仅所有者
func (rt *Router) listInvites(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	invites, err := rt.inviteSvc.ListInvites(teamId, currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, invites)
}

// createInvite 创建邀请并投递邮件
func (rt *Router) createInvite(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	var req model.CreateInviteReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	inv, err := rt.inviteSvc.CreateInvite(teamId, currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, inv)
}

// acceptInvite 接受邀请, 不依赖工作区选择
func (rt *Router) acceptInvite(c *fiber.Ctx) error {
	var req model.AcceptInviteReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	inv, err := rt.inviteSvc.AcceptInvite(currentUserId(c), req.Token)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, inv)
}
