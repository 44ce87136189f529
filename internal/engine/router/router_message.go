package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// listChannels 频道列表, DIRECT 频道仅参与者可见
func (rt *Router) listChannels(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	channels, err := rt.messageSvc.ListChannels(teamId, currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, channels)
}

// createChannel 创建频道
func (rt *Router) createChannel(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	var req model.CreateChannelReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	ch, err := rt.messageSvc.CreateChannel(teamId, currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, ch)
}

// listMessages 消息分页, cursor 为 0 时取最新一页
func (rt *Router) listMessages(c *fiber.Ctx) error {
	cursor := uint64(c.QueryInt("cursor", 0))
	limit := c.QueryInt("limit", 50)

	page, err := rt.messageSvc.ListMessages(c.Params("channelId"), currentUserId(c), cursor, limit)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, page)
}

// postMessage 发送消息并广播
func (rt *Router) postMessage(c *fiber.Ctx) error {
	var req model.PostMessageReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	msg, err := rt.messageSvc.PostMessage(c.Params("channelId"), currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, msg)
}
