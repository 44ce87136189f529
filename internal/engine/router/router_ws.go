package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// registerWs 注册 websocket 路由, 按工作区订阅消息广播
func (rt *Router) registerWs(app *fiber.App, auth fiber.Handler) {
	app.Use("/ws", auth, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})

	app.Get("/ws/:teamId", auth, func(c *fiber.Ctx) error {
		userId := currentUserId(c)
		teamId := c.Params("teamId")
		if err := rt.tenantSvc.RequireTeamMember(userId, teamId); err != nil {
			return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg, c.Path())
		}

		return websocket.New(func(conn *websocket.Conn) {
			rt.hub.Serve(conn, teamId, userId)
		})(c)
	})
}
