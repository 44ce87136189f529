// Copyright 2025 PulsePlan Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pulseplan/pulseplan/internal/engine/service"
	"github.com/pulseplan/pulseplan/internal/pkg/ws"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/http"
	"github.com/pulseplan/pulseplan/pkg/http/middleware"
	"github.com/pulseplan/pulseplan/pkg/version"
)

type Router struct {
	Http *http.Http

	cache cache.ICache
	hub   *ws.Hub

	tenantSvc     *service.TenantService
	userSvc       *service.UserService
	teamSvc       *service.TeamService
	projectSvc    *service.ProjectService
	taskSvc       *service.TaskService
	timesheetSvc  *service.TimesheetService
	credentialSvc *service.CredentialService
	inviteSvc     *service.InviteService
	messageSvc    *service.MessageService
	mediaSvc      *service.MediaService
}

func NewRouter(
	httpConf *http.Http,
	c cache.ICache,
	hub *ws.Hub,
	tenantSvc *service.TenantService,
	userSvc *service.UserService,
	teamSvc *service.TeamService,
	projectSvc *service.ProjectService,
	taskSvc *service.TaskService,
	timesheetSvc *service.TimesheetService,
	credentialSvc *service.CredentialService,
	inviteSvc *service.InviteService,
	messageSvc *service.MessageService,
	mediaSvc *service.MediaService,
) *Router {
	return &Router{
		Http:          httpConf,
		cache:         c,
		hub:           hub,
		tenantSvc:     tenantSvc,
		userSvc:       userSvc,
		teamSvc:       teamSvc,
		projectSvc:    projectSvc,
		taskSvc:       taskSvc,
		timesheetSvc:  timesheetSvc,
		credentialSvc: credentialSvc,
		inviteSvc:     inviteSvc,
		messageSvc:    messageSvc,
		mediaSvc:      mediaSvc,
	}
}

func (rt *Router) Router() *fiber.App {
	bodyLimit := rt.Http.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 100 * 1024 * 1024 // 100MB 默认值
	}

	app := fiber.New(fiber.Config{
		AppName:      "PulsePlan",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:    bodyLimit,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	app.Use(middleware.AccessLogMiddleware(rt.Http))

	// 中间件
	app.Use(
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.MetricsMiddleware(),
	)

	if rt.Http.PProf {
		app.Use(pprof.New(pprof.Config{Prefix: "/debug"}))
	}

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// 版本信息
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	rt.routerGroup(app)

	// 找不到路径时的处理 - 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c, http.NotFound.Code, "request path not found", c.Path())
	})

	return app
}

func (rt *Router) routerGroup(app *fiber.App) {
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.cache)
	workspace := rt.workspaceMiddleware()

	api := app.Group("/api/v1")

	// user
	user := api.Group("/user")
	{
		// not auth
		user.Post("/login", rt.login)
		user.Post("/register", rt.register)

		// auth
		user.Post("/logout", auth, rt.logout)
		user.Get("/refresh", auth, rt.refresh)
		user.Get("/info", auth, rt.getUserInfo)
		user.Post("/vaultPin", auth, rt.setVaultPin)
	}

	// users admin, 能力守卫在 handler 内
	users := api.Group("/users", auth, workspace)
	{
		users.Get("/", rt.listUsers)
		users.Post("/", rt.createUser)
		users.Put("/:userId", rt.updateUser)
		users.Delete("/:userId", rt.deleteUser)
		users.Post("/permission", rt.upsertPermission)
		users.Get("/capabilities", rt.getCapabilities)
	}

	// workspace
	workspaceGroup := api.Group("/workspace", auth)
	{
		workspaceGroup.Get("/", rt.listTeams)
		workspaceGroup.Post("/", rt.createTeam)
		workspaceGroup.Get("/current", workspace, rt.currentWorkspace)
		workspaceGroup.Post("/:teamId/select", rt.selectWorkspace)
		workspaceGroup.Post("/deselect", rt.deselectWorkspace)
		workspaceGroup.Get("/:teamId", rt.getTeam)
		workspaceGroup.Put("/:teamId", rt.updateTeam)
		workspaceGroup.Delete("/:teamId", rt.deleteTeam)
		workspaceGroup.Get("/:teamId/members", rt.listMembers)
		workspaceGroup.Delete("/:teamId/members/:userId", rt.removeMember)
	}

	// project
	project := api.Group("/project", auth, workspace)
	{
		project.Get("/", rt.listProjects)
		project.Post("/", rt.createProject)
		project.Get("/:projectId", rt.getProject)
		project.Put("/:projectId", rt.updateProject)
		project.Delete("/:projectId", rt.deleteProject)
		project.Get("/:projectId/access", rt.listAccess)
		project.Post("/:projectId/access", rt.grantAccess)
		project.Delete("/:projectId/access/:userId", rt.revokeAccess)
	}

	// task
	task := api.Group("/task", auth, workspace)
	{
		task.Get("/", rt.listTasks)
		task.Post("/", rt.createTask)
		task.Get("/board/:projectId", rt.taskBoard)
		task.Get("/:taskId", rt.getTask)
		task.Put("/:taskId", rt.updateTask)
		task.Post("/:taskId/move", rt.moveTask)
		task.Delete("/:taskId", rt.deleteTask)
	}

	// timesheet
	timesheet := api.Group("/timesheet", auth, workspace)
	{
		timesheet.Post("/timer/start", rt.startTimer)
		timesheet.Post("/timer/stop", rt.stopTimer)
		timesheet.Get("/timer", rt.runningTimer)
		timesheet.Post("/entries", rt.addManualEntry)
		timesheet.Delete("/entries/:entryId", rt.deleteEntry)
		timesheet.Get("/summary/weekly", rt.weeklySummary)
		timesheet.Get("/summary/project/:projectId", rt.projectSummary)
	}

	// credential vault
	credential := api.Group("/credential", auth, workspace)
	{
		credential.Get("/", rt.listCredentials)
		credential.Post("/", rt.createCredential)
		credential.Put("/:credentialId", rt.updateCredential)
		credential.Delete("/:credentialId", rt.deleteCredential)
		credential.Post("/:credentialId/reveal", rt.revealCredential)
	}

	// invite
	invite := api.Group("/invite", auth)
	{
		invite.Get("/", workspace, rt.listInvites)
		invite.Post("/", workspace, rt.createInvite)
		invite.Post("/accept", rt.acceptInvite)
	}

	// messaging
	channel := api.Group("/channel", auth, workspace)
	{
		channel.Get("/", rt.listChannels)
		channel.Post("/", rt.createChannel)
		channel.Get("/:channelId/messages", rt.listMessages)
		channel.Post("/:channelId/messages", rt.postMessage)
	}

	// media
	media := api.Group("/media", auth, workspace)
	{
		media.Get("/", rt.listMedia)
		media.Post("/", rt.uploadMedia)
		media.Get("/:mediaId/url", rt.mediaDownloadURL)
		media.Delete("/:mediaId", rt.deleteMedia)
	}

	// websocket
	rt.registerWs(app, auth)
}
