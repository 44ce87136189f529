//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/pulseplan/pulseplan/internal/app"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/internal/engine/router"
	"github.com/pulseplan/pulseplan/internal/engine/service"
	"github.com/pulseplan/pulseplan/internal/pkg/mail"
	"github.com/pulseplan/pulseplan/internal/pkg/queue"
	"github.com/pulseplan/pulseplan/internal/pkg/ws"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/ctx"
	"github.com/pulseplan/pulseplan/pkg/database"
	"github.com/pulseplan/pulseplan/pkg/storage"
)

func initApp(configPath string, appCtx *ctx.Context, logger *zap.Logger, db database.IDatabase, c cache.ICache) (*app.App, func(), error) {
	panic(wire.Build(
		// 配置层
		confProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 对象存储
		storage.NewProvider,
		// 邮件 / 队列 / websocket
		mail.NewMailer,
		queue.NewClient,
		queue.NewServer,
		ws.NewHub,
		wire.Bind(new(service.InviteNotifier), new(*queue.Client)),
		wire.Bind(new(service.MessageBroadcaster), new(*ws.Hub)),
		// 应用层
		app.NewApp,
	))
}

// confProviderSet 配置层 ProviderSet
var confProviderSet = wire.NewSet(
	provideConf,
	provideHttpConfig,
	provideAuthConfig,
	provideRedisConfig,
	provideStorageConfig,
	provideMailConfig,
	provideVaultKey,
)
