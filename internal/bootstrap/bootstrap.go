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

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pulseplan/pulseplan/internal/app"
	"github.com/pulseplan/pulseplan/internal/engine/conf"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/ctx"
	"github.com/pulseplan/pulseplan/pkg/database"
	"github.com/pulseplan/pulseplan/pkg/log"
)

// InitAppFunc init app function type
type InitAppFunc func(configPath string, appCtx *ctx.Context, logger *zap.Logger, db database.IDatabase, cache cache.ICache) (*app.App, func(), error)

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*app.App, func(), conf.AppConfig, error) {
	// load config
	appConf := conf.NewConf(configFile)

	// init logger
	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, appConf, err
	}

	// init Redis, database, context
	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, nil, appConf, err
	}
	dbClient, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, appConf, err
	}

	// create interface implementation
	db := database.NewGormDB(dbClient)
	redisCache := cache.NewRedisCache(redisClient)

	appCtx := ctx.NewContext(context.Background(), logger.Sugar())

	// Wire build App
	a, cleanup, err := initApp(configFile, appCtx, logger, db, redisCache)
	if err != nil {
		return nil, nil, appConf, err
	}

	return a, cleanup, appConf, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(a *app.App, cleanup func()) {
	logger := a.Logger
	appConf := a.AppConf

	// start queue worker (async)
	go func() {
		if err := a.QueueServer.Start(); err != nil {
			logger.Sugar().Errorf("queue server failed: %v", err)
		}
	}()

	// start cron scheduler
	a.Cron.Start()

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	go func() {
		addr := appConf.Http.Host + ":" + fmt.Sprintf("%d", appConf.Http.Port)
		logger.Sugar().Infow("HTTP listener started",
			"address", addr,
		)
		if err := a.HttpApp.Listen(addr); err != nil {
			logger.Sugar().Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
		}
	}()

	// wait for exit signal
	sig := <-quit
	logger.Sugar().Infof("Received signal: %v, shutting down gracefully...", sig)

	// close HTTP server first so no new work arrives
	shutdownTimeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Sugar().Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	// close cron, queue worker and other resources
	cleanup()

	logger.Info("Server shutdown complete")
}
