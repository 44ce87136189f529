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

package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pulseplan/pulseplan/internal/engine/conf"
	"github.com/pulseplan/pulseplan/internal/engine/router"
	"github.com/pulseplan/pulseplan/internal/pkg/queue"
	"github.com/pulseplan/pulseplan/pkg/ctx"
)

// 重复任务物化扫描的缺省表达式, 每天 00:05
const defaultRecurrenceSpec = "5 0 * * *"

type App struct {
	HttpApp     *fiber.App
	QueueServer *queue.Server
	QueueClient *queue.Client
	Cron        *cron.Cron
	Logger      *zap.Logger
	AppConf     conf.AppConfig
}

func NewApp(
	rt *router.Router,
	logger *zap.Logger,
	queueServer *queue.Server,
	queueClient *queue.Client,
	appCtx *ctx.Context,
	appConf conf.AppConfig,
) (*App, func(), error) {
	httpApp := rt.Router()

	// 周期任务: 重复任务物化经由 asynq 队列投递, 由 worker 消费
	spec := appConf.Cron.RecurrenceSpec
	if spec == "" {
		spec = defaultRecurrenceSpec
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if err := queueClient.EnqueueRecurrenceSweep(); err != nil {
			appCtx.GetLog().Errorw("enqueue recurrence sweep failed", "error", err)
		}
	}); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		c.Stop()

		if queueServer != nil {
			logger.Info("Shutting down queue server...")
			queueServer.Shutdown()
		}
		if queueClient != nil {
			if err := queueClient.Close(); err != nil {
				logger.Sugar().Errorf("close queue client error: %v", err)
			}
		}
	}

	app := &App{
		HttpApp:     httpApp,
		QueueServer: queueServer,
		QueueClient: queueClient,
		Cron:        c,
		Logger:      logger,
		AppConf:     appConf,
	}
	return app, cleanup, nil
}
