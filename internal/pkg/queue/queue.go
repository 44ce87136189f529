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

package queue

import (
	"github.com/hibiken/asynq"
	"github.com/pulseplan/pulseplan/pkg/cache"
)

// 任务类型
const (
	TypeInviteEmail    = "email:invite"
	TypeTaskRecurrence = "task:recurrence"
)

// InviteEmailPayload 邀请邮件任务载荷
type InviteEmailPayload struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	TeamName string `json:"teamName"`
}

// redisOpt 复用缓存的 Redis 配置
func redisOpt(conf *cache.Redis) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	}
}
