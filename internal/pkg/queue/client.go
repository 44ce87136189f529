package queue

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hibiken/asynq"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/log"
)

// Client 任务入队封装, 实现 service.InviteNotifier
type Client struct {
	client *asynq.Client
}

func NewClient(conf *cache.Redis) *Client {
	return &Client{client: asynq.NewClient(redisOpt(conf))}
}

// EnqueueInviteEmail 邀请邮件入队, 失败重试 3 次
func (c *Client) EnqueueInviteEmail(email, token, teamName string) error {
	payload, err := sonic.Marshal(&InviteEmailPayload{
		Email:    email,
		Token:    token,
		TeamName: teamName,
	})
	if err != nil {
		return fmt.Errorf("marshal payload failed: %w", err)
	}

	task := asynq.NewTask(TypeInviteEmail, payload)
	info, err := c.client.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue invite email failed: %w", err)
	}
	log.Debugw("invite email enqueued", "taskId", info.ID)
	return nil
}

// EnqueueRecurrenceSweep 重复任务物化入队, 由 cron 周期触发
func (c *Client) EnqueueRecurrenceSweep() error {
	task := asynq.NewTask(TypeTaskRecurrence, nil)
	if _, err := c.client.Enqueue(task, asynq.MaxRetry(1)); err != nil {
		return fmt.Errorf("enqueue recurrence sweep failed: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
