package queue

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hibiken/asynq"
	"github.com/pulseplan/pulseplan/internal/engine/service"
	"github.com/pulseplan/pulseplan/internal/pkg/mail"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/log"
)

// Server 后台任务消费端
type Server struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	mailer  *mail.Mailer
	taskSvc *service.TaskService
}

func NewServer(conf *cache.Redis, mailer *mail.Mailer, taskSvc *service.TaskService) *Server {
	srv := asynq.NewServer(redisOpt(conf), asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			"default": 1,
		},
	})

	s := &Server{
		srv:     srv,
		mux:     asynq.NewServeMux(),
		mailer:  mailer,
		taskSvc: taskSvc,
	}
	s.mux.HandleFunc(TypeInviteEmail, s.handleInviteEmail)
	s.mux.HandleFunc(TypeTaskRecurrence, s.handleRecurrenceSweep)
	return s
}

// Start 启动消费, 非阻塞
func (s *Server) Start() error {
	return s.srv.Start(s.mux)
}

func (s *Server) Shutdown() {
	s.srv.Shutdown()
}

func (s *Server) handleInviteEmail(ctx context.Context, t *asynq.Task) error {
	var payload InviteEmailPayload
	if err := sonic.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	return s.mailer.SendInviteEmail(payload.Email, payload.Token, payload.TeamName)
}

func (s *Server) handleRecurrenceSweep(ctx context.Context, t *asynq.Task) error {
	created, err := s.taskSvc.MaterializeRecurring(time.Now())
	if err != nil {
		log.Errorw("recurrence sweep failed", "error", err)
		return err
	}
	log.Debugw("recurrence sweep finished", "created", created)
	return nil
}
