package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/log"
	"gorm.io/gorm"
)

// positionStep 看板列内新任务之间预留的排序间隔
const positionStep = 1024

type TaskService struct {
	taskRepo repo.ITaskRepository
	teamRepo repo.ITeamRepository
	tenant   *TenantService
}

func NewTaskService(taskRepo repo.ITaskRepository, teamRepo repo.ITeamRepository, tenant *TenantService) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
		tenant:   tenant,
	}
}

// CreateTask 创建任务, 需要项目 EDIT
func (s *TaskService) CreateTask(userId string, req *model.CreateTaskReq) (*model.Task, error) {
	if err := s.tenant.RequireProjectAccess(userId, req.ProjectId, model.AccessEdit); err != nil {
		return nil, err
	}

	state := req.State
	if state == "" {
		state = model.TaskStateBacklog
	}
	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceNone
	}

	maxPos, err := s.taskRepo.MaxPosition(req.ProjectId, state)
	if err != nil {
		return nil, fmt.Errorf("get max position failed: %w", err)
	}

	teamId, err := s.projectTeamId(req.ProjectId)
	if err != nil {
		return nil, err
	}

	t := &model.Task{
		TaskId:           id.GetUild(),
		TeamId:           teamId,
		ProjectId:        req.ProjectId,
		Title:            req.Title,
		Description:      req.Description,
		State:            state,
		Position:         maxPos + positionStep,
		AssigneeId:       req.AssigneeId,
		DueAt:            req.DueAt,
		Recurrence:       recurrence,
		RecurrenceAnchor: req.RecurrenceAnchor,
		CreatedBy:        userId,
	}
	if t.Recurrence != model.RecurrenceNone && t.RecurrenceAnchor == nil {
		if t.DueAt != nil {
			t.RecurrenceAnchor = t.DueAt
		} else {
			now := time.Now()
			t.RecurrenceAnchor = &now
		}
	}

	if err := s.taskRepo.CreateTask(t); err != nil {
		log.Errorw("create task failed", "projectId", req.ProjectId, "error", err)
		return nil, fmt.Errorf("create task failed: %w", err)
	}
	return t, nil
}

// UpdateTask 更新任务, 需要项目 EDIT
func (s *TaskService) UpdateTask(taskId, userId string, req *model.UpdateTaskReq) error {
	t, err := s.getTask(taskId)
	if err != nil {
		return err
	}
	if err := s.tenant.RequireProjectAccess(userId, t.ProjectId, model.AccessEdit); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AssigneeId != nil {
		updates["assignee_id"] = *req.AssigneeId
	}
	if req.DueAt != nil {
		updates["due_at"] = *req.DueAt
	}
	if req.Recurrence != nil {
		updates["recurrence"] = *req.Recurrence
	}
	if req.RecurrenceAnchor != nil {
		updates["recurrence_anchor"] = *req.RecurrenceAnchor
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.taskRepo.UpdateTask(taskId, updates); err != nil {
		return fmt.Errorf("update task failed: %w", err)
	}
	return nil
}

// MoveTask 看板移动(换列或列内重排), 需要项目 EDIT
func (s *TaskService) MoveTask(taskId, userId string, req *model.MoveTaskReq) error {
	t, err := s.getTask(taskId)
	if err != nil {
		return err
	}
	if err := s.tenant.RequireProjectAccess(userId, t.ProjectId, model.AccessEdit); err != nil {
		return err
	}

	position := req.Position
	if position == 0 {
		maxPos, err := s.taskRepo.MaxPosition(t.ProjectId, req.State)
		if err != nil {
			return fmt.Errorf("get max position failed: %w", err)
		}
		position = maxPos + positionStep
	}

	if err := s.taskRepo.UpdateTask(taskId, map[string]interface{}{
		"state":    req.State,
		"position": position,
	}); err != nil {
		return fmt.Errorf("move task failed: %w", err)
	}
	return nil
}

// DeleteTask 删除任务, 需要项目 EDIT
func (s *TaskService) DeleteTask(taskId, userId string) error {
	t, err := s.getTask(taskId)
	if err != nil {
		return err
	}
	if err := s.tenant.RequireProjectAccess(userId, t.ProjectId, model.AccessEdit); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteTask(taskId); err != nil {
		return fmt.Errorf("delete task failed: %w", err)
	}
	return nil
}

// GetTask 任务详情, 需要项目 READ
func (s *TaskService) GetTask(taskId, userId string) (*model.Task, error) {
	t, err := s.getTask(taskId)
	if err != nil {
		return nil, err
	}
	if err := s.tenant.RequireProjectAccess(userId, t.ProjectId, model.AccessRead); err != nil {
		return nil, err
	}
	return t, nil
}

// Board 项目看板, 按状态分组、列内按 position 升序, 需要项目 READ
func (s *TaskService) Board(projectId, userId string) (*model.TaskBoardResp, error) {
	if err := s.tenant.RequireProjectAccess(userId, projectId, model.AccessRead); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByProjectOrdered(projectId)
	if err != nil {
		return nil, fmt.Errorf("list board tasks failed: %w", err)
	}

	board := &model.TaskBoardResp{
		ProjectId: projectId,
		Columns: map[string][]model.Task{
			model.TaskStateBacklog:    {},
			model.TaskStateTodo:       {},
			model.TaskStateInProgress: {},
			model.TaskStateInReview:   {},
			model.TaskStateDone:       {},
		},
	}
	for _, t := range tasks {
		board.Columns[t.State] = append(board.Columns[t.State], *t)
	}
	return board, nil
}

// ListWorkspaceTasks 工作区维度任务列表
// 范围按成员关系展开: 用户所属(或所有)团队下的全部任务, 不逐项目查访问行
func (s *TaskService) ListWorkspaceTasks(userId string, query *model.TaskQueryReq) ([]*model.Task, int64, error) {
	if query.ProjectId != "" {
		if err := s.tenant.RequireProjectAccess(userId, query.ProjectId, model.AccessRead); err != nil {
			return nil, 0, err
		}
		return s.taskRepo.ListTasks(query)
	}

	memberships, err := s.teamRepo.ListMemberships(userId)
	if err != nil {
		return nil, 0, fmt.Errorf("list memberships failed: %w", err)
	}
	teamIds := make([]string, 0, len(memberships))
	for _, m := range memberships {
		teamIds = append(teamIds, m.TeamId)
	}
	return s.taskRepo.ListByTeams(teamIds, query)
}

// MaterializeRecurring 物化已完成重复任务的下一实例
// 由定时任务触发, 新实例回到 TODO 列, 锚点推进到新的发生时间
func (s *TaskService) MaterializeRecurring(now time.Time) (int, error) {
	tasks, err := s.taskRepo.ListRecurringDone()
	if err != nil {
		return 0, fmt.Errorf("list recurring tasks failed: %w", err)
	}

	created := 0
	for _, t := range tasks {
		anchor := now
		if t.RecurrenceAnchor != nil {
			anchor = *t.RecurrenceAnchor
		}
		next, ok := NextOccurrence(anchor, t.Recurrence, now)
		if !ok {
			continue
		}

		maxPos, err := s.taskRepo.MaxPosition(t.ProjectId, model.TaskStateTodo)
		if err != nil {
			log.Errorw("get max position failed", "taskId", t.TaskId, "error", err)
			continue
		}

		instance := &model.Task{
			TaskId:           id.GetUild(),
			TeamId:           t.TeamId,
			ProjectId:        t.ProjectId,
			Title:            t.Title,
			Description:      t.Description,
			State:            model.TaskStateTodo,
			Position:         maxPos + positionStep,
			AssigneeId:       t.AssigneeId,
			DueAt:            &next,
			Recurrence:       t.Recurrence,
			RecurrenceAnchor: &next,
			CreatedBy:        t.CreatedBy,
		}
		if err := s.taskRepo.CreateTask(instance); err != nil {
			log.Errorw("materialize recurring task failed", "taskId", t.TaskId, "error", err)
			continue
		}

		// 原任务清除重复规则, 防止重复物化
		if err := s.taskRepo.UpdateTask(t.TaskId, map[string]interface{}{
			"recurrence": model.RecurrenceNone,
		}); err != nil {
			log.Errorw("clear recurrence failed", "taskId", t.TaskId, "error", err)
			continue
		}
		created++
	}

	if created > 0 {
		log.Infow("recurring tasks materialized", "count", created)
	}
	return created, nil
}

func (s *TaskService) getTask(taskId string) (*model.Task, error) {
	t, err := s.taskRepo.GetTaskById(taskId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task failed: %w", err)
	}
	return t, nil
}

func (s *TaskService) projectTeamId(projectId string) (string, error) {
	p, err := s.tenant.projectRepo.GetProjectById(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get project failed: %w", err)
	}
	return p.TeamId, nil
}
