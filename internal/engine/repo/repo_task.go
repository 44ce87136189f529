package repo

import (
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
)

type ITaskRepository interface {
	CreateTask(t *model.Task) error
	UpdateTask(taskId string, updates map[string]interface{}) error
	DeleteTask(taskId string) error
	GetTaskById(taskId string) (*model.Task, error)
	ListTasks(query *model.TaskQueryReq) ([]*model.Task, int64, error)
	ListByProjectOrdered(projectId string) ([]*model.Task, error)
	ListByTeams(teamIds []string, query *model.TaskQueryReq) ([]*model.Task, int64, error)
	MaxPosition(projectId, state string) (float64, error)
	ListRecurringDone() ([]*model.Task, error)
}

type TaskRepo struct {
	database.IDatabase
}

func NewTaskRepo(db database.IDatabase) ITaskRepository {
	return &TaskRepo{IDatabase: db}
}

// CreateTask 创建任务
func (r *TaskRepo) CreateTask(t *model.Task) error {
	return r.Database().Create(t).Error
}

// UpdateTask 更新任务
func (r *TaskRepo) UpdateTask(taskId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Task{}).
		Where("task_id = ?", taskId).
		Updates(updates).Error
}

// DeleteTask 删除任务
func (r *TaskRepo) DeleteTask(taskId string) error {
	return r.Database().Where("task_id = ?", taskId).Delete(&model.Task{}).Error
}

// GetTaskById 根据任务ID获取任务
func (r *TaskRepo) GetTaskById(taskId string) (*model.Task, error) {
	var t model.Task
	err := r.Database().Where("task_id = ?", taskId).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks 条件分页查询任务
func (r *TaskRepo) ListTasks(query *model.TaskQueryReq) ([]*model.Task, int64, error) {
	var tasks []*model.Task
	var total int64

	db := r.Database().Model(&model.Task{})
	if query.ProjectId != "" {
		db = db.Where("project_id = ?", query.ProjectId)
	}
	if query.State != "" {
		db = db.Where("state = ?", query.State)
	}
	if query.AssigneeId != "" {
		db = db.Where("assignee_id = ?", query.AssigneeId)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageNum, pageSize := query.PageNum, query.PageSize
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := db.Order("position ASC, id ASC").
		Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// ListByProjectOrdered 项目看板任务, 按 position 升序
func (r *TaskRepo) ListByProjectOrdered(projectId string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.Database().Where("project_id = ?", projectId).
		Order("position ASC, id ASC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByTeams 工作区维度查询, 范围按团队成员关系展开而非逐项目访问行
func (r *TaskRepo) ListByTeams(teamIds []string, query *model.TaskQueryReq) ([]*model.Task, int64, error) {
	if len(teamIds) == 0 {
		return []*model.Task{}, 0, nil
	}
	var tasks []*model.Task
	var total int64

	db := r.Database().Model(&model.Task{}).Where("team_id IN ?", teamIds)
	if query.State != "" {
		db = db.Where("state = ?", query.State)
	}
	if query.AssigneeId != "" {
		db = db.Where("assignee_id = ?", query.AssigneeId)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageNum, pageSize := query.PageNum, query.PageSize
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := db.Order("id DESC").
		Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// MaxPosition 某看板列当前最大 position, 空列返回 0
func (r *TaskRepo) MaxPosition(projectId, state string) (float64, error) {
	var max float64
	err := r.Database().Model(&model.Task{}).
		Where("project_id = ? AND state = ?", projectId, state).
		Select("COALESCE(MAX(position), 0)").Scan(&max).Error
	return max, err
}

// ListRecurringDone 已完成且带重复规则的任务, 供定时物化下一实例
func (r *TaskRepo) ListRecurringDone() ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.Database().
		Where("state = ? AND recurrence <> ?", model.TaskStateDone, model.RecurrenceNone).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
