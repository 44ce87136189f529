package service

import (
	"sort"
	"testing"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTaskRepo struct {
	tasks map[string]*model.Task
	order []string
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*model.Task)}
}

func (f *fakeTaskRepo) CreateTask(t *model.Task) error {
	f.tasks[t.TaskId] = t
	f.order = append(f.order, t.TaskId)
	return nil
}

func (f *fakeTaskRepo) UpdateTask(taskId string, updates map[string]interface{}) error {
	t, ok := f.tasks[taskId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["state"]; ok {
		t.State = v.(string)
	}
	if v, ok := updates["position"]; ok {
		t.Position = v.(float64)
	}
	if v, ok := updates["recurrence"]; ok {
		t.Recurrence = v.(string)
	}
	if v, ok := updates["title"]; ok {
		t.Title = v.(string)
	}
	return nil
}

func (f *fakeTaskRepo) DeleteTask(taskId string) error {
	delete(f.tasks, taskId)
	return nil
}

func (f *fakeTaskRepo) GetTaskById(taskId string) (*model.Task, error) {
	t, ok := f.tasks[taskId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) ListTasks(query *model.TaskQueryReq) ([]*model.Task, int64, error) {
	var out []*model.Task
	for _, id := range f.order {
		t, ok := f.tasks[id]
		if !ok {
			continue
		}
		if query.ProjectId != "" && t.ProjectId != query.ProjectId {
			continue
		}
		if query.State != "" && t.State != query.State {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) ListByProjectOrdered(projectId string) ([]*model.Task, error) {
	var out []*model.Task
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok && t.ProjectId == projectId {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeTaskRepo) ListByTeams(teamIds []string, query *model.TaskQueryReq) ([]*model.Task, int64, error) {
	in := make(map[string]bool, len(teamIds))
	for _, id := range teamIds {
		in[id] = true
	}
	var out []*model.Task
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok && in[t.TeamId] {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) MaxPosition(projectId, state string) (float64, error) {
	var max float64
	for _, t := range f.tasks {
		if t.ProjectId == projectId && t.State == state && t.Position > max {
			max = t.Position
		}
	}
	return max, nil
}

func (f *fakeTaskRepo) ListRecurringDone() ([]*model.Task, error) {
	var out []*model.Task
	for _, id := range f.order {
		t, ok := f.tasks[id]
		if ok && t.State == model.TaskStateDone && t.Recurrence != model.RecurrenceNone {
			out = append(out, t)
		}
	}
	return out, nil
}

func newTaskFixture(t *testing.T) (*TaskService, *fakeTaskRepo) {
	t.Helper()
	tenant, teamRepo, _, _ := newTenantFixture(t)
	taskRepo := newFakeTaskRepo()
	return NewTaskService(taskRepo, teamRepo, tenant), taskRepo
}

func TestCreateTaskDefaultsAndPosition(t *testing.T) {
	svc, _ := newTaskFixture(t)

	first, err := svc.CreateTask("owner", &model.CreateTaskReq{ProjectId: "p1", Title: "Design homepage"})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStateBacklog, first.State)
	assert.Equal(t, model.RecurrenceNone, first.Recurrence)
	assert.Equal(t, "t1", first.TeamId)
	assert.Equal(t, float64(1024), first.Position)

	second, err := svc.CreateTask("owner", &model.CreateTaskReq{ProjectId: "p1", Title: "Write copy"})
	require.NoError(t, err)
	assert.Equal(t, float64(2048), second.Position)
}

func TestCreateTaskClientForbidden(t *testing.T) {
	svc, _ := newTaskFixture(t)

	// 客户在 p1 只有 READ, 不能建任务
	_, err := svc.CreateTask("client", &model.CreateTaskReq{ProjectId: "p1", Title: "Sneaky"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBoardColumnsOrdered(t *testing.T) {
	svc, taskRepo := newTaskFixture(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.CreateTask("owner", &model.CreateTaskReq{ProjectId: "p1", Title: title, State: model.TaskStateTodo})
		require.NoError(t, err)
	}
	_, err := svc.CreateTask("owner", &model.CreateTaskReq{ProjectId: "p1", Title: "d", State: model.TaskStateDone})
	require.NoError(t, err)

	board, err := svc.Board("p1", "member")
	require.NoError(t, err)
	require.Len(t, board.Columns, 5)
	require.Len(t, board.Columns[model.TaskStateTodo], 3)
	assert.Equal(t, "a", board.Columns[model.TaskStateTodo][0].Title)
	assert.Equal(t, "c", board.Columns[model.TaskStateTodo][2].Title)
	assert.Len(t, board.Columns[model.TaskStateDone], 1)
	assert.Empty(t, board.Columns[model.TaskStateBacklog])

	// 客户对 p1 有 READ 行, 看板可见
	_, err = svc.Board("p1", "client")
	require.NoError(t, err)

	assert.Len(t, taskRepo.tasks, 4)
}

func TestMoveTaskAppendsToColumnEnd(t *testing.T) {
	svc, _ := newTaskFixture(t)

	task, err := svc.CreateTask("owner", &model.CreateTaskReq{ProjectId: "p1", Title: "a", State: model.TaskStateTodo})
	require.NoError(t, err)
	other, err := svc.CreateTask("owner", &model.CreateTaskReq{ProjectId: "p1", Title: "b", State: model.TaskStateInProgress})
	require.NoError(t, err)

	// position 为 0 时追加到目标列末尾
	require.NoError(t, svc.MoveTask(task.TaskId, "owner", &model.MoveTaskReq{State: model.TaskStateInProgress}))
	moved, err := svc.GetTask(task.TaskId, "owner")
	require.NoError(t, err)
	assert.Equal(t, model.TaskStateInProgress, moved.State)
	assert.Greater(t, moved.Position, other.Position)

	// 指定 position 时直接落位
	require.NoError(t, svc.MoveTask(task.TaskId, "owner", &model.MoveTaskReq{State: model.TaskStateTodo, Position: 512}))
	moved, err = svc.GetTask(task.TaskId, "owner")
	require.NoError(t, err)
	assert.Equal(t, float64(512), moved.Position)
}

func TestMaterializeRecurringWeekly(t *testing.T) {
	svc, taskRepo := newTaskFixture(t)

	anchor := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	task, err := svc.CreateTask("owner", &model.CreateTaskReq{
		ProjectId:        "p1",
		Title:            "Weekly report",
		State:            model.TaskStateDone,
		Recurrence:       model.RecurrenceWeekly,
		RecurrenceAnchor: &anchor,
	})
	require.NoError(t, err)

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	created, err := svc.MaterializeRecurring(now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// 原任务清除重复规则
	orig, err := taskRepo.GetTaskById(task.TaskId)
	require.NoError(t, err)
	assert.Equal(t, model.RecurrenceNone, orig.Recurrence)

	// 新实例落在 TODO 列, 锚点推进到下一次发生时间
	var instance *model.Task
	for _, candidate := range taskRepo.tasks {
		if candidate.TaskId != task.TaskId {
			instance = candidate
		}
	}
	require.NotNil(t, instance)
	assert.Equal(t, model.TaskStateTodo, instance.State)
	assert.Equal(t, model.RecurrenceWeekly, instance.Recurrence)
	require.NotNil(t, instance.RecurrenceAnchor)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), *instance.RecurrenceAnchor)

	// 再次扫描不应重复物化
	created, err = svc.MaterializeRecurring(now)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
