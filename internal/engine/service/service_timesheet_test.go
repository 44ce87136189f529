package service

import (
	"testing"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTimeEntryRepo struct {
	entries []*model.TimeEntry
}

func (f *fakeTimeEntryRepo) CreateEntry(e *model.TimeEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeTimeEntryRepo) DeleteEntry(entryId string) error {
	out := f.entries[:0]
	for _, e := range f.entries {
		if e.EntryId != entryId {
			out = append(out, e)
		}
	}
	f.entries = out
	return nil
}

func (f *fakeTimeEntryRepo) GetEntryById(entryId string) (*model.TimeEntry, error) {
	for _, e := range f.entries {
		if e.EntryId == entryId {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimeEntryRepo) GetRunningByUser(userId string) (*model.TimeEntry, error) {
	for _, e := range f.entries {
		if e.UserId == userId && e.EndedAt == nil {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeEntryRepo) StopEntry(entryId string, endedAt time.Time, minutes int) error {
	for _, e := range f.entries {
		if e.EntryId == entryId {
			e.EndedAt = &endedAt
			e.DurationMinutes = minutes
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTimeEntryRepo) ListByUserRange(userId string, from, to time.Time) ([]*model.TimeEntry, error) {
	var out []*model.TimeEntry
	for _, e := range f.entries {
		if e.UserId == userId && !e.StartedAt.Before(from) && e.StartedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimeEntryRepo) ListByProjectRange(projectId string, from, to time.Time) ([]*model.TimeEntry, error) {
	var out []*model.TimeEntry
	for _, e := range f.entries {
		if e.ProjectId == projectId && !e.StartedAt.Before(from) && e.StartedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTimesheetFixture(t *testing.T) (*TimesheetService, *fakeTimeEntryRepo) {
	t.Helper()
	tenantSvc, _, _, _ := newTenantFixture(t)
	entryRepo := &fakeTimeEntryRepo{}
	return NewTimesheetService(entryRepo, tenantSvc), entryRepo
}

func TestStartTimerOncePerUser(t *testing.T) {
	svc, _ := newTimesheetFixture(t)

	e, err := svc.StartTimer("member", &model.StartTimerReq{ProjectId: "p1"})
	require.NoError(t, err)
	assert.Nil(t, e.EndedAt)
	assert.Equal(t, "t1", e.TeamId)

	// 二次启动冲突
	_, err = svc.StartTimer("member", &model.StartTimerReq{ProjectId: "p2"})
	assert.ErrorIs(t, err, ErrTimerRunning)

	// 其他用户不受影响
	_, err = svc.StartTimer("owner", &model.StartTimerReq{ProjectId: "p1"})
	require.NoError(t, err)
}

func TestStartTimerRequiresAccess(t *testing.T) {
	svc, _ := newTimesheetFixture(t)

	_, err := svc.StartTimer("stranger", &model.StartTimerReq{ProjectId: "p1"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStopTimer(t *testing.T) {
	svc, entryRepo := newTimesheetFixture(t)

	// 无运行中的计时
	_, err := svc.StopTimer("member")
	assert.ErrorIs(t, err, ErrTimerNotRunning)

	started, err := svc.StartTimer("member", &model.StartTimerReq{ProjectId: "p1"})
	require.NoError(t, err)

	stopped, err := svc.StopTimer("member")
	require.NoError(t, err)
	assert.Equal(t, started.EntryId, stopped.EntryId)
	require.NotNil(t, stopped.EndedAt)
	assert.GreaterOrEqual(t, stopped.DurationMinutes, 1)

	// 停止后可以再次启动
	_, err = svc.StartTimer("member", &model.StartTimerReq{ProjectId: "p1"})
	require.NoError(t, err)

	running, err := entryRepo.GetRunningByUser("member")
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.NotEqual(t, started.EntryId, running.EntryId)
}

func TestManualEntryAndSummary(t *testing.T) {
	svc, _ := newTimesheetFixture(t)

	// 2026-08-31 为周一
	monday := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	_, err := svc.AddManualEntry("member", &model.ManualEntryReq{
		ProjectId: "p1",
		StartedAt: monday,
		EndedAt:   monday.Add(90 * time.Minute),
	})
	require.NoError(t, err)

	_, err = svc.AddManualEntry("member", &model.ManualEntryReq{
		ProjectId: "p2",
		StartedAt: monday.AddDate(0, 0, 1),
		EndedAt:   monday.AddDate(0, 0, 1).Add(30 * time.Minute),
	})
	require.NoError(t, err)

	summary, err := svc.WeeklySummary("member", monday.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 120, summary.TotalMinutes)
	assert.Equal(t, 90, summary.ByProject["p1"])
	assert.Equal(t, 30, summary.ByProject["p2"])
	assert.Equal(t, 90, summary.ByDay["2026-08-31"])
	assert.Equal(t, 30, summary.ByDay["2026-09-01"])
}

func TestDeleteEntryOwnerOnly(t *testing.T) {
	svc, _ := newTimesheetFixture(t)

	monday := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	e, err := svc.AddManualEntry("member", &model.ManualEntryReq{
		ProjectId: "p1",
		StartedAt: monday,
		EndedAt:   monday.Add(time.Hour),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEntry(e.EntryId, "owner"), ErrForbidden)
	assert.NoError(t, svc.DeleteEntry(e.EntryId, "member"))
}
