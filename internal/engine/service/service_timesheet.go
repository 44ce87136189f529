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

type TimesheetService struct {
	entryRepo repo.ITimeEntryRepository
	tenant    *TenantService
}

func NewTimesheetService(entryRepo repo.ITimeEntryRepository, tenant *TenantService) *TimesheetService {
	return &TimesheetService{
		entryRepo: entryRepo,
		tenant:    tenant,
	}
}

// StartTimer 启动计时, 每用户同一时间只允许一条运行中的记录
func (s *TimesheetService) StartTimer(userId string, req *model.StartTimerReq) (*model.TimeEntry, error) {
	if err := s.tenant.RequireProjectAccess(userId, req.ProjectId, model.AccessRead); err != nil {
		return nil, err
	}

	running, err := s.entryRepo.GetRunningByUser(userId)
	if err != nil {
		return nil, fmt.Errorf("check running timer failed: %w", err)
	}
	if running != nil {
		return nil, ErrTimerRunning
	}

	teamId, err := s.projectTeamId(req.ProjectId)
	if err != nil {
		return nil, err
	}

	e := &model.TimeEntry{
		EntryId:   id.GetUild(),
		UserId:    userId,
		TeamId:    teamId,
		ProjectId: req.ProjectId,
		TaskId:    req.TaskId,
		StartedAt: time.Now(),
		Note:      req.Note,
	}
	if err := s.entryRepo.CreateEntry(e); err != nil {
		log.Errorw("start timer failed", "userId", userId, "projectId", req.ProjectId, "error", err)
		return nil, fmt.Errorf("start timer failed: %w", err)
	}
	return e, nil
}

// StopTimer 结束计时, 没有运行中的记录时报错
func (s *TimesheetService) StopTimer(userId string) (*model.TimeEntry, error) {
	running, err := s.entryRepo.GetRunningByUser(userId)
	if err != nil {
		return nil, fmt.Errorf("check running timer failed: %w", err)
	}
	if running == nil {
		return nil, ErrTimerNotRunning
	}

	endedAt := time.Now()
	minutes := int(endedAt.Sub(running.StartedAt).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	if err := s.entryRepo.StopEntry(running.EntryId, endedAt, minutes); err != nil {
		return nil, fmt.Errorf("stop timer failed: %w", err)
	}

	running.EndedAt = &endedAt
	running.DurationMinutes = minutes
	return running, nil
}

// RunningTimer 当前运行中的计时, 不存在返回 nil
func (s *TimesheetService) RunningTimer(userId string) (*model.TimeEntry, error) {
	return s.entryRepo.GetRunningByUser(userId)
}

// AddManualEntry 手工补录工时
func (s *TimesheetService) AddManualEntry(userId string, req *model.ManualEntryReq) (*model.TimeEntry, error) {
	if err := s.tenant.RequireProjectAccess(userId, req.ProjectId, model.AccessRead); err != nil {
		return nil, err
	}
	if !req.EndedAt.After(req.StartedAt) {
		return nil, ErrConflict
	}

	teamId, err := s.projectTeamId(req.ProjectId)
	if err != nil {
		return nil, err
	}

	minutes := int(req.EndedAt.Sub(req.StartedAt).Minutes())
	endedAt := req.EndedAt
	e := &model.TimeEntry{
		EntryId:         id.GetUild(),
		UserId:          userId,
		TeamId:          teamId,
		ProjectId:       req.ProjectId,
		TaskId:          req.TaskId,
		StartedAt:       req.StartedAt,
		EndedAt:         &endedAt,
		DurationMinutes: minutes,
		Note:            req.Note,
	}
	if err := s.entryRepo.CreateEntry(e); err != nil {
		return nil, fmt.Errorf("create entry failed: %w", err)
	}
	return e, nil
}

// DeleteEntry 删除本人工时记录
func (s *TimesheetService) DeleteEntry(entryId, userId string) error {
	e, err := s.entryRepo.GetEntryById(entryId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get entry failed: %w", err)
	}
	if e.UserId != userId {
		return ErrForbidden
	}
	return s.entryRepo.DeleteEntry(entryId)
}

// WeeklySummary 用户周汇总, from 归一到周一零点
func (s *TimesheetService) WeeklySummary(userId string, anchor time.Time) (*model.TimesheetSummaryResp, error) {
	weekday := int(anchor.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	from := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location()).
		AddDate(0, 0, -(weekday - 1))
	to := from.AddDate(0, 0, 7)

	entries, err := s.entryRepo.ListByUserRange(userId, from, to)
	if err != nil {
		return nil, fmt.Errorf("list entries failed: %w", err)
	}
	return summarize(entries, from, to), nil
}

// ProjectSummary 项目区间汇总, 需要项目 READ
func (s *TimesheetService) ProjectSummary(projectId, userId string, from, to time.Time) (*model.TimesheetSummaryResp, error) {
	if err := s.tenant.RequireProjectAccess(userId, projectId, model.AccessRead); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByProjectRange(projectId, from, to)
	if err != nil {
		return nil, fmt.Errorf("list entries failed: %w", err)
	}
	return summarize(entries, from, to), nil
}

func summarize(entries []*model.TimeEntry, from, to time.Time) *model.TimesheetSummaryResp {
	resp := &model.TimesheetSummaryResp{
		From:      from,
		To:        to,
		ByProject: make(map[string]int),
		ByDay:     make(map[string]int),
	}
	for _, e := range entries {
		if e.EndedAt == nil {
			continue
		}
		resp.TotalMinutes += e.DurationMinutes
		resp.ByProject[e.ProjectId] += e.DurationMinutes
		resp.ByDay[e.StartedAt.Format("2006-01-02")] += e.DurationMinutes
	}
	return resp
}

func (s *TimesheetService) projectTeamId(projectId string) (string, error) {
	p, err := s.tenant.projectRepo.GetProjectById(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get project failed: %w", err)
	}
	return p.TeamId, nil
}
