package repo

import (
	"errors"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
	"gorm.io/gorm"
)

type ITimeEntryRepository interface {
	CreateEntry(e *model.TimeEntry) error
	DeleteEntry(entryId string) error
	GetEntryById(entryId string) (*model.TimeEntry, error)
	GetRunningByUser(userId string) (*model.TimeEntry, error)
	StopEntry(entryId string, endedAt time.Time, durationMinutes int) error
	ListByUserRange(userId string, from, to time.Time) ([]*model.TimeEntry, error)
	ListByProjectRange(projectId string, from, to time.Time) ([]*model.TimeEntry, error)
}

type TimeEntryRepo struct {
	database.IDatabase
}

func NewTimeEntryRepo(db database.IDatabase) ITimeEntryRepository {
	return &TimeEntryRepo{IDatabase: db}
}

// CreateEntry 创建工时记录
func (r *TimeEntryRepo) CreateEntry(e *model.TimeEntry) error {
	return r.Database().Create(e).Error
}

// DeleteEntry 删除工时记录
func (r *TimeEntryRepo) DeleteEntry(entryId string) error {
	return r.Database().Where("entry_id = ?", entryId).Delete(&model.TimeEntry{}).Error
}

// GetEntryById 根据工时ID获取记录
func (r *TimeEntryRepo) GetEntryById(entryId string) (*model.TimeEntry, error) {
	var e model.TimeEntry
	err := r.Database().Where("entry_id = ?", entryId).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetRunningByUser 用户运行中的计时, 不存在返回 nil
func (r *TimeEntryRepo) GetRunningByUser(userId string) (*model.TimeEntry, error) {
	var e model.TimeEntry
	err := r.Database().Where("user_id = ? AND ended_at IS NULL", userId).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// StopEntry 结束计时
func (r *TimeEntryRepo) StopEntry(entryId string, endedAt time.Time, durationMinutes int) error {
	return r.Database().Model(&model.TimeEntry{}).
		Where("entry_id = ?", entryId).
		Updates(map[string]interface{}{
			"ended_at":         endedAt,
			"duration_minutes": durationMinutes,
		}).Error
}

// ListByUserRange 用户某时间段内的工时
func (r *TimeEntryRepo) ListByUserRange(userId string, from, to time.Time) ([]*model.TimeEntry, error) {
	var entries []*model.TimeEntry
	err := r.Database().
		Where("user_id = ? AND started_at >= ? AND started_at < ?", userId, from, to).
		Order("started_at ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByProjectRange 项目某时间段内的工时
func (r *TimeEntryRepo) ListByProjectRange(projectId string, from, to time.Time) ([]*model.TimeEntry, error) {
	var entries []*model.TimeEntry
	err := r.Database().
		Where("project_id = ? AND started_at >= ? AND started_at < ?", projectId, from, to).
		Order("started_at ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
