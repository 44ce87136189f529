package repo

import (
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
)

type IMediaRepository interface {
	CreateMedia(m *model.Media) error
	DeleteMedia(mediaId string) error
	GetMediaById(mediaId string) (*model.Media, error)
	ListByTeam(teamId, projectId string) ([]*model.Media, error)
}

type MediaRepo struct {
	database.IDatabase
}

func NewMediaRepo(db database.IDatabase) IMediaRepository {
	return &MediaRepo{IDatabase: db}
}

// CreateMedia 写入媒体记录
func (r *MediaRepo) CreateMedia(m *model.Media) error {
	return r.Database().Create(m).Error
}

// DeleteMedia 删除媒体记录
func (r *MediaRepo) DeleteMedia(mediaId string) error {
	return r.Database().Where("media_id = ?", mediaId).Delete(&model.Media{}).Error
}

// GetMediaById 根据媒体ID获取记录
func (r *MediaRepo) GetMediaById(mediaId string) (*model.Media, error) {
	var m model.Media
	err := r.Database().Where("media_id = ?", mediaId).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByTeam 团队媒体列表, projectId 非空时按项目过滤
func (r *MediaRepo) ListByTeam(teamId, projectId string) ([]*model.Media, error) {
	var media []*model.Media
	db := r.Database().Where("team_id = ?", teamId)
	if projectId != "" {
		db = db.Where("project_id = ?", projectId)
	}
	err := db.Order("id DESC").Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}
