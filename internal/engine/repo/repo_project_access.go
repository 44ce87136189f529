package repo

import (
	"errors"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IProjectAccessRepository interface {
	UpsertAccess(a *model.ProjectAccess) error
	RevokeAccess(projectId, userId string) error
	GetAccess(projectId, userId string) (*model.ProjectAccess, error)
	ListByUser(userId string) ([]*model.ProjectAccess, error)
	ListByProject(projectId string) ([]*model.ProjectAccess, error)
}

type ProjectAccessRepo struct {
	database.IDatabase
}

func NewProjectAccessRepo(db database.IDatabase) IProjectAccessRepository {
	return &ProjectAccessRepo{IDatabase: db}
}

// UpsertAccess 插入或更新访问行, (project_id, user_id) 唯一
func (r *ProjectAccessRepo) UpsertAccess(a *model.ProjectAccess) error {
	return r.Database().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_level", "role", "granted_by"}),
	}).Create(a).Error
}

// RevokeAccess 撤销访问
func (r *ProjectAccessRepo) RevokeAccess(projectId, userId string) error {
	return r.Database().Where("project_id = ? AND user_id = ?", projectId, userId).
		Delete(&model.ProjectAccess{}).Error
}

// GetAccess 获取访问行, 无显式行返回 nil
func (r *ProjectAccessRepo) GetAccess(projectId, userId string) (*model.ProjectAccess, error) {
	var a model.ProjectAccess
	err := r.Database().Where("project_id = ? AND user_id = ?", projectId, userId).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByUser 用户的全部显式访问行
func (r *ProjectAccessRepo) ListByUser(userId string) ([]*model.ProjectAccess, error) {
	var rows []*model.ProjectAccess
	err := r.Database().Where("user_id = ?", userId).
		Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByProject 项目的全部显式访问行
func (r *ProjectAccessRepo) ListByProject(projectId string) ([]*model.ProjectAccess, error) {
	var rows []*model.ProjectAccess
	err := r.Database().Where("project_id = ?", projectId).
		Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
