package repo

import (
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
	"gorm.io/gorm"
)

type IProjectRepository interface {
	CreateProject(p *model.Project) error
	UpdateProject(projectId string, updates map[string]interface{}) error
	DeleteProject(projectId string) error
	GetProjectById(projectId string) (*model.Project, error)
	GetProjectsByTeamId(teamId string) ([]*model.Project, error)
	GetProjectsByIds(projectIds []string) ([]*model.Project, error)
}

type ProjectRepo struct {
	database.IDatabase
}

func NewProjectRepo(db database.IDatabase) IProjectRepository {
	return &ProjectRepo{IDatabase: db}
}

// CreateProject 创建项目
func (r *ProjectRepo) CreateProject(p *model.Project) error {
	return r.Database().Create(p).Error
}

// UpdateProject 更新项目
func (r *ProjectRepo) UpdateProject(projectId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Project{}).
		Where("project_id = ?", projectId).
		Updates(updates).Error
}

// DeleteProject 删除项目及其访问行
func (r *ProjectRepo) DeleteProject(projectId string) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectId).Delete(&model.ProjectAccess{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectId).Delete(&model.Project{}).Error
	})
}

// GetProjectById 根据项目ID获取项目
func (r *ProjectRepo) GetProjectById(projectId string) (*model.Project, error) {
	var p model.Project
	err := r.Database().Where("project_id = ?", projectId).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProjectsByTeamId 团队下全部项目
func (r *ProjectRepo) GetProjectsByTeamId(teamId string) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.Database().Where("team_id = ?", teamId).
		Order("id ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectsByIds 批量获取项目
func (r *ProjectRepo) GetProjectsByIds(projectIds []string) ([]*model.Project, error) {
	if len(projectIds) == 0 {
		return []*model.Project{}, nil
	}
	var projects []*model.Project
	err := r.Database().Where("project_id IN ?", projectIds).
		Order("id ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
