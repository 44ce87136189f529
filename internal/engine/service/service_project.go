package service

import (
	"errors"
	"fmt"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/log"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepo repo.IProjectRepository
	accessRepo  repo.IProjectAccessRepository
	tenant      *TenantService
}

func NewProjectService(projectRepo repo.IProjectRepository, accessRepo repo.IProjectAccessRepository, tenant *TenantService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		accessRepo:  accessRepo,
		tenant:      tenant,
	}
}

// CreateProject 创建项目, 仅工作区所有者
func (s *ProjectService) CreateProject(teamId, userId string, req *model.CreateProjectReq) (*model.ProjectResp, error) {
	if err := s.tenant.RequireTeamOwner(userId, teamId); err != nil {
		return nil, err
	}

	p := &model.Project{
		ProjectId:   id.GetUUID(),
		TeamId:      teamId,
		Name:        req.Name,
		Description: req.Description,
		Status:      model.ProjectStatusActive,
		CreatedBy:   userId,
	}
	if err := s.projectRepo.CreateProject(p); err != nil {
		log.Errorw("create project failed", "teamId", teamId, "name", req.Name, "error", err)
		return nil, fmt.Errorf("create project failed: %w", err)
	}

	log.Infow("project created", "projectId", p.ProjectId, "teamId", teamId)
	return toProjectResp(p, model.AccessEdit), nil
}

// UpdateProject 更新项目, 需要 EDIT
func (s *ProjectService) UpdateProject(projectId, userId string, req *model.UpdateProjectReq) error {
	if err := s.tenant.RequireProjectAccess(userId, projectId, model.AccessEdit); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.projectRepo.UpdateProject(projectId, updates); err != nil {
		return fmt.Errorf("update project failed: %w", err)
	}
	return nil
}

// DeleteProject 删除项目, 仅所有者
func (s *ProjectService) DeleteProject(projectId, userId string) error {
	p, err := s.projectRepo.GetProjectById(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get project failed: %w", err)
	}
	if err := s.tenant.RequireTeamOwner(userId, p.TeamId); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteProject(projectId); err != nil {
		return fmt.Errorf("delete project failed: %w", err)
	}
	log.Infow("project deleted", "projectId", projectId)
	return nil
}

// GetProject 获取项目详情, 需要 READ
func (s *ProjectService) GetProject(projectId, userId string) (*model.ProjectResp, error) {
	level, err := s.tenant.EffectiveAccess(userId, projectId)
	if err != nil {
		return nil, err
	}
	if level == "" {
		return nil, ErrForbidden
	}
	p, err := s.projectRepo.GetProjectById(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}
	return toProjectResp(p, level), nil
}

// ListProjects 工作区内当前用户可见的项目
func (s *ProjectService) ListProjects(teamId, userId string) ([]*model.ProjectResp, error) {
	scope, err := s.tenant.ProjectScope(userId, teamId)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.GetProjectsByIds(scope.ProjectIds)
	if err != nil {
		return nil, fmt.Errorf("batch get projects failed: %w", err)
	}
	out := make([]*model.ProjectResp, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResp(p, scope.AccessMap[p.ProjectId]))
	}
	return out, nil
}

// GrantAccess 显式授权, 仅所有者
func (s *ProjectService) GrantAccess(projectId, userId string, req *model.GrantAccessReq) error {
	p, err := s.projectRepo.GetProjectById(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get project failed: %w", err)
	}
	if err := s.tenant.RequireTeamOwner(userId, p.TeamId); err != nil {
		return err
	}

	access := &model.ProjectAccess{
		ProjectId:   projectId,
		UserId:      req.UserId,
		AccessLevel: req.AccessLevel,
		Role:        req.Role,
		GrantedBy:   userId,
	}
	if err := s.accessRepo.UpsertAccess(access); err != nil {
		return fmt.Errorf("grant access failed: %w", err)
	}
	log.Infow("project access granted", "projectId", projectId, "userId", req.UserId, "level", req.AccessLevel)
	return nil
}

// RevokeAccess 撤销显式授权, 仅所有者
func (s *ProjectService) RevokeAccess(projectId, userId, targetUserId string) error {
	p, err := s.projectRepo.GetProjectById(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get project failed: %w", err)
	}
	if err := s.tenant.RequireTeamOwner(userId, p.TeamId); err != nil {
		return err
	}
	if err := s.accessRepo.RevokeAccess(projectId, targetUserId); err != nil {
		return fmt.Errorf("revoke access failed: %w", err)
	}
	return nil
}

// ListAccess 项目访问行列表, 需要 EDIT
func (s *ProjectService) ListAccess(projectId, userId string) ([]*model.ProjectAccess, error) {
	if err := s.tenant.RequireProjectAccess(userId, projectId, model.AccessEdit); err != nil {
		return nil, err
	}
	return s.accessRepo.ListByProject(projectId)
}

func toProjectResp(p *model.Project, level string) *model.ProjectResp {
	return &model.ProjectResp{
		ProjectId:   p.ProjectId,
		TeamId:      p.TeamId,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		AccessLevel: level,
	}
}
