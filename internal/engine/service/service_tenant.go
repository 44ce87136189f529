// Copyright 2025 PulsePlan Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"fmt"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/log"
)

// TenantService 租户与权限解析
// 所有路由守卫统一经由本服务判定, 权限规则不在其他服务重复实现
type TenantService struct {
	teamRepo    repo.ITeamRepository
	projectRepo repo.IProjectRepository
	accessRepo  repo.IProjectAccessRepository
	permRepo    repo.IUserPermissionRepository
}

func NewTenantService(
	teamRepo repo.ITeamRepository,
	projectRepo repo.IProjectRepository,
	accessRepo repo.IProjectAccessRepository,
	permRepo repo.IUserPermissionRepository,
) *TenantService {
	return &TenantService{
		teamRepo:    teamRepo,
		projectRepo: projectRepo,
		accessRepo:  accessRepo,
		permRepo:    permRepo,
	}
}

// ResolveWorkspace 解析当前工作区
// cookie 指定的团队仅在存在成员关系时生效, 否则回落到最早加入的团队;
// 无任何成员关系(纯客户用户)返回 nil, 不视为错误
func (s *TenantService) ResolveWorkspace(userId, cookieTeamId string) (*model.Team, error) {
	if cookieTeamId != "" {
		m, err := s.teamRepo.GetMember(cookieTeamId, userId)
		if err != nil {
			return nil, fmt.Errorf("resolve workspace failed: %w", err)
		}
		if m != nil {
			return s.teamRepo.GetTeamById(cookieTeamId)
		}
	}

	teams, err := s.teamRepo.GetTeamsByUserId(userId)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace failed: %w", err)
	}
	if len(teams) == 0 {
		return nil, nil
	}
	return teams[0], nil
}

// ProjectScope 当前用户在工作区内的项目可见范围
// 所有者: 团队全部项目 EDIT, 不查访问行
// 成员: 团队全部项目默认 READ, 显式访问行覆盖(可升级到 EDIT)
// 非成员(客户): 仅显式访问行指向的项目, 级别取行值
func (s *TenantService) ProjectScope(userId, teamId string) (*model.ProjectScope, error) {
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, fmt.Errorf("get team failed: %w", err)
	}

	scope := &model.ProjectScope{
		WorkspaceId: teamId,
		AccessMap:   make(map[string]string),
	}

	if team.OwnerId == userId {
		scope.IsOwner = true
		projects, err := s.projectRepo.GetProjectsByTeamId(teamId)
		if err != nil {
			return nil, fmt.Errorf("list team projects failed: %w", err)
		}
		for _, p := range projects {
			scope.ProjectIds = append(scope.ProjectIds, p.ProjectId)
			scope.AccessMap[p.ProjectId] = model.AccessEdit
		}
		return scope, nil
	}

	member, err := s.teamRepo.GetMember(teamId, userId)
	if err != nil {
		return nil, fmt.Errorf("get member failed: %w", err)
	}

	rows, err := s.accessRepo.ListByUser(userId)
	if err != nil {
		return nil, fmt.Errorf("list access rows failed: %w", err)
	}
	rowByProject := make(map[string]*model.ProjectAccess, len(rows))
	for _, row := range rows {
		rowByProject[row.ProjectId] = row
	}

	if member != nil {
		projects, err := s.projectRepo.GetProjectsByTeamId(teamId)
		if err != nil {
			return nil, fmt.Errorf("list team projects failed: %w", err)
		}
		for _, p := range projects {
			level := model.AccessRead
			if row, ok := rowByProject[p.ProjectId]; ok {
				level = row.AccessLevel
			}
			scope.ProjectIds = append(scope.ProjectIds, p.ProjectId)
			scope.AccessMap[p.ProjectId] = level
		}
		return scope, nil
	}

	// 客户: 只能看到显式授权且属于该团队的项目
	projectIds := make([]string, 0, len(rows))
	for _, row := range rows {
		projectIds = append(projectIds, row.ProjectId)
	}
	projects, err := s.projectRepo.GetProjectsByIds(projectIds)
	if err != nil {
		return nil, fmt.Errorf("batch get projects failed: %w", err)
	}
	for _, p := range projects {
		if p.TeamId != teamId {
			continue
		}
		scope.ProjectIds = append(scope.ProjectIds, p.ProjectId)
		scope.AccessMap[p.ProjectId] = rowByProject[p.ProjectId].AccessLevel
	}
	return scope, nil
}

// EffectiveAccess 单项目有效访问级别, 无权限返回空串
// 所有者 -> EDIT; 显式行 -> 行级别; 成员无行 -> READ; 其余无权限
func (s *TenantService) EffectiveAccess(userId, projectId string) (string, error) {
	project, err := s.projectRepo.GetProjectById(projectId)
	if err != nil {
		return "", fmt.Errorf("get project failed: %w", err)
	}

	team, err := s.teamRepo.GetTeamById(project.TeamId)
	if err != nil {
		return "", fmt.Errorf("get team failed: %w", err)
	}
	if team.OwnerId == userId {
		return model.AccessEdit, nil
	}

	row, err := s.accessRepo.GetAccess(projectId, userId)
	if err != nil {
		return "", fmt.Errorf("get access row failed: %w", err)
	}
	if row != nil {
		return row.AccessLevel, nil
	}

	member, err := s.teamRepo.GetMember(project.TeamId, userId)
	if err != nil {
		return "", fmt.Errorf("get member failed: %w", err)
	}
	if member != nil {
		return model.AccessRead, nil
	}
	return "", nil
}

// RequireProjectAccess 访问守卫, need 为 READ 或 EDIT
func (s *TenantService) RequireProjectAccess(userId, projectId, need string) error {
	level, err := s.EffectiveAccess(userId, projectId)
	if err != nil {
		return err
	}
	if level == "" {
		return ErrForbidden
	}
	if need == model.AccessEdit && level != model.AccessEdit {
		return ErrForbidden
	}
	return nil
}

// Capabilities 用户在指定工作区的管理能力
// 所有者无需权限行即通过全部校验; 子能力以 canAccessUsers 为前置
func (s *TenantService) Capabilities(userId, teamId string) (*model.Capabilities, error) {
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, fmt.Errorf("get team failed: %w", err)
	}
	isOwner := team.OwnerId == userId

	perm, err := s.permRepo.GetByUserId(userId)
	if err != nil {
		return nil, fmt.Errorf("get permission failed: %w", err)
	}
	if perm == nil {
		perm = &model.UserPermission{}
	}

	caps := &model.Capabilities{IsSuperAdmin: isOwner}
	caps.CanAccessUsers = isOwner || perm.CanAccessUsers
	caps.CanCreateUsers = caps.CanAccessUsers && (isOwner || perm.CanCreateUsers)
	caps.CanEditUsers = caps.CanAccessUsers && (isOwner || perm.CanEditUsers)
	caps.CanDeleteUsers = caps.CanAccessUsers && (isOwner || perm.CanDeleteUsers)
	return caps, nil
}

// RequireTeamOwner 仅工作区所有者可通过
func (s *TenantService) RequireTeamOwner(userId, teamId string) error {
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		return fmt.Errorf("get team failed: %w", err)
	}
	if team.OwnerId != userId {
		log.Warnw("owner check failed", "userId", userId, "teamId", teamId)
		return ErrForbidden
	}
	return nil
}

// RequireTeamMember 所有者或成员可通过
func (s *TenantService) RequireTeamMember(userId, teamId string) error {
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		return fmt.Errorf("get team failed: %w", err)
	}
	if team.OwnerId == userId {
		return nil
	}
	m, err := s.teamRepo.GetMember(teamId, userId)
	if err != nil {
		return fmt.Errorf("get member failed: %w", err)
	}
	if m == nil {
		return ErrForbidden
	}
	return nil
}
