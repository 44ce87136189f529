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

type TeamService struct {
	teamRepo repo.ITeamRepository
	userRepo repo.IUserRepository
	tenant   *TenantService
}

func NewTeamService(teamRepo repo.ITeamRepository, userRepo repo.IUserRepository, tenant *TenantService) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		tenant:   tenant,
	}
}

// CreateTeam 创建工作区, 创建者即所有者
func (s *TeamService) CreateTeam(req *model.CreateTeamReq, ownerId string) (*model.TeamResp, error) {
	teamEntity := &model.Team{
		TeamId:      id.GetUUID(),
		Name:        req.Name,
		Description: req.Description,
		Avatar:      req.Avatar,
		OwnerId:     ownerId,
		IsEnabled:   1,
	}
	ownerMember := &model.TeamMember{
		TeamId: teamEntity.TeamId,
		UserId: ownerId,
		Role:   model.TeamRoleOwner,
	}

	if err := s.teamRepo.CreateTeam(teamEntity, ownerMember); err != nil {
		log.Errorw("create team failed", "name", req.Name, "error", err)
		return nil, fmt.Errorf("create team failed: %w", err)
	}

	log.Infow("team created", "teamId", teamEntity.TeamId, "ownerId", ownerId)
	return toTeamResp(teamEntity, ownerId), nil
}

// UpdateTeam 更新工作区, 仅所有者
func (s *TeamService) UpdateTeam(teamId, userId string, req *model.UpdateTeamReq) error {
	if err := s.tenant.RequireTeamOwner(userId, teamId); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.teamRepo.UpdateTeam(teamId, updates); err != nil {
		return fmt.Errorf("update team failed: %w", err)
	}
	return nil
}

// DeleteTeam 删除工作区, 仅所有者
func (s *TeamService) DeleteTeam(teamId, userId string) error {
	if err := s.tenant.RequireTeamOwner(userId, teamId); err != nil {
		return err
	}
	if err := s.teamRepo.DeleteTeam(teamId); err != nil {
		return fmt.Errorf("delete team failed: %w", err)
	}
	log.Infow("team deleted", "teamId", teamId)
	return nil
}

// GetTeam 获取工作区详情, 成员可见
func (s *TeamService) GetTeam(teamId, userId string) (*model.TeamResp, error) {
	if err := s.tenant.RequireTeamMember(userId, teamId); err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get team failed: %w", err)
	}
	return toTeamResp(team, userId), nil
}

// ListTeams 当前用户的工作区列表
func (s *TeamService) ListTeams(userId string) ([]*model.TeamResp, error) {
	teams, err := s.teamRepo.GetTeamsByUserId(userId)
	if err != nil {
		return nil, fmt.Errorf("list teams failed: %w", err)
	}
	out := make([]*model.TeamResp, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResp(t, userId))
	}
	return out, nil
}

// ListMembers 成员列表, 成员可见
func (s *TeamService) ListMembers(teamId, userId string) ([]*model.TeamMemberResp, error) {
	if err := s.tenant.RequireTeamMember(userId, teamId); err != nil {
		return nil, err
	}
	members, err := s.teamRepo.ListMembers(teamId)
	if err != nil {
		return nil, fmt.Errorf("list members failed: %w", err)
	}

	out := make([]*model.TeamMemberResp, 0, len(members))
	for _, m := range members {
		resp := &model.TeamMemberResp{UserId: m.UserId, Role: m.Role}
		if u, err := s.userRepo.GetUserById(m.UserId); err == nil {
			resp.Username = u.Username
			resp.Email = u.Email
			resp.Avatar = u.Avatar
		}
		out = append(out, resp)
	}
	return out, nil
}

// RemoveMember 移除成员, 仅所有者, 所有者不可被移除
func (s *TeamService) RemoveMember(teamId, userId, targetUserId string) error {
	if err := s.tenant.RequireTeamOwner(userId, teamId); err != nil {
		return err
	}
	team, err := s.teamRepo.GetTeamById(teamId)
	if err != nil {
		return fmt.Errorf("get team failed: %w", err)
	}
	if team.OwnerId == targetUserId {
		return ErrForbidden
	}
	if err := s.teamRepo.RemoveMember(teamId, targetUserId); err != nil {
		return fmt.Errorf("remove member failed: %w", err)
	}
	return nil
}

func toTeamResp(t *model.Team, userId string) *model.TeamResp {
	return &model.TeamResp{
		TeamId:      t.TeamId,
		Name:        t.Name,
		Description: t.Description,
		Avatar:      t.Avatar,
		OwnerId:     t.OwnerId,
		IsOwner:     t.OwnerId == userId,
	}
}
