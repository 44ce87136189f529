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
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/log"
)

// inviteTTL 邀请有效期
const inviteTTL = 7 * 24 * time.Hour

// InviteNotifier 邀请创建后的异步通知(邮件入队)
type InviteNotifier interface {
	EnqueueInviteEmail(email, token, teamName string) error
}

type InviteService struct {
	inviteRepo repo.IInviteRepository
	teamRepo   repo.ITeamRepository
	userRepo   repo.IUserRepository
	tenant     *TenantService
	notifier   InviteNotifier
}

// NewInviteService notifier 可为 nil(如 CLI 场景), 此时跳过邮件入队
func NewInviteService(
	inviteRepo repo.IInviteRepository,
	teamRepo repo.ITeamRepository,
	userRepo repo.IUserRepository,
	tenant *TenantService,
	notifier InviteNotifier,
) *InviteService {
	return &InviteService{
		inviteRepo: inviteRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		tenant:     tenant,
		notifier:   notifier,
	}
}

// CreateInvite 创建邀请
// 守卫: 仅工作区所有者; 同团队同邮箱存在 PENDING 邀请时拒绝
func (s *InviteService) CreateInvite(teamId, userId string, req *model.CreateInviteReq) (*model.TeamInvite, error) {
	if err := s.tenant.RequireTeamOwner(userId, teamId); err != nil {
		return nil, err
	}
	if req.Type == model.InviteTypeProjectClient {
		if err := s.tenant.RequireProjectAccess(userId, req.ProjectId, model.AccessEdit); err != nil {
			return nil, err
		}
	}

	pending, err := s.inviteRepo.HasPendingByEmail(teamId, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check pending invite failed: %w", err)
	}
	if pending {
		return nil, ErrInvitePending
	}

	inv := &model.TeamInvite{
		InviteId:  id.GetUUID(),
		Token:     id.GetUUIDWithoutDashes(),
		TeamId:    teamId,
		ProjectId: req.ProjectId,
		Email:     req.Email,
		Type:      req.Type,
		Status:    model.InviteStatusPending,
		ExpiresAt: time.Now().Add(inviteTTL),
		InvitedBy: userId,
	}
	if err := s.inviteRepo.CreateInvite(inv); err != nil {
		log.Errorw("create invite failed", "teamId", teamId, "email", req.Email, "error", err)
		return nil, fmt.Errorf("create invite failed: %w", err)
	}

	if s.notifier != nil {
		teamName := teamId
		if team, err := s.teamRepo.GetTeamById(teamId); err == nil {
			teamName = team.Name
		}
		if err := s.notifier.EnqueueInviteEmail(inv.Email, inv.Token, teamName); err != nil {
			log.Warnw("enqueue invite email failed", "inviteId", inv.InviteId, "error", err)
		}
	}

	log.Infow("invite created", "inviteId", inv.InviteId, "teamId", teamId, "type", req.Type)
	return inv, nil
}

// ListInvites 邀请列表, 仅所有者
func (s *InviteService) ListInvites(teamId, userId string) ([]*model.TeamInvite, error) {
	if err := s.tenant.RequireTeamOwner(userId, teamId); err != nil {
		return nil, err
	}
	return s.inviteRepo.ListByTeam(teamId)
}

// AcceptInvite 按令牌接受邀请
// 守卫: 令牌存在且 PENDING, 未过期, 邮箱与接受者一致; 过期邀请读取即失败不落库
// 接受在单事务内完成, 重复接受幂等收敛
func (s *InviteService) AcceptInvite(userId, token string) (*model.TeamInvite, error) {
	inv, err := s.inviteRepo.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("get invite failed: %w", err)
	}
	if inv == nil || inv.Status != model.InviteStatusPending {
		return nil, ErrInviteInvalid
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, ErrInviteExpired
	}

	u, err := s.userRepo.GetUserById(userId)
	if err != nil {
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	if u.Email != inv.Email {
		return nil, ErrInviteMismatch
	}

	switch inv.Type {
	case model.InviteTypeTeam:
		member := &model.TeamMember{
			TeamId: inv.TeamId,
			UserId: userId,
			Role:   model.TeamRoleMember,
		}
		if err := s.inviteRepo.AcceptTeamInvite(inv, member); err != nil {
			log.Errorw("accept team invite failed", "inviteId", inv.InviteId, "error", err)
			return nil, fmt.Errorf("accept invite failed: %w", err)
		}

	case model.InviteTypeProjectClient:
		access := &model.ProjectAccess{
			ProjectId:   inv.ProjectId,
			UserId:      userId,
			AccessLevel: model.AccessRead,
			Role:        model.ProjectRoleClient,
			GrantedBy:   inv.InvitedBy,
		}
		if err := s.inviteRepo.AcceptClientInvite(inv, access); err != nil {
			log.Errorw("accept client invite failed", "inviteId", inv.InviteId, "error", err)
			return nil, fmt.Errorf("accept invite failed: %w", err)
		}

	default:
		return nil, ErrInviteInvalid
	}

	inv.Status = model.InviteStatusAccepted
	log.Infow("invite accepted", "inviteId", inv.InviteId, "userId", userId)
	return inv, nil
}
