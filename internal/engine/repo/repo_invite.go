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

package repo

import (
	"errors"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IInviteRepository interface {
	CreateInvite(inv *model.TeamInvite) error
	GetByToken(token string) (*model.TeamInvite, error)
	ListByTeam(teamId string) ([]*model.TeamInvite, error)
	HasPendingByEmail(teamId, email string) (bool, error)
	AcceptTeamInvite(inv *model.TeamInvite, member *model.TeamMember) error
	AcceptClientInvite(inv *model.TeamInvite, access *model.ProjectAccess) error
}

type InviteRepo struct {
	database.IDatabase
}

func NewInviteRepo(db database.IDatabase) IInviteRepository {
	return &InviteRepo{IDatabase: db}
}

// CreateInvite 创建邀请
func (r *InviteRepo) CreateInvite(inv *model.TeamInvite) error {
	return r.Database().Create(inv).Error
}

// GetByToken 根据令牌获取邀请, 不存在返回 nil
func (r *InviteRepo) GetByToken(token string) (*model.TeamInvite, error) {
	var inv model.TeamInvite
	err := r.Database().Where("token = ?", token).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListByTeam 团队邀请列表
func (r *InviteRepo) ListByTeam(teamId string) ([]*model.TeamInvite, error) {
	var invites []*model.TeamInvite
	err := r.Database().Where("team_id = ?", teamId).
		Order("id DESC").Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// HasPendingByEmail 同团队同邮箱是否已有待处理邀请
func (r *InviteRepo) HasPendingByEmail(teamId, email string) (bool, error) {
	var count int64
	err := r.Database().Model(&model.TeamInvite{}).
		Where("team_id = ? AND email = ? AND status = ?", teamId, email, model.InviteStatusPending).
		Count(&count).Error
	return count > 0, err
}

// AcceptTeamInvite 接受团队邀请
// 事务内: 幂等插入成员行, 清理该用户在邀请项目上遗留的访问行, 置 ACCEPTED
// 重复接受收敛到同一终态, 不产生重复行
func (r *InviteRepo) AcceptTeamInvite(inv *model.TeamInvite, member *model.TeamMember) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(member).Error; err != nil {
			return err
		}
		if inv.ProjectId != "" {
			if err := tx.Where("project_id = ? AND user_id = ?", inv.ProjectId, member.UserId).
				Delete(&model.ProjectAccess{}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.TeamInvite{}).
			Where("invite_id = ?", inv.InviteId).
			Update("status", model.InviteStatusAccepted).Error
	})
}

// AcceptClientInvite 接受客户邀请, 只授予单项目 READ, 不建立团队成员关系
func (r *InviteRepo) AcceptClientInvite(inv *model.TeamInvite, access *model.ProjectAccess) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(access).Error; err != nil {
			return err
		}
		return tx.Model(&model.TeamInvite{}).
			Where("invite_id = ?", inv.InviteId).
			Update("status", model.InviteStatusAccepted).Error
	})
}
