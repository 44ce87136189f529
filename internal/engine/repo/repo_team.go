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

type ITeamRepository interface {
	CreateTeam(t *model.Team, ownerMember *model.TeamMember) error
	UpdateTeam(teamId string, updates map[string]interface{}) error
	DeleteTeam(teamId string) error
	GetTeamById(teamId string) (*model.Team, error)
	GetTeamsByUserId(userId string) ([]*model.Team, error)
	CheckTeamExists(teamId string) (bool, error)

	AddMember(m *model.TeamMember) error
	RemoveMember(teamId, userId string) error
	GetMember(teamId, userId string) (*model.TeamMember, error)
	ListMembers(teamId string) ([]*model.TeamMember, error)
	ListMemberships(userId string) ([]*model.TeamMember, error)
}

type TeamRepo struct {
	database.IDatabase
}

func NewTeamRepo(db database.IDatabase) ITeamRepository {
	return &TeamRepo{IDatabase: db}
}

// CreateTeam 创建团队, 团队与所有者成员行在同一事务写入
func (r *TeamRepo) CreateTeam(t *model.Team, ownerMember *model.TeamMember) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.Create(ownerMember).Error
	})
}

// UpdateTeam 更新团队
func (r *TeamRepo) UpdateTeam(teamId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Team{}).
		Where("team_id = ?", teamId).
		Updates(updates).Error
}

// DeleteTeam 删除团队及其成员行
func (r *TeamRepo) DeleteTeam(teamId string) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamId).Delete(&model.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Where("team_id = ?", teamId).Delete(&model.Team{}).Error
	})
}

// GetTeamById 根据团队ID获取团队
func (r *TeamRepo) GetTeamById(teamId string) (*model.Team, error) {
	var t model.Team
	err := r.Database().Where("team_id = ?", teamId).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTeamsByUserId 获取用户所属的团队, 按成员行插入顺序排列
func (r *TeamRepo) GetTeamsByUserId(userId string) ([]*model.Team, error) {
	var teams []*model.Team
	err := r.Database().Model(&model.Team{}).
		Joins("JOIN t_team_member ON t_team_member.team_id = t_team.team_id").
		Where("t_team_member.user_id = ?", userId).
		Order("t_team_member.id ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// CheckTeamExists 检查团队是否存在
func (r *TeamRepo) CheckTeamExists(teamId string) (bool, error) {
	var count int64
	err := r.Database().Model(&model.Team{}).
		Where("team_id = ?", teamId).Count(&count).Error
	return count > 0, err
}

// AddMember 添加成员, (team_id, user_id) 冲突时幂等
func (r *TeamRepo) AddMember(m *model.TeamMember) error {
	return r.Database().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(m).Error
}

// RemoveMember 移除成员
func (r *TeamRepo) RemoveMember(teamId, userId string) error {
	return r.Database().Where("team_id = ? AND user_id = ?", teamId, userId).
		Delete(&model.TeamMember{}).Error
}

// GetMember 获取成员行, 非成员返回 nil
func (r *TeamRepo) GetMember(teamId, userId string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.Database().Where("team_id = ? AND user_id = ?", teamId, userId).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMembers 团队成员列表
func (r *TeamRepo) ListMembers(teamId string) ([]*model.TeamMember, error) {
	var members []*model.TeamMember
	err := r.Database().Where("team_id = ?", teamId).
		Order("id ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ListMemberships 用户的成员行, 按插入顺序排列
func (r *TeamRepo) ListMemberships(userId string) ([]*model.TeamMember, error) {
	var members []*model.TeamMember
	err := r.Database().Where("user_id = ?", userId).
		Order("id ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
