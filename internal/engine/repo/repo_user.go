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
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pulseplan/pulseplan/internal/engine/consts"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/database"
)

type IUserRepository interface {
	CreateUser(u *model.User) error
	UpdateUser(userId string, updates map[string]interface{}) error
	DeleteUser(userId string) error
	GetUserById(userId string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	ListUsers(pageNum, pageSize int) ([]*model.User, int64, error)
	CheckEmailExists(email string) (bool, error)
	SetVaultPinHash(userId, pinHash string) error

	CacheToken(userId, accessToken string, expire time.Duration) error
	DeleteToken(userId string) error
	CacheUserInfo(userId string, info *model.UserInfo, expire time.Duration) error
}

type UserRepo struct {
	database.IDatabase
	cache cache.ICache
}

func NewUserRepo(db database.IDatabase, c cache.ICache) IUserRepository {
	return &UserRepo{IDatabase: db, cache: c}
}

// CreateUser 创建用户
func (r *UserRepo) CreateUser(u *model.User) error {
	return r.Database().Create(u).Error
}

// UpdateUser 更新用户
func (r *UserRepo) UpdateUser(userId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.User{}).
		Where("user_id = ?", userId).
		Updates(updates).Error
}

// DeleteUser 删除用户
func (r *UserRepo) DeleteUser(userId string) error {
	return r.Database().Where("user_id = ?", userId).Delete(&model.User{}).Error
}

// GetUserById 根据用户ID获取用户
func (r *UserRepo) GetUserById(userId string) (*model.User, error) {
	var u model.User
	err := r.Database().Where("user_id = ?", userId).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail 根据邮箱获取用户
func (r *UserRepo) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.Database().Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers 分页查询用户
func (r *UserRepo) ListUsers(pageNum, pageSize int) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	db := r.Database().Model(&model.User{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := db.Order("id ASC").
		Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CheckEmailExists 检查邮箱是否已注册
func (r *UserRepo) CheckEmailExists(email string) (bool, error) {
	var count int64
	err := r.Database().Model(&model.User{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// SetVaultPinHash 设置密码库 PIN
func (r *UserRepo) SetVaultPinHash(userId, pinHash string) error {
	return r.Database().Model(&model.User{}).
		Where("user_id = ?", userId).
		Update("vault_pin_hash", pinHash).Error
}

// CacheToken 缓存会话 token, TTL 到期即会话失效
func (r *UserRepo) CacheToken(userId, accessToken string, expire time.Duration) error {
	key := consts.UserTokenKey + userId
	return r.cache.Set(context.Background(), key, accessToken, expire).Err()
}

// DeleteToken 删除会话 token(登出)
func (r *UserRepo) DeleteToken(userId string) error {
	key := consts.UserTokenKey + userId
	return r.cache.Del(context.Background(), key).Err()
}

// CacheUserInfo 缓存用户信息
func (r *UserRepo) CacheUserInfo(userId string, info *model.UserInfo, expire time.Duration) error {
	key := consts.UserInfoKey + userId
	data, err := sonic.Marshal(info)
	if err != nil {
		return err
	}
	return r.cache.Set(context.Background(), key, string(data), expire).Err()
}
