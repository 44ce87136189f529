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
	"errors"
	"fmt"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/http"
	"github.com/pulseplan/pulseplan/pkg/http/jwt"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repo.IUserRepository
	permRepo repo.IUserPermissionRepository
	auth     *http.Auth
}

func NewUserService(userRepo repo.IUserRepository, permRepo repo.IUserPermissionRepository, auth *http.Auth) *UserService {
	return &UserService{
		userRepo: userRepo,
		permRepo: permRepo,
		auth:     auth,
	}
}

// Register 注册
func (s *UserService) Register(req *model.RegisterReq) (*model.UserInfo, error) {
	// 1. 邮箱查重
	exists, err := s.userRepo.CheckEmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email failed: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	// 2. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	u := &model.User{
		UserId:    id.GetUUIDWithoutDashes(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hash),
		IsEnabled: 1,
	}
	if err := s.userRepo.CreateUser(u); err != nil {
		log.Errorw("create user failed", "email", req.Email, "error", err)
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	log.Infow("user registered", "userId", u.UserId, "email", u.Email)
	return toUserInfo(u), nil
}

// Login 登录, 成功后缓存会话 token
func (s *UserService) Login(req *model.LoginReq) (*model.LoginResp, error) {
	u, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotExist
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	if u.IsEnabled != 1 {
		return nil, ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	aToken, rToken, err := jwt.GenToken(u.UserId, []byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, fmt.Errorf("generate token failed: %w", err)
	}

	expire := s.auth.AccessExpire * time.Minute
	if err := s.userRepo.CacheToken(u.UserId, aToken, expire); err != nil {
		log.Errorw("cache token failed", "userId", u.UserId, "error", err)
		return nil, fmt.Errorf("cache token failed: %w", err)
	}
	info := toUserInfo(u)
	if err := s.userRepo.CacheUserInfo(u.UserId, info, expire); err != nil {
		log.Warnw("cache user info failed", "userId", u.UserId, "error", err)
	}

	return &model.LoginResp{
		UserInfo:     *info,
		AccessToken:  aToken,
		RefreshToken: rToken,
	}, nil
}

// Logout 登出, 删除会话 token
func (s *UserService) Logout(userId string) error {
	if err := s.userRepo.DeleteToken(userId); err != nil {
		return fmt.Errorf("delete token failed: %w", err)
	}
	return nil
}

// Refresh 刷新 token 并续期会话
func (s *UserService) Refresh(userId, refreshToken string) (map[string]string, error) {
	tokens, err := jwt.RefreshToken(s.auth, userId, refreshToken)
	if err != nil {
		return nil, err
	}
	expire := s.auth.AccessExpire * time.Minute
	if err := s.userRepo.CacheToken(userId, tokens["accessToken"], expire); err != nil {
		return nil, fmt.Errorf("cache token failed: %w", err)
	}
	return tokens, nil
}

// GetUserInfo 获取用户信息
func (s *UserService) GetUserInfo(userId string) (*model.UserInfo, error) {
	u, err := s.userRepo.GetUserById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotExist
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return toUserInfo(u), nil
}

// ListUsers 用户列表(管理端)
func (s *UserService) ListUsers(pageNum, pageSize int) ([]*model.UserInfo, int64, error) {
	users, total, err := s.userRepo.ListUsers(pageNum, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	out := make([]*model.UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, toUserInfo(u))
	}
	return out, total, nil
}

// CreateUser 创建用户(管理端)
func (s *UserService) CreateUser(req *model.CreateUserReq) (*model.UserInfo, error) {
	exists, err := s.userRepo.CheckEmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email failed: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	u := &model.User{
		UserId:    id.GetUUIDWithoutDashes(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hash),
		Avatar:    req.Avatar,
		IsEnabled: 1,
	}
	if err := s.userRepo.CreateUser(u); err != nil {
		return nil, fmt.Errorf("create user failed: %w", err)
	}
	return toUserInfo(u), nil
}

// UpdateUser 更新用户(管理端)
func (s *UserService) UpdateUser(userId string, req *model.UpdateUserReq) error {
	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.IsEnabled != nil {
		updates["is_enabled"] = *req.IsEnabled
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.userRepo.UpdateUser(userId, updates); err != nil {
		return fmt.Errorf("update user failed: %w", err)
	}
	return nil
}

// DeleteUser 删除用户(管理端), 同时使会话失效
func (s *UserService) DeleteUser(userId string) error {
	if err := s.userRepo.DeleteUser(userId); err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if err := s.userRepo.DeleteToken(userId); err != nil {
		log.Warnw("invalidate session failed", "userId", userId, "error", err)
	}
	return nil
}

// UpsertPermission 设置用户管理权限(仅所有者调用, 守卫在路由层)
func (s *UserService) UpsertPermission(req *model.UpsertPermissionReq) error {
	p := &model.UserPermission{
		UserId:         req.UserId,
		CanAccessUsers: req.CanAccessUsers,
		CanCreateUsers: req.CanCreateUsers,
		CanEditUsers:   req.CanEditUsers,
		CanDeleteUsers: req.CanDeleteUsers,
	}
	if err := s.permRepo.UpsertPermission(p); err != nil {
		return fmt.Errorf("upsert permission failed: %w", err)
	}
	return nil
}

// SetVaultPin 设置密码库 PIN
func (s *UserService) SetVaultPin(userId, pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin failed: %w", err)
	}
	if err := s.userRepo.SetVaultPinHash(userId, string(hash)); err != nil {
		return fmt.Errorf("set vault pin failed: %w", err)
	}
	return nil
}

func toUserInfo(u *model.User) *model.UserInfo {
	return &model.UserInfo{
		UserId:    u.UserId,
		Email:     u.Email,
		Username:  u.Username,
		Avatar:    u.Avatar,
		IsEnabled: u.IsEnabled,
	}
}
