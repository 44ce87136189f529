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

package model

// User 用户表
type User struct {
	BaseModel
	UserId       string `gorm:"column:user_id" json:"userId"`       // 用户唯一标识
	Email        string `gorm:"column:email" json:"email"`          // 邮箱(唯一)
	Username     string `gorm:"column:username" json:"username"`    // 用户名
	Password     string `gorm:"column:password" json:"-"`           // 密码(bcrypt)
	Avatar       string `gorm:"column:avatar" json:"avatar"`        // 头像
	VaultPinHash string `gorm:"column:vault_pin_hash" json:"-"`     // 密码库 PIN(bcrypt), 为空表示未设置
	IsEnabled    int    `gorm:"column:is_enabled" json:"isEnabled"` // 是否启用: 0-禁用, 1-启用
}

func (User) TableName() string {
	return "t_user"
}

// RegisterReq 注册请求
type RegisterReq struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResp 登录响应
type LoginResp struct {
	UserInfo     UserInfo `json:"userInfo"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// UserInfo 用户信息(不含敏感字段)
type UserInfo struct {
	UserId    string `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	IsEnabled int    `json:"isEnabled"`
}

// CreateUserReq 创建用户请求(管理端)
type CreateUserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Avatar   string `json:"avatar"`
}

// UpdateUserReq 更新用户请求
type UpdateUserReq struct {
	Username  *string `json:"username,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	IsEnabled *int    `json:"isEnabled,omitempty"`
}

// SetVaultPinReq 设置密码库 PIN
type SetVaultPinReq struct {
	Pin string `json:"pin" validate:"required,min=4,max=32"`
}
