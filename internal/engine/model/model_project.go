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

// Project 项目表
type Project struct {
	BaseModel
	ProjectId   string `gorm:"column:project_id" json:"projectId"`    // 项目唯一标识
	TeamId      string `gorm:"column:team_id" json:"teamId"`          // 所属团队ID
	Name        string `gorm:"column:name" json:"name"`               // 项目名称
	Description string `gorm:"column:description" json:"description"` // 项目描述
	Status      int    `gorm:"column:status" json:"status"`           // 项目状态: 0-未激活, 1-正常, 2-归档
	CreatedBy   string `gorm:"column:created_by" json:"createdBy"`    // 创建者用户ID
}

func (Project) TableName() string {
	return "t_project"
}

// ProjectStatus 项目状态枚举
const (
	ProjectStatusInactive = 0 // 未激活
	ProjectStatusActive   = 1 // 正常
	ProjectStatusArchived = 2 // 归档
)

// CreateProjectReq 创建项目请求
type CreateProjectReq struct {
	Name        string `json:"name" validate:"required,min=2,max=128"`
	Description string `json:"description"`
}

// UpdateProjectReq 更新项目请求
type UpdateProjectReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *int    `json:"status,omitempty"`
}

// ProjectResp 项目响应, accessLevel 为当前用户的有效访问级别
type ProjectResp struct {
	ProjectId   string `json:"projectId"`
	TeamId      string `json:"teamId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	AccessLevel string `json:"accessLevel"`
}
