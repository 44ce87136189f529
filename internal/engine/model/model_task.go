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

import "time"

// TaskState 任务看板状态
const (
	TaskStateBacklog    = "BACKLOG"
	TaskStateTodo       = "TODO"
	TaskStateInProgress = "IN_PROGRESS"
	TaskStateInReview   = "IN_REVIEW"
	TaskStateDone       = "DONE"
)

// TaskRecurrence 任务重复规则
const (
	RecurrenceNone    = "NONE"
	RecurrenceDaily   = "DAILY"
	RecurrenceWeekly  = "WEEKLY"
	RecurrenceMonthly = "MONTHLY"
	RecurrenceYearly  = "YEARLY"
)

// Task 任务表
type Task struct {
	BaseModel
	TaskId           string     `gorm:"column:task_id" json:"taskId"`                     // 任务唯一标识
	TeamId           string     `gorm:"column:team_id" json:"teamId"`                     // 所属团队ID
	ProjectId        string     `gorm:"column:project_id" json:"projectId"`               // 所属项目ID
	Title            string     `gorm:"column:title" json:"title"`                        // 标题
	Description      string     `gorm:"column:description" json:"description"`            // 描述
	State            string     `gorm:"column:state" json:"state"`                        // 看板状态
	Position         float64    `gorm:"column:position" json:"position"`                  // 看板列内排序
	AssigneeId       string     `gorm:"column:assignee_id" json:"assigneeId"`             // 负责人用户ID
	DueAt            *time.Time `gorm:"column:due_at" json:"dueAt"`                       // 截止时间
	Recurrence       string     `gorm:"column:recurrence" json:"recurrence"`              // 重复规则
	RecurrenceAnchor *time.Time `gorm:"column:recurrence_anchor" json:"recurrenceAnchor"` // 重复锚点时间
	CreatedBy        string     `gorm:"column:created_by" json:"createdBy"`               // 创建者用户ID
}

func (Task) TableName() string {
	return "t_task"
}

// CreateTaskReq 创建任务请求
type CreateTaskReq struct {
	ProjectId        string     `json:"projectId" validate:"required"`
	Title            string     `json:"title" validate:"required,min=1,max=255"`
	Description      string     `json:"description"`
	State            string     `json:"state" validate:"omitempty,oneof=BACKLOG TODO IN_PROGRESS IN_REVIEW DONE"`
	AssigneeId       string     `json:"assigneeId"`
	DueAt            *time.Time `json:"dueAt"`
	Recurrence       string     `json:"recurrence" validate:"omitempty,oneof=NONE DAILY WEEKLY MONTHLY YEARLY"`
	RecurrenceAnchor *time.Time `json:"recurrenceAnchor"`
}

// UpdateTaskReq 更新任务请求
type UpdateTaskReq struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	AssigneeId       *string    `json:"assigneeId,omitempty"`
	DueAt            *time.Time `json:"dueAt,omitempty"`
	Recurrence       *string    `json:"recurrence,omitempty" validate:"omitempty,oneof=NONE DAILY WEEKLY MONTHLY YEARLY"`
	RecurrenceAnchor *time.Time `json:"recurrenceAnchor,omitempty"`
}

// MoveTaskReq 看板移动请求(跨列或列内排序)
type MoveTaskReq struct {
	State    string  `json:"state" validate:"required,oneof=BACKLOG TODO IN_PROGRESS IN_REVIEW DONE"`
	Position float64 `json:"position"`
}

// TaskBoardResp 看板响应, 按状态分组, 列内按 position 升序
type TaskBoardResp struct {
	ProjectId string            `json:"projectId"`
	Columns   map[string][]Task `json:"columns"`
}

// TaskQueryReq 任务查询请求
type TaskQueryReq struct {
	ProjectId  string `json:"projectId" form:"projectId"`
	State      string `json:"state" form:"state"`
	AssigneeId string `json:"assigneeId" form:"assigneeId"`
	PageNum    int    `json:"pageNum" form:"pageNum"`
	PageSize   int    `json:"pageSize" form:"pageSize"`
}
