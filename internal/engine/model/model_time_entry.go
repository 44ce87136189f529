package model

import "time"

// TimeEntry 工时表
// ended_at 为空表示正在计时, 每个用户至多一条运行中的记录
type TimeEntry struct {
	BaseModel
	EntryId         string     `gorm:"column:entry_id" json:"entryId"`                 // 工时唯一标识
	UserId          string     `gorm:"column:user_id" json:"userId"`                   // 用户ID
	TeamId          string     `gorm:"column:team_id" json:"teamId"`                   // 团队ID
	ProjectId       string     `gorm:"column:project_id" json:"projectId"`             // 项目ID
	TaskId          string     `gorm:"column:task_id" json:"taskId"`                   // 任务ID(可空)
	StartedAt       time.Time  `gorm:"column:started_at" json:"startedAt"`             // 开始时间
	EndedAt         *time.Time `gorm:"column:ended_at" json:"endedAt"`                 // 结束时间
	DurationMinutes int        `gorm:"column:duration_minutes" json:"durationMinutes"` // 时长(分钟)
	Note            string     `gorm:"column:note" json:"note"`                        // 备注
}

func (TimeEntry) TableName() string {
	return "t_time_entry"
}

// StartTimerReq 启动计时请求
type StartTimerReq struct {
	ProjectId string `json:"projectId" validate:"required"`
	TaskId    string `json:"taskId"`
	Note      string `json:"note"`
}

// ManualEntryReq 手工补录工时请求
type ManualEntryReq struct {
	ProjectId string    `json:"projectId" validate:"required"`
	TaskId    string    `json:"taskId"`
	StartedAt time.Time `json:"startedAt" validate:"required"`
	EndedAt   time.Time `json:"endedAt" validate:"required,gtfield=StartedAt"`
	Note      string    `json:"note"`
}

// TimesheetSummaryResp 工时汇总响应
type TimesheetSummaryResp struct {
	From         time.Time      `json:"from"`
	To           time.Time      `json:"to"`
	TotalMinutes int            `json:"totalMinutes"`
	ByProject    map[string]int `json:"byProject"` // projectId -> 分钟数
	ByDay        map[string]int `json:"byDay"`     // yyyy-mm-dd -> 分钟数
}
