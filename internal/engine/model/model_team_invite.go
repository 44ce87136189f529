package model

import "time"

// InviteType 邀请类型
const (
	InviteTypeTeam          = "TEAM"           // 加入团队
	InviteTypeProjectClient = "PROJECT_CLIENT" // 仅访问单个项目(客户)
)

// InviteStatus 邀请状态, PENDING -> ACCEPTED 为终态迁移
const (
	InviteStatusPending  = "PENDING"
	InviteStatusAccepted = "ACCEPTED"
)

// TeamInvite 团队邀请表
type TeamInvite struct {
	BaseModel
	InviteId  string    `gorm:"column:invite_id" json:"inviteId"`   // 邀请唯一标识
	Token     string    `gorm:"column:token;uniqueIndex" json:"-"`  // 邀请令牌(唯一)
	TeamId    string    `gorm:"column:team_id" json:"teamId"`       // 团队ID
	ProjectId string    `gorm:"column:project_id" json:"projectId"` // 项目ID, TEAM 类型可为空
	Email     string    `gorm:"column:email" json:"email"`          // 受邀邮箱
	Type      string    `gorm:"column:type" json:"type"`            // 类型: TEAM/PROJECT_CLIENT
	Status    string    `gorm:"column:status" json:"status"`        // 状态: PENDING/ACCEPTED
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expiresAt"` // 过期时间
	InvitedBy string    `gorm:"column:invited_by" json:"invitedBy"` // 邀请人用户ID
}

func (TeamInvite) TableName() string {
	return "t_team_invite"
}

// CreateInviteReq 创建邀请请求
type CreateInviteReq struct {
	Email     string `json:"email" validate:"required,email"`
	Type      string `json:"type" validate:"required,oneof=TEAM PROJECT_CLIENT"`
	ProjectId string `json:"projectId" validate:"required_if=Type PROJECT_CLIENT"`
}

// AcceptInviteReq 接受邀请请求
type AcceptInviteReq struct {
	Token string `json:"token" validate:"required"`
}
