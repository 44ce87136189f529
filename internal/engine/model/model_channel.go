package model

import "gorm.io/datatypes"

// ChannelType 频道类型
const (
	ChannelTypeTeam   = "TEAM"   // 团队公共频道
	ChannelTypeDirect = "DIRECT" // 私聊会话
)

// Channel 频道表
type Channel struct {
	BaseModel
	ChannelId    string         `gorm:"column:channel_id" json:"channelId"`                // 频道唯一标识
	TeamId       string         `gorm:"column:team_id" json:"teamId"`                      // 团队ID
	Name         string         `gorm:"column:name" json:"name"`                           // 频道名称, 私聊为空
	Type         string         `gorm:"column:type" json:"type"`                           // 类型: TEAM/DIRECT
	Participants datatypes.JSON `gorm:"column:participants;type:json" json:"participants"` // 私聊参与者用户ID列表
	CreatedBy    string         `gorm:"column:created_by" json:"createdBy"`                // 创建者用户ID
}

func (Channel) TableName() string {
	return "t_channel"
}

// CreateChannelReq 创建频道请求
type CreateChannelReq struct {
	Name         string   `json:"name" validate:"required_if=Type TEAM"`
	Type         string   `json:"type" validate:"required,oneof=TEAM DIRECT"`
	Participants []string `json:"participants" validate:"required_if=Type DIRECT"`
}
