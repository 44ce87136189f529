package model

// Team 工作区(团队)表
type Team struct {
	BaseModel
	TeamId      string `gorm:"column:team_id" json:"teamId"`          // 团队唯一标识
	Name        string `gorm:"column:name" json:"name"`               // 团队名称
	Description string `gorm:"column:description" json:"description"` // 团队描述
	Avatar      string `gorm:"column:avatar" json:"avatar"`           // 团队头像
	OwnerId     string `gorm:"column:owner_id" json:"ownerId"`        // 所有者用户ID, 对团队下所有项目隐含 EDIT
	IsEnabled   int    `gorm:"column:is_enabled" json:"isEnabled"`    // 是否启用: 0-禁用, 1-启用
}

func (Team) TableName() string {
	return "t_team"
}

// CreateTeamReq 创建团队请求
type CreateTeamReq struct {
	Name        string `json:"name" validate:"required,min=2,max=128"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

// UpdateTeamReq 更新团队请求
type UpdateTeamReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// TeamResp 团队响应
type TeamResp struct {
	TeamId      string `json:"teamId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	OwnerId     string `json:"ownerId"`
	IsOwner     bool   `json:"isOwner"`
}
