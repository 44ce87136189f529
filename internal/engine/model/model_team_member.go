package model

// TeamMemberRole 团队成员角色
const (
	TeamRoleOwner  = "OWNER"
	TeamRoleMember = "MEMBER"
)

// TeamMember 团队成员表, (team_id, user_id) 唯一
type TeamMember struct {
	BaseModel
	TeamId string `gorm:"column:team_id;uniqueIndex:uk_team_user" json:"teamId"` // 团队ID
	UserId string `gorm:"column:user_id;uniqueIndex:uk_team_user" json:"userId"` // 用户ID
	Role   string `gorm:"column:role" json:"role"`                               // 角色: OWNER/MEMBER
}

func (TeamMember) TableName() string {
	return "t_team_member"
}

// TeamMemberResp 团队成员响应
type TeamMemberResp struct {
	UserId   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}
