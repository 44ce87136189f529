package model

// AccessLevel 项目访问级别
const (
	AccessRead = "READ"
	AccessEdit = "EDIT"
)

// ProjectRole 项目内角色
const (
	ProjectRoleMember = "MEMBER"
	ProjectRoleClient = "CLIENT"
)

// ProjectAccess 项目访问表, (project_id, user_id) 唯一
// 团队所有者不落库, 其 EDIT 级别由代码推导
type ProjectAccess struct {
	BaseModel
	ProjectId   string `gorm:"column:project_id;uniqueIndex:uk_project_user" json:"projectId"` // 项目ID
	UserId      string `gorm:"column:user_id;uniqueIndex:uk_project_user" json:"userId"`       // 用户ID
	AccessLevel string `gorm:"column:access_level" json:"accessLevel"`                         // 访问级别: READ/EDIT
	Role        string `gorm:"column:role" json:"role"`                                        // 角色: MEMBER/CLIENT
	GrantedBy   string `gorm:"column:granted_by" json:"grantedBy"`                             // 授权者用户ID
}

func (ProjectAccess) TableName() string {
	return "t_project_access"
}

// GrantAccessReq 授权请求
type GrantAccessReq struct {
	UserId      string `json:"userId" validate:"required"`
	AccessLevel string `json:"accessLevel" validate:"required,oneof=READ EDIT"`
	Role        string `json:"role" validate:"required,oneof=MEMBER CLIENT"`
}

// ProjectScope 当前用户在工作区内的项目可见范围
type ProjectScope struct {
	WorkspaceId string            `json:"workspaceId"`
	ProjectIds  []string          `json:"projectIds"`
	AccessMap   map[string]string `json:"accessMap"` // projectId -> READ/EDIT
	IsOwner     bool              `json:"isOwner"`
}
