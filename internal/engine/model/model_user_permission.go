package model

// UserPermission 用户管理权限表, 每个用户至多一行, 只增改不删
type UserPermission struct {
	BaseModel
	UserId         string `gorm:"column:user_id;uniqueIndex" json:"userId"` // 用户ID
	CanAccessUsers bool   `gorm:"column:can_access_users" json:"canAccessUsers"`
	CanCreateUsers bool   `gorm:"column:can_create_users" json:"canCreateUsers"`
	CanEditUsers   bool   `gorm:"column:can_edit_users" json:"canEditUsers"`
	CanDeleteUsers bool   `gorm:"column:can_delete_users" json:"canDeleteUsers"`
}

func (UserPermission) TableName() string {
	return "t_user_permission"
}

// UpsertPermissionReq 权限设置请求
type UpsertPermissionReq struct {
	UserId         string `json:"userId" validate:"required"`
	CanAccessUsers bool   `json:"canAccessUsers"`
	CanCreateUsers bool   `json:"canCreateUsers"`
	CanEditUsers   bool   `json:"canEditUsers"`
	CanDeleteUsers bool   `json:"canDeleteUsers"`
}

// Capabilities 用户在当前工作区的管理能力(计算结果, 不落库)
type Capabilities struct {
	IsSuperAdmin   bool `json:"isSuperAdmin"`
	CanAccessUsers bool `json:"canAccessUsers"`
	CanCreateUsers bool `json:"canCreateUsers"`
	CanEditUsers   bool `json:"canEditUsers"`
	CanDeleteUsers bool `json:"canDeleteUsers"`
}
