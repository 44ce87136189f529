package model

// Credential 凭据表, secret_value 使用 AES-256-GCM 加密后 base64 存储
type Credential struct {
	BaseModel
	CredentialId string `gorm:"column:credential_id" json:"credentialId"` // 凭据唯一标识
	TeamId       string `gorm:"column:team_id" json:"teamId"`             // 团队ID
	ProjectId    string `gorm:"column:project_id" json:"projectId"`       // 项目ID(可空, 团队级凭据)
	Name         string `gorm:"column:name" json:"name"`                  // 凭据名称
	Username     string `gorm:"column:username" json:"username"`          // 账号
	SecretValue  string `gorm:"column:secret_value" json:"-"`             // 密文(永不直接返回)
	Url          string `gorm:"column:url" json:"url"`                    // 地址
	Note         string `gorm:"column:note" json:"note"`                  // 备注
	CreatedBy    string `gorm:"column:created_by" json:"createdBy"`       // 创建者用户ID
}

func (Credential) TableName() string {
	return "t_credential"
}

// CreateCredentialReq 创建凭据请求
type CreateCredentialReq struct {
	ProjectId   string `json:"projectId"`
	Name        string `json:"name" validate:"required,min=1,max=128"`
	Username    string `json:"username"`
	SecretValue string `json:"secretValue" validate:"required"`
	Url         string `json:"url"`
	Note        string `json:"note"`
}

// UpdateCredentialReq 更新凭据请求
type UpdateCredentialReq struct {
	Name        *string `json:"name,omitempty"`
	Username    *string `json:"username,omitempty"`
	SecretValue *string `json:"secretValue,omitempty"`
	Url         *string `json:"url,omitempty"`
	Note        *string `json:"note,omitempty"`
}

// RevealCredentialReq 查看明文请求, 需要 PIN 校验
type RevealCredentialReq struct {
	Pin string `json:"pin" validate:"required"`
}

// RevealCredentialResp 查看明文响应
type RevealCredentialResp struct {
	CredentialId string `json:"credentialId"`
	SecretValue  string `json:"secretValue"`
}
