package repo

import (
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
)

type ICredentialRepository interface {
	CreateCredential(c *model.Credential) error
	UpdateCredential(credentialId string, updates map[string]interface{}) error
	DeleteCredential(credentialId string) error
	GetCredentialById(credentialId string) (*model.Credential, error)
	ListByTeam(teamId, projectId string) ([]*model.Credential, error)
}

type CredentialRepo struct {
	database.IDatabase
}

func NewCredentialRepo(db database.IDatabase) ICredentialRepository {
	return &CredentialRepo{IDatabase: db}
}

// CreateCredential 创建凭据
func (r *CredentialRepo) CreateCredential(c *model.Credential) error {
	return r.Database().Create(c).Error
}

// UpdateCredential 更新凭据
func (r *CredentialRepo) UpdateCredential(credentialId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Credential{}).
		Where("credential_id = ?", credentialId).
		Updates(updates).Error
}

// DeleteCredential 删除凭据
func (r *CredentialRepo) DeleteCredential(credentialId string) error {
	return r.Database().Where("credential_id = ?", credentialId).Delete(&model.Credential{}).Error
}

// GetCredentialById 根据凭据ID获取凭据
func (r *CredentialRepo) GetCredentialById(credentialId string) (*model.Credential, error) {
	var c model.Credential
	err := r.Database().Where("credential_id = ?", credentialId).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByTeam 团队凭据列表, projectId 非空时过滤项目级凭据
func (r *CredentialRepo) ListByTeam(teamId, projectId string) ([]*model.Credential, error) {
	var creds []*model.Credential
	db := r.Database().Where("team_id = ?", teamId)
	if projectId != "" {
		db = db.Where("project_id = ?", projectId)
	}
	err := db.Order("id ASC").Find(&creds).Error
	if err != nil {
		return nil, err
	}
	return creds, nil
}
