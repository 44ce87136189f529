package repo

import (
	"errors"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IUserPermissionRepository interface {
	UpsertPermission(p *model.UserPermission) error
	GetByUserId(userId string) (*model.UserPermission, error)
}

type UserPermissionRepo struct {
	database.IDatabase
}

func NewUserPermissionRepo(db database.IDatabase) IUserPermissionRepository {
	return &UserPermissionRepo{IDatabase: db}
}

// UpsertPermission 按 user_id 插入或更新权限行, 权限行只增改不删
func (r *UserPermissionRepo) UpsertPermission(p *model.UserPermission) error {
	return r.Database().Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"can_access_users", "can_create_users", "can_edit_users", "can_delete_users",
		}),
	}).Create(p).Error
}

// GetByUserId 获取用户权限行, 无权限行返回 nil 而非错误
func (r *UserPermissionRepo) GetByUserId(userId string) (*model.UserPermission, error) {
	var p model.UserPermission
	err := r.Database().Where("user_id = ?", userId).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
