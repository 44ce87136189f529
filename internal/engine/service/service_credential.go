// Copyright 2025 PulsePlan Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/consts"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// vaultUnlockTTL PIN 校验通过后的解锁窗口
const vaultUnlockTTL = 5 * time.Minute

type CredentialService struct {
	credRepo repo.ICredentialRepository
	userRepo repo.IUserRepository
	cache    cache.ICache
	tenant   *TenantService
	key      []byte
}

// NewCredentialService vaultKey 为任意长度密钥, 内部做 SHA-256 派生出 AES-256 key
func NewCredentialService(
	credRepo repo.ICredentialRepository,
	userRepo repo.IUserRepository,
	c cache.ICache,
	tenant *TenantService,
	vaultKey string,
) *CredentialService {
	derived := sha256.Sum256([]byte(vaultKey))
	return &CredentialService{
		credRepo: credRepo,
		userRepo: userRepo,
		cache:    c,
		tenant:   tenant,
		key:      derived[:],
	}
}

// CreateCredential 创建凭据, 需要项目/团队 EDIT
func (s *CredentialService) CreateCredential(teamId, userId string, req *model.CreateCredentialReq) (*model.Credential, error) {
	if req.ProjectId != "" {
		if err := s.tenant.RequireProjectAccess(userId, req.ProjectId, model.AccessEdit); err != nil {
			return nil, err
		}
	} else {
		if err := s.tenant.RequireTeamOwner(userId, teamId); err != nil {
			return nil, err
		}
	}

	encrypted, err := encryptSecret(s.key, req.SecretValue)
	if err != nil {
		return nil, fmt.Errorf("encrypt secret failed: %w", err)
	}

	c := &model.Credential{
		CredentialId: id.GetUUID(),
		TeamId:       teamId,
		ProjectId:    req.ProjectId,
		Name:         req.Name,
		Username:     req.Username,
		SecretValue:  encrypted,
		Url:          req.Url,
		Note:         req.Note,
		CreatedBy:    userId,
	}
	if err := s.credRepo.CreateCredential(c); err != nil {
		log.Errorw("create credential failed", "teamId", teamId, "error", err)
		return nil, fmt.Errorf("create credential failed: %w", err)
	}
	return c, nil
}

// UpdateCredential 更新凭据, 需要 EDIT
func (s *CredentialService) UpdateCredential(credentialId, userId string, req *model.UpdateCredentialReq) error {
	c, err := s.getCredential(credentialId)
	if err != nil {
		return err
	}
	if err := s.requireEdit(c, userId); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.SecretValue != nil {
		encrypted, err := encryptSecret(s.key, *req.SecretValue)
		if err != nil {
			return fmt.Errorf("encrypt secret failed: %w", err)
		}
		updates["secret_value"] = encrypted
	}
	if req.Url != nil {
		updates["url"] = *req.Url
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if len(updates) == 0 {
		return nil
	}
	return s.credRepo.UpdateCredential(credentialId, updates)
}

// DeleteCredential 删除凭据, 需要 EDIT
func (s *CredentialService) DeleteCredential(credentialId, userId string) error {
	c, err := s.getCredential(credentialId)
	if err != nil {
		return err
	}
	if err := s.requireEdit(c, userId); err != nil {
		return err
	}
	return s.credRepo.DeleteCredential(credentialId)
}

// ListCredentials 凭据列表, 永不返回密文或明文
func (s *CredentialService) ListCredentials(teamId, projectId, userId string) ([]*model.Credential, error) {
	if projectId != "" {
		if err := s.tenant.RequireProjectAccess(userId, projectId, model.AccessRead); err != nil {
			return nil, err
		}
	} else {
		if err := s.tenant.RequireTeamMember(userId, teamId); err != nil {
			return nil, err
		}
	}

	creds, err := s.credRepo.ListByTeam(teamId, projectId)
	if err != nil {
		return nil, fmt.Errorf("list credentials failed: %w", err)
	}
	for _, c := range creds {
		c.SecretValue = ""
	}
	return creds, nil
}

// RevealCredential 查看明文
// 守卫: EDIT 访问 + PIN 校验(bcrypt), 校验通过后短时间内免重复输入
func (s *CredentialService) RevealCredential(credentialId, userId, pin string) (*model.RevealCredentialResp, error) {
	c, err := s.getCredential(credentialId)
	if err != nil {
		return nil, err
	}
	if err := s.requireEdit(c, userId); err != nil {
		return nil, err
	}

	if err := s.checkPin(userId, pin); err != nil {
		return nil, err
	}

	plaintext, err := decryptSecret(s.key, c.SecretValue)
	if err != nil {
		return nil, fmt.Errorf("decrypt secret failed: %w", err)
	}
	log.Infow("credential revealed", "credentialId", credentialId, "userId", userId)
	return &model.RevealCredentialResp{
		CredentialId: credentialId,
		SecretValue:  plaintext,
	}, nil
}

func (s *CredentialService) checkPin(userId, pin string) error {
	unlockKey := consts.VaultUnlockKey + userId

	// 解锁窗口内免 PIN
	if pin == "" {
		exists, err := s.cache.Exists(context.Background(), unlockKey).Result()
		if err == nil && exists > 0 {
			return nil
		}
		return ErrVaultPinMismatch
	}

	u, err := s.userRepo.GetUserById(userId)
	if err != nil {
		return fmt.Errorf("get user failed: %w", err)
	}
	if u.VaultPinHash == "" {
		return ErrVaultPinNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.VaultPinHash), []byte(pin)); err != nil {
		return ErrVaultPinMismatch
	}

	if err := s.cache.Set(context.Background(), unlockKey, "1", vaultUnlockTTL).Err(); err != nil {
		log.Warnw("cache vault unlock failed", "userId", userId, "error", err)
	}
	return nil
}

func (s *CredentialService) requireEdit(c *model.Credential, userId string) error {
	if c.ProjectId != "" {
		return s.tenant.RequireProjectAccess(userId, c.ProjectId, model.AccessEdit)
	}
	return s.tenant.RequireTeamOwner(userId, c.TeamId)
}

func (s *CredentialService) getCredential(credentialId string) (*model.Credential, error) {
	c, err := s.credRepo.GetCredentialById(credentialId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get credential failed: %w", err)
	}
	return c, nil
}

// encryptSecret AES-256-GCM 加密, 输出 base64(nonce || ciphertext)
func encryptSecret(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// decryptSecret encryptSecret 的逆操作
func decryptSecret(key []byte, encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(data) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
