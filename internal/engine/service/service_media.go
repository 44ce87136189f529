package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/log"
	"github.com/pulseplan/pulseplan/pkg/storage"
	"gorm.io/gorm"
)

// mediaURLExpire 预签名下载链接有效期
const mediaURLExpire = 15 * time.Minute

type MediaService struct {
	mediaRepo repo.IMediaRepository
	provider  storage.Provider
	tenant    *TenantService
}

func NewMediaService(mediaRepo repo.IMediaRepository, provider storage.Provider, tenant *TenantService) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		provider:  provider,
		tenant:    tenant,
	}
}

// Upload 上传文件并登记媒体记录
// 对象 key: teams/<teamId>/projects/<projectId>/<ulid>, 无项目时 projects 段为 shared
func (s *MediaService) Upload(ctx context.Context, teamId, projectId, userId, fileName, contentType string, reader io.Reader, size int64) (*model.Media, error) {
	if projectId != "" {
		if err := s.tenant.RequireProjectAccess(userId, projectId, model.AccessEdit); err != nil {
			return nil, err
		}
	} else {
		if err := s.tenant.RequireTeamMember(userId, teamId); err != nil {
			return nil, err
		}
	}

	mediaId := id.GetUild()
	segment := projectId
	if segment == "" {
		segment = "shared"
	}
	objectKey := fmt.Sprintf("teams/%s/projects/%s/%s", teamId, segment, mediaId)

	if _, err := s.provider.Upload(ctx, objectKey, reader, size, contentType); err != nil {
		log.Errorw("upload object failed", "objectKey", objectKey, "error", err)
		return nil, fmt.Errorf("upload object failed: %w", err)
	}

	m := &model.Media{
		MediaId:     mediaId,
		TeamId:      teamId,
		ProjectId:   projectId,
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		UploadedBy:  userId,
	}
	if err := s.mediaRepo.CreateMedia(m); err != nil {
		// 落库失败时回收对象, 避免孤儿文件
		if delErr := s.provider.Delete(ctx, objectKey); delErr != nil {
			log.Warnw("cleanup orphan object failed", "objectKey", objectKey, "error", delErr)
		}
		return nil, fmt.Errorf("create media failed: %w", err)
	}
	return m, nil
}

// List 媒体列表
func (s *MediaService) List(teamId, projectId, userId string) ([]*model.Media, error) {
	if projectId != "" {
		if err := s.tenant.RequireProjectAccess(userId, projectId, model.AccessRead); err != nil {
			return nil, err
		}
	} else {
		if err := s.tenant.RequireTeamMember(userId, teamId); err != nil {
			return nil, err
		}
	}
	return s.mediaRepo.ListByTeam(teamId, projectId)
}

// DownloadURL 生成预签名下载链接
func (s *MediaService) DownloadURL(ctx context.Context, mediaId, userId string) (*model.MediaDownloadResp, error) {
	m, err := s.getMedia(mediaId)
	if err != nil {
		return nil, err
	}
	if err := s.requireRead(m, userId); err != nil {
		return nil, err
	}

	url, err := s.provider.PresignedURL(ctx, m.ObjectKey, mediaURLExpire)
	if err != nil {
		return nil, fmt.Errorf("presign url failed: %w", err)
	}
	return &model.MediaDownloadResp{
		MediaId:  mediaId,
		FileName: m.FileName,
		Url:      url,
		ExpireIn: int(mediaURLExpire.Seconds()),
	}, nil
}

// Delete 删除媒体(对象 + 记录), 上传者或项目 EDIT
func (s *MediaService) Delete(ctx context.Context, mediaId, userId string) error {
	m, err := s.getMedia(mediaId)
	if err != nil {
		return err
	}
	if m.UploadedBy != userId {
		if m.ProjectId == "" {
			if err := s.tenant.RequireTeamOwner(userId, m.TeamId); err != nil {
				return err
			}
		} else if err := s.tenant.RequireProjectAccess(userId, m.ProjectId, model.AccessEdit); err != nil {
			return err
		}
	}

	if err := s.provider.Delete(ctx, m.ObjectKey); err != nil {
		log.Warnw("delete object failed", "objectKey", m.ObjectKey, "error", err)
	}
	return s.mediaRepo.DeleteMedia(mediaId)
}

func (s *MediaService) requireRead(m *model.Media, userId string) error {
	if m.ProjectId != "" {
		return s.tenant.RequireProjectAccess(userId, m.ProjectId, model.AccessRead)
	}
	return s.tenant.RequireTeamMember(userId, m.TeamId)
}

func (s *MediaService) getMedia(mediaId string) (*model.Media, error) {
	m, err := s.mediaRepo.GetMediaById(mediaId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get media failed: %w", err)
	}
	return m, nil
}
