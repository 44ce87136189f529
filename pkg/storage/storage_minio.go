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

package storage

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioProvider struct {
	client   *minio.Client
	bucket   string
	basePath string
}

func newMinioProvider(conf *Storage) (Provider, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
		Region: conf.Region,
	})
	if err != nil {
		return nil, err
	}
	return &minioProvider{
		client:   client,
		bucket:   conf.Bucket,
		basePath: conf.BasePath,
	}, nil
}

func (m *minioProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*ObjectInfo, error) {
	fullPath := getFullPath(m.basePath, key)
	info, err := m.client.PutObject(ctx, m.bucket, fullPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	return &ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ContentType: contentType,
		ETag:        info.ETag,
	}, nil
}

func (m *minioProvider) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, getFullPath(m.basePath, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy, verify the object exists
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, err
	}
	return obj, nil
}

func (m *minioProvider) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, getFullPath(m.basePath, key), minio.RemoveObjectOptions{})
}

func (m *minioProvider) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	info, err := m.client.StatObject(ctx, m.bucket, getFullPath(m.basePath, key), minio.StatObjectOptions{})
	if err != nil {
		return nil, err
	}
	return &ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

func (m *minioProvider) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, getFullPath(m.basePath, key), expires, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
