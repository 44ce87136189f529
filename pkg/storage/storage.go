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
	"fmt"
	"strings"
)

const (
	TypeMinio = "minio"
	TypeS3    = "s3"
)

// Storage 对象存储配置
type Storage struct {
	Type      string `mapstructure:"type"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"useSSL"`
	BasePath  string `mapstructure:"basePath"`
}

func (s *Storage) SetDefaults() {
	if s.Type == "" {
		s.Type = TypeMinio
	}
	if s.Region == "" {
		s.Region = "us-east-1"
	}
}

func (s *Storage) Validate() error {
	switch s.Type {
	case TypeMinio, TypeS3:
	default:
		return fmt.Errorf("unsupported storage type: %s", s.Type)
	}
	if s.Bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}
	return nil
}

// NewProvider 根据配置创建对象存储客户端
func NewProvider(conf *Storage) (Provider, error) {
	conf.SetDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	switch conf.Type {
	case TypeMinio:
		return newMinioProvider(conf)
	case TypeS3:
		return newS3Provider(conf)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", conf.Type)
	}
}

// getFullPath joins basePath and key with a single slash.
func getFullPath(basePath, key string) string {
	key = strings.TrimPrefix(key, "/")
	if basePath == "" {
		return key
	}
	return strings.TrimSuffix(basePath, "/") + "/" + key
}
