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
	"time"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Provider is the blob storage abstraction. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Upload stores the object under key and returns its info.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*ObjectInfo, error)
	// Download opens the object for reading. Caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Stat returns the object info without reading the body.
	Stat(ctx context.Context, key string) (*ObjectInfo, error)
	// PresignedURL returns a time-limited GET URL for the object.
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
