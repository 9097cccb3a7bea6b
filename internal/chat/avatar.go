// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/techtalk-tui/internal/backend"
)

// MaxAvatarBytes caps avatar uploads at 5 MiB.
const MaxAvatarBytes = 5 << 20

// avatarPrefix is the object path prefix inside the avatar bucket.
const avatarPrefix = "profile-pictures/"

// Validation failures, reported before any network traffic.
var (
	ErrAvatarTooLarge = errors.New("avatar exceeds 5MB limit")
	ErrAvatarNotImage = errors.New("avatar must be an image file")
)

// =============================================================================
// AVATAR SERVICE
// =============================================================================

// Avatars validates and uploads profile pictures, then points the profile
// row at the new public URL. The upload path embeds a millisecond timestamp
// so successive uploads never collide, while x-upsert keeps an exact-path
// rerun harmless.
type Avatars struct {
	client   *backend.Client
	profiles *Profiles
	bucket   string
}

// NewAvatars creates the avatar service targeting the given storage bucket.
func NewAvatars(client *backend.Client, profiles *Profiles, bucket string) *Avatars {
	return &Avatars{client: client, profiles: profiles, bucket: bucket}
}

// Upload validates data as an image of acceptable size, stores it, and
// updates the profile's picture URL. On any failure the sequence stops
// where it is: an orphaned storage object from a failed row update is
// left behind, not cleaned up. Returns the new public URL.
func (a *Avatars) Upload(ctx context.Context, profileID, filename string, data []byte) (string, error) {
	if len(data) > MaxAvatarBytes {
		return "", ErrAvatarTooLarge
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrAvatarNotImage
	}

	path := avatarPrefix + profileID + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + objectExt(filename, contentType)
	if err := a.client.Upload(ctx, a.bucket, path, contentType, data); err != nil {
		return "", err
	}

	url := a.client.PublicURL(a.bucket, path)
	if err := a.profiles.SetAvatar(ctx, profileID, url); err != nil {
		return "", err
	}
	return url, nil
}

// objectExt picks the stored object's extension: the source filename's when
// present, otherwise one derived from the sniffed content type.
func objectExt(filename, contentType string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
