// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the client for the hosted TechTalk backend.
package backend

import (
	"bytes"
	"context"
	"errors"
	"net/http"
)

// =============================================================================
// OBJECT STORAGE
// =============================================================================

// Upload stores an object in the named bucket at path, overwriting any
// existing object at the same path. The content type is recorded so the
// object serves with the right MIME type.
func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, data []byte) error {
	u := c.config.BaseURL + "/storage/v1/object/" + bucket + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return &ClientError{Type: ErrTypeStorage, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := decodeError(resp)
		var ce *ClientError
		if errors.As(err, &ce) && ce.Type == ErrTypeRejected {
			ce.Type = ErrTypeStorage
		}
		return err
	}
	return nil
}

// PublicURL returns the public serving URL for an object in a public bucket.
// No network call is made; the URL is derived from the base URL.
func (c *Client) PublicURL(bucket, path string) string {
	return c.config.BaseURL + "/storage/v1/object/public/" + bucket + "/" + path
}
