package client

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"github.com/liftlog/liftlog-go/apierror"
	"github.com/liftlog/liftlog-go/schema"
)

// Me fetches the profile of the signed-in account.
func (c *Client) Me(ctx context.Context) (*schema.User, error) {
	out := &schema.User{}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile applies a partial profile update and returns the profile the
// server confirmed. Nothing is committed locally here; that is the session's
// job, and only on success.
func (c *Client) UpdateProfile(ctx context.Context, patch *schema.ProfileUpdateRequest) (*schema.User, error) {
	out := &schema.User{}
	if err := c.do(ctx, http.MethodPut, "/users/me", patch, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadAvatar uploads an avatar image as a multipart payload and returns
// the reference the server assigned.
func (c *Client) UploadAvatar(ctx context.Context, filename string, content []byte) (*schema.AvatarResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, apierror.Server("encoding avatar payload", err)
	}
	if _, err = part.Write(content); err != nil {
		return nil, apierror.Server("encoding avatar payload", err)
	}
	if err = writer.Close(); err != nil {
		return nil, apierror.Server("encoding avatar payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/users/me/avatar", body)
	if err != nil {
		return nil, apierror.Server("building request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	out := &schema.AvatarResponse{}
	if err := c.send(req, out); err != nil {
		return nil, err
	}
	return out, nil
}
