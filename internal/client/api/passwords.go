package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/passdoo/desktop-cli/internal/client/models"
)

// ListPasswords fetches every password record the user can see. The list
// never includes plaintext secrets.
func (c *Client) ListPasswords(ctx context.Context) ([]models.PasswordRecord, error) {
	var resp struct {
		envelope
		Passwords []models.PasswordRecord `json:"passwords"`
	}
	if err := c.do(ctx, http.MethodGet, "/extension/passwords", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, resp.reject("password list rejected")
	}
	return resp.Passwords, nil
}

// GetPasswordSecret fetches the plaintext for one record, on demand.
func (c *Client) GetPasswordSecret(ctx context.Context, id int64) (string, error) {
	var resp struct {
		envelope
		Password models.PasswordSecret `json:"password"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/extension/password/%d", id), nil, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", resp.reject("secret fetch rejected")
	}
	return resp.Password.PasswordPlain, nil
}

// CreatePasswordRequest is the body of the create endpoint. Exactly one of
// CategoryID (server-managed categories) or Category (free-form key) is set.
type CreatePasswordRequest struct {
	Name        string  `json:"name"`
	URI         string  `json:"uri"`
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	PartnerID   *int64  `json:"partner_id"`
	CategoryID  *int64  `json:"category_id"`
	Category    *string `json:"category"`
	IsShared    bool    `json:"is_shared"`
	Description string  `json:"description"`
}

// CreatePassword stores a new record.
func (c *Client) CreatePassword(ctx context.Context, req CreatePasswordRequest) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/extension/passwords", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return resp.reject("password save rejected")
	}
	return nil
}

// UpdatePassword applies a partial update to one record. Fields maps wire
// field names to new values; a nil value clears the field (sent as JSON
// null, which omitempty would drop).
func (c *Client) UpdatePassword(ctx context.Context, id int64, fields map[string]any) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/extension/password/%d", id), fields, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return resp.reject("password update rejected")
	}
	return nil
}

// DeletePassword removes one record.
func (c *Client) DeletePassword(ctx context.Context, id int64) error {
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/extension/password/%d", id), nil, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return resp.reject("password delete rejected")
	}
	return nil
}
