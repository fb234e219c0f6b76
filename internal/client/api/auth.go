package api

import (
	"context"
	"net/http"
)

// InitAuthRequest registers a freshly generated device code with the portal.
// DeviceInfo and IPAddress are best-effort metadata; empty values are omitted.
type InitAuthRequest struct {
	DeviceCode string `json:"device_code"`
	DeviceName string `json:"device_name"`
	DeviceInfo string `json:"device_info,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
}

// InitAuth registers the device code so the authorization page can match it.
func (c *Client) InitAuth(ctx context.Context, req InitAuthRequest) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/desktop/init-auth", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return resp.reject("device code registration rejected")
	}
	return nil
}

// CheckAuthResult is one poll response of the device-code flow. Status is
// only meaningful while Authenticated is false.
type CheckAuthResult struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated"`
	Status        string `json:"status"`
	Token         string `json:"token"`
	Email         string `json:"email"`
	Name          string `json:"name"`
}

// CheckAuth polls the portal for the outcome of a device-code authorization.
func (c *Client) CheckAuth(ctx context.Context, deviceCode string) (CheckAuthResult, error) {
	var resp CheckAuthResult
	err := c.do(ctx, http.MethodPost, "/desktop/check-auth", map[string]string{
		"device_code": deviceCode,
	}, &resp)
	return resp, err
}

// Validate asks the portal whether the stored token is still accepted.
func (c *Client) Validate(ctx context.Context) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodGet, "/desktop/validate", nil, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// Logout invalidates the token server-side. Best-effort: the local session
// is cleared regardless, so failures only get logged by the caller.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/desktop/logout", nil, nil)
}
