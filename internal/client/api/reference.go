package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/passdoo/desktop-cli/internal/client/models"
)

// ListClients fetches the tenant list used for grouping and reassignment.
func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var resp struct {
		envelope
		Clients []models.Client `json:"clients"`
	}
	if err := c.do(ctx, http.MethodGet, "/extension/clients", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, resp.reject("client list rejected")
	}
	return resp.Clients, nil
}

// ListCategories fetches the server-side category list. An empty result is
// not an error; callers fall back to the built-in set.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var resp struct {
		envelope
		Categories []models.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/extension/categories", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, resp.reject("category list rejected")
	}
	return resp.Categories, nil
}

// ListUsers fetches the directory offered for per-user grants.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var resp struct {
		envelope
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/extension/users", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, resp.reject("user list rejected")
	}
	return resp.Users, nil
}

// ListClientGroups fetches the groups scoped to one client, for group grants.
func (c *Client) ListClientGroups(ctx context.Context, clientID int64) ([]models.Group, error) {
	var resp struct {
		envelope
		Groups []models.Group `json:"groups"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/extension/client/%d/groups", clientID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, resp.reject("group list rejected")
	}
	return resp.Groups, nil
}
