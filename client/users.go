package client

import (
	"context"
	"fmt"
	"net/http"
)

// UserList adalah hasil list users yang sudah dinormalkan.
type UserList struct {
	Users      []User
	Pagination Pagination
	Message    string
}

var userStatuses = []string{"active", "inactive", "banned"}

// ListUsers mengambil satu halaman users. Hasil di-cache per kombinasi
// parameter persis.
func (c *Client) ListUsers(ctx context.Context, params ListParams) (*UserList, error) {
	result, err := c.cache.do("users|"+params.cacheKey(), func() (interface{}, error) {
		return c.fetchUsers(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*UserList), nil
}

func (c *Client) fetchUsers(ctx context.Context, params ListParams) (*UserList, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/users", params.values(), nil)
	if err != nil {
		return nil, err
	}

	data, err := decodeList(body, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("unable to parse users response: %w", err)
	}

	users := make([]User, 0, len(data.Records))
	for i, rec := range data.Records {
		user, err := normalizeUser(rec)
		if err != nil {
			return nil, fmt.Errorf("unable to parse users response: record[%d]: %w", i, err)
		}
		users = append(users, user)
	}

	return &UserList{Users: users, Pagination: data.Pagination, Message: data.Message}, nil
}

func normalizeUser(rec rawRecord) (User, error) {
	id, err := stringID(rec)
	if err != nil {
		return User{}, err
	}

	return User{
		ID:        id,
		Name:      pickString(rec, "name", "full_name", "username"),
		Email:     pickString(rec, "email"),
		Role:      pickEnum(rec, "staff", []string{"admin", "staff"}, "role"),
		Status:    pickEnum(rec, "active", userStatuses, "status"),
		CreatedAt: pickTime(rec, "created_at", "createdAt"),
		UpdatedAt: pickTime(rec, "updated_at", "updatedAt"),
	}, nil
}

// UserInput adalah payload create/update user.
type UserInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPost, "/api/admin/users", input)
	if err == nil {
		c.cache.Invalidate("users|")
	}
	return result, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, input UserInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPut, "/api/admin/users/"+id, input)
	if err == nil {
		c.cache.Invalidate("users|")
	}
	return result, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodDelete, "/api/admin/users/"+id, nil)
	if err == nil {
		c.cache.Invalidate("users|")
	}
	return result, err
}
