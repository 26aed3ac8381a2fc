package wordpress

import (
	"context"
	"fmt"
	"net/url"
)

// User is a WordPress site user.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewUser is the payload for creating a user account.
type NewUser struct {
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

// SearchUsers returns users whose name or login matches the query.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	path := fmt.Sprintf("/users?context=edit&per_page=100&search=%s", url.QueryEscape(query))
	var users []User
	if err := c.getJSON(ctx, path, &users); err != nil {
		return nil, fmt.Errorf("search users %q: %w", query, err)
	}
	return users, nil
}

// CreateUser creates a new user account and returns it.
func (c *Client) CreateUser(ctx context.Context, user NewUser) (*User, error) {
	var created User
	if err := c.postJSON(ctx, "/users", user, &created); err != nil {
		return nil, fmt.Errorf("create user %q: %w", user.Username, err)
	}
	return &created, nil
}
