package wordpress

import (
	"context"
	"fmt"
)

// Post statuses accepted by the publish flow.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// Post is a WordPress post as the API returns it.
type Post struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Link   string `json:"link"`
	Title  struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Author        int   `json:"author"`
	FeaturedMedia int   `json:"featured_media"`
	Categories    []int `json:"categories"`
}

// NewPost is the payload for creating a post.
type NewPost struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	Author        int    `json:"author,omitempty"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
	Categories    []int  `json:"categories,omitempty"`
}

// CreatePost creates a post and returns the stored copy.
func (c *Client) CreatePost(ctx context.Context, post NewPost) (*Post, error) {
	var created Post
	if err := c.postJSON(ctx, "/posts", post, &created); err != nil {
		return nil, fmt.Errorf("create post %q: %w", post.Title, err)
	}
	return &created, nil
}

// GetPost fetches a post by ID with edit context so unrendered fields come
// back.
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	var post Post
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d?context=edit", id), &post); err != nil {
		return nil, fmt.Errorf("fetch post %d: %w", id, err)
	}
	return &post, nil
}
