package wordpress

import (
	"context"
	"errors"
	"fmt"
)

// invalidPageCode is the REST error WordPress answers with when a page
// number is past the end of the collection.
const invalidPageCode = "rest_post_invalid_page_number"

// Category is a WordPress post category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListCategories returns every category on the site. A short page signals
// the end; when the count is an exact multiple of the page size the next
// request answers with the invalid-page error, which also ends the walk.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var all []Category
	for page := 1; ; page++ {
		path := fmt.Sprintf("/categories?per_page=%d&page=%d", c.categoryPageSize, page)
		var batch []Category
		if err := c.getJSON(ctx, path, &batch); err != nil {
			var apiErr *APIError
			if page > 1 && errors.As(err, &apiErr) && apiErr.Code == invalidPageCode {
				return all, nil
			}
			return nil, fmt.Errorf("list categories page %d: %w", page, err)
		}
		all = append(all, batch...)
		if len(batch) < c.categoryPageSize {
			return all, nil
		}
	}
}
