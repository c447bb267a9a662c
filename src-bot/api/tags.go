package api

import (
	"context"
	"net/url"
)

type Tag struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Tag fetches a single tag by name. Unknown names come back as a
// *ResponseCodeError with a 404 status, the caller decides how loud to be
// about it.
func (c *Client) Tag(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	if err := c.Get(ctx, "bot/tags/"+url.PathEscape(name), &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Tags fetches every tag the site knows about.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.Get(ctx, "bot/tags", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates or replaces a tag.
func (c *Client) CreateTag(ctx context.Context, tag Tag) error {
	return c.Post(ctx, "bot/tags", tag, nil)
}

// DeleteTag removes a tag by name.
func (c *Client) DeleteTag(ctx context.Context, name string) error {
	return c.Delete(ctx, "bot/tags/"+url.PathEscape(name))
}
