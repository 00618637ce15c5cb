package groupsio

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const (
	pageTokenParam = "page_token"
	// maxResults is the page size requested by every listing.
	maxResults = "100"
)

// Paginate follows the page_token cursor of req until the API reports no
// more pages and returns every item in server order.
func Paginate[T any](ctx context.Context, c *Client, req Request) ([]T, error) {
	var results []T
	err := ForEachPage(ctx, c, req, func(page Page[T]) error {
		results = append(results, page.Data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ForEachPage fetches the pages of req one after another and hands each one
// to fn. Returning ErrStopPagination from fn ends the walk without error.
func ForEachPage[T any](ctx context.Context, c *Client, req Request, fn func(Page[T]) error) error {
	seen := make(map[int]struct{})
	pageNum := 1

	for {
		page, err := Call[Page[T]](ctx, c, req)
		if err != nil {
			return err
		}

		c.logger.Debug().
			Str("path", req.Path()).
			Int("page", pageNum).
			Int("count", len(page.Data)).
			Int("total", page.TotalCount).
			Bool("has_more", page.HasMore).
			Msg("Retrieved page from Groups.io")

		if err := fn(page); err != nil {
			if errors.Is(err, ErrStopPagination) {
				return nil
			}
			return err
		}

		if !page.HasMore {
			return nil
		}

		if _, dup := seen[page.NextPageToken]; dup {
			return fmt.Errorf("%w: %s token %d", ErrRepeatedPageToken, req.Path(), page.NextPageToken)
		}
		seen[page.NextPageToken] = struct{}{}

		req, err = req.Derive().
			Param(pageTokenParam, strconv.Itoa(page.NextPageToken)).
			Build()
		if err != nil {
			return err
		}
		pageNum++
	}
}
