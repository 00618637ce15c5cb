package groupsio

import "context"

// GetTopics lists the topics in a group's archive, most recent first.
func (c *Client) GetTopics(ctx context.Context, groupID int) ([]Topic, error) {
	if err := c.requirePermission(ctx, groupID, "view_archives", func(p Permissions) bool {
		return p.ViewArchives
	}); err != nil {
		return nil, err
	}

	req, err := get("/gettopics").
		Param(groupIDParam, itoa(groupID)).
		Param(limitParam, maxResults).
		Build()
	if err != nil {
		return nil, err
	}
	return Paginate[Topic](ctx, c, req)
}
