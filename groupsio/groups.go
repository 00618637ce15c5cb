package groupsio

import (
	"context"
	"encoding/json"
	"net/url"
)

// GetPermissions returns what the logged-in user may do in a group.
func (c *Client) GetPermissions(ctx context.Context, groupID int) (Permissions, error) {
	req, err := get("/getperms").
		Param(groupIDParam, itoa(groupID)).
		Build()
	if err != nil {
		return Permissions{}, err
	}
	return Call[Permissions](ctx, c, req)
}

// GetGroup returns the settings of a group.
func (c *Client) GetGroup(ctx context.Context, groupID int) (Group, error) {
	if err := c.requirePermission(ctx, groupID, "manage_group_settings", func(p Permissions) bool {
		return p.ManageGroupSettings
	}); err != nil {
		return Group{}, err
	}

	req, err := get("/getgroup").
		Param(groupIDParam, itoa(groupID)).
		Build()
	if err != nil {
		return Group{}, err
	}
	return Call[Group](ctx, c, req)
}

// GetSubgroups lists every subgroup of a group.
func (c *Client) GetSubgroups(ctx context.Context, groupID int) ([]Group, error) {
	req, err := get("/getsubgroups").
		Param(groupIDParam, itoa(groupID)).
		Param(limitParam, maxResults).
		Build()
	if err != nil {
		return nil, err
	}
	return Paginate[Group](ctx, c, req)
}

// CreateSubgroup creates a subgroup below groupID.
func (c *Client) CreateSubgroup(ctx context.Context, groupID int, name, desc string, privacy GroupPrivacy) (Group, error) {
	b := get("/createsubgroup").
		Param(groupIDParam, itoa(groupID)).
		Param("sub_group_name", name).
		Param("desc", desc)
	if privacy != "" {
		b.Param("privacy", string(privacy))
	}

	req, err := b.Build()
	if err != nil {
		return Group{}, err
	}
	return Call[Group](ctx, c, req)
}

// UpdateGroup applies the url-tagged fields of group to the group with the
// same ID and returns the stored result.
func (c *Client) UpdateGroup(ctx context.Context, group Group) (Group, error) {
	if err := c.requirePermission(ctx, group.ID, "manage_group_settings", func(p Permissions) bool {
		return p.ManageGroupSettings
	}); err != nil {
		return Group{}, err
	}

	req, err := updateRequest("/updategroup", group, url.Values{groupIDParam: {itoa(group.ID)}})
	if err != nil {
		return Group{}, err
	}
	return Call[Group](ctx, c, req)
}

// DeleteGroup permanently deletes a group.
func (c *Client) DeleteGroup(ctx context.Context, groupID int) error {
	if err := c.requirePermission(ctx, groupID, "delete_group", func(p Permissions) bool {
		return p.DeleteGroup
	}); err != nil {
		return err
	}

	req, err := get("/deletegroup").
		Param(groupIDParam, itoa(groupID)).
		Param("understand", "I understand").
		Build()
	if err != nil {
		return err
	}

	_, err = Call[json.RawMessage](ctx, c, req)
	return err
}
