package groupsio

import (
	"context"
	"encoding/json"
)

// GetUser returns the logged-in user.
func (c *Client) GetUser(ctx context.Context) (User, error) {
	req, err := get("/getuser").Build()
	if err != nil {
		return User{}, err
	}
	return Call[User](ctx, c, req)
}

// UpdateUser applies the url-tagged fields of user to the logged-in user.
func (c *Client) UpdateUser(ctx context.Context, user User) (User, error) {
	req, err := updateRequest("/updateuser", user, nil)
	if err != nil {
		return User{}, err
	}
	return Call[User](ctx, c, req)
}

// GetSubscription returns the logged-in user's subscription to a group.
func (c *Client) GetSubscription(ctx context.Context, groupID int) (Subscription, error) {
	req, err := get("/getsub").
		Param(groupIDParam, itoa(groupID)).
		Build()
	if err != nil {
		return Subscription{}, err
	}
	return Call[Subscription](ctx, c, req)
}

// GetSubscriptions lists every subscription of the logged-in user.
func (c *Client) GetSubscriptions(ctx context.Context) ([]Subscription, error) {
	req, err := get("/getsubs").
		Param(limitParam, maxResults).
		Build()
	if err != nil {
		return nil, err
	}
	return Paginate[Subscription](ctx, c, req)
}

// DeleteSubscription unsubscribes the logged-in user.
func (c *Client) DeleteSubscription(ctx context.Context, subID int) error {
	req, err := get("/deletesub").
		Param(subIDParam, itoa(subID)).
		Build()
	if err != nil {
		return err
	}
	_, err = Call[json.RawMessage](ctx, c, req)
	return err
}
