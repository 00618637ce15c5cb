package groupsio

import (
	"context"
	"fmt"
	"net/url"
)

func viewMembers(p Permissions) bool { return p.ViewMembers }

func inviteMembers(p Permissions) bool { return p.InviteMembers }

func manageSubscriptionOptions(p Permissions) bool { return p.ManageMemberSubscriptionOptions }

// GetMember returns one subscription of a group.
func (c *Client) GetMember(ctx context.Context, groupID, subID int) (Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "view_members", viewMembers); err != nil {
		return Subscription{}, err
	}
	return c.memberCall(ctx, "/getmember", groupID, subID)
}

// GetMembers lists every member of a group.
func (c *Client) GetMembers(ctx context.Context, groupID int) ([]Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "view_members", viewMembers); err != nil {
		return nil, err
	}

	req, err := get("/getmembers").
		Param(groupIDParam, itoa(groupID)).
		Param(limitParam, maxResults).
		Build()
	if err != nil {
		return nil, err
	}
	return Paginate[Subscription](ctx, c, req)
}

// SearchMembers lists the members of a group whose email or name matches q.
func (c *Client) SearchMembers(ctx context.Context, groupID int, q string) ([]Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "view_members", viewMembers); err != nil {
		return nil, err
	}

	req, err := get("/searchmembers").
		Param(groupIDParam, itoa(groupID)).
		Param(limitParam, maxResults).
		Param("q", q).
		Build()
	if err != nil {
		return nil, err
	}
	return Paginate[Subscription](ctx, c, req)
}

// ApproveMember approves a pending subscription.
func (c *Client) ApproveMember(ctx context.Context, groupID, subID int) (Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "manage_pending_members", func(p Permissions) bool {
		return p.ManagePendingMembers
	}); err != nil {
		return Subscription{}, err
	}
	return c.memberCall(ctx, "/approvemember", groupID, subID)
}

// BanMember bans a member from a group. Members already banned are rejected
// locally.
func (c *Client) BanMember(ctx context.Context, groupID, subID int) (Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "ban_members", func(p Permissions) bool {
		return p.BanMembers
	}); err != nil {
		return Subscription{}, err
	}

	sub, err := c.GetMember(ctx, groupID, subID)
	if err != nil {
		return Subscription{}, err
	}
	if !sub.Status.CanBan() {
		return Subscription{}, inadequatePermissions(fmt.Sprintf("subscription %d cannot be banned in status %s", subID, sub.Status))
	}
	return c.memberCall(ctx, "/banmember", groupID, subID)
}

// RemoveMember removes a member from a group.
func (c *Client) RemoveMember(ctx context.Context, groupID, subID int) (Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "remove_members", func(p Permissions) bool {
		return p.RemoveMembers
	}); err != nil {
		return Subscription{}, err
	}
	return c.memberCall(ctx, "/removemember", groupID, subID)
}

// InviteMembers sends group invitations to emails.
func (c *Client) InviteMembers(ctx context.Context, groupID int, emails []string) (InviteResults, error) {
	if err := c.requirePermission(ctx, groupID, "invite_members", inviteMembers); err != nil {
		return InviteResults{}, err
	}

	req, err := emailsRequest("/invite", groupID, emails)
	if err != nil {
		return InviteResults{}, err
	}
	return Call[InviteResults](ctx, c, req)
}

// DirectAddMembers subscribes emails to a group without an invitation.
func (c *Client) DirectAddMembers(ctx context.Context, groupID int, emails []string) (DirectAddResults, error) {
	if err := c.requirePermission(ctx, groupID, "invite_members", inviteMembers); err != nil {
		return DirectAddResults{}, err
	}

	req, err := emailsRequest("/directadd", groupID, emails)
	if err != nil {
		return DirectAddResults{}, err
	}
	return Call[DirectAddResults](ctx, c, req)
}

// BulkRemoveMembers removes every member whose email is listed.
func (c *Client) BulkRemoveMembers(ctx context.Context, groupID int, emails []string) (BulkRemoveResults, error) {
	if err := c.requirePermission(ctx, groupID, "invite_members", inviteMembers); err != nil {
		return BulkRemoveResults{}, err
	}

	req, err := emailsRequest("/bulkremovemembers", groupID, emails)
	if err != nil {
		return BulkRemoveResults{}, err
	}
	return Call[BulkRemoveResults](ctx, c, req)
}

// SendBounceProbe sends a bounce probe to a member whose address is bouncing.
func (c *Client) SendBounceProbe(ctx context.Context, groupID, subID int) (Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "manage_member_subscription_options", manageSubscriptionOptions); err != nil {
		return Subscription{}, err
	}

	sub, err := c.GetMember(ctx, groupID, subID)
	if err != nil {
		return Subscription{}, err
	}
	if !sub.UserStatus.CanSendBounceProbe() {
		return Subscription{}, inadequatePermissions(fmt.Sprintf("bounce probe not allowed for user status %s", sub.UserStatus))
	}
	return c.memberCall(ctx, "/sendbounceprobe", groupID, subID)
}

// SendConfirmationEmail resends the confirmation email to a member who has
// not confirmed their address.
func (c *Client) SendConfirmationEmail(ctx context.Context, groupID, subID int) (Subscription, error) {
	if err := c.requirePermission(ctx, groupID, "manage_member_subscription_options", manageSubscriptionOptions); err != nil {
		return Subscription{}, err
	}

	sub, err := c.GetMember(ctx, groupID, subID)
	if err != nil {
		return Subscription{}, err
	}
	if !sub.UserStatus.CanSendConfirmationEmail() {
		return Subscription{}, inadequatePermissions(fmt.Sprintf("confirmation email not allowed for user status %s", sub.UserStatus))
	}
	return c.memberCall(ctx, "/sendconfirmation", groupID, subID)
}

// UpdateMember applies the url-tagged fields of sub to the subscription with
// the same ID in sub.GroupID.
func (c *Client) UpdateMember(ctx context.Context, sub Subscription) (Subscription, error) {
	if err := c.requirePermission(ctx, sub.GroupID, "manage_member_subscription_options", manageSubscriptionOptions); err != nil {
		return Subscription{}, err
	}

	req, err := updateRequest("/updatemember", sub, url.Values{
		groupIDParam: {itoa(sub.GroupID)},
		subIDParam:   {itoa(sub.ID)},
	})
	if err != nil {
		return Subscription{}, err
	}
	return Call[Subscription](ctx, c, req)
}

func (c *Client) memberCall(ctx context.Context, path string, groupID, subID int) (Subscription, error) {
	req, err := get(path).
		Param(groupIDParam, itoa(groupID)).
		Param(subIDParam, itoa(subID)).
		Build()
	if err != nil {
		return Subscription{}, err
	}
	return Call[Subscription](ctx, c, req)
}

func emailsRequest(path string, groupID int, emails []string) (Request, error) {
	if len(emails) == 0 {
		return Request{}, fmt.Errorf("%w: %s needs at least one email", ErrInvalidRequest, path)
	}
	return get(path).
		Param(groupIDParam, itoa(groupID)).
		Param("emails", joinEmails(emails)).
		Build()
}
