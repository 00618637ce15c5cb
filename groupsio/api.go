package groupsio

import (
	"context"
)

// API defines the Groups.io operations used by the CLI
type API interface {
	// Session
	Login(ctx context.Context, email, password string) error
	LoginWithTwoFactor(ctx context.Context, email, password string, code int) error

	// Groups
	GetPermissions(ctx context.Context, groupID int) (Permissions, error)
	GetGroup(ctx context.Context, groupID int) (Group, error)
	GetSubgroups(ctx context.Context, groupID int) ([]Group, error)
	CreateSubgroup(ctx context.Context, groupID int, name, desc string, privacy GroupPrivacy) (Group, error)
	UpdateGroup(ctx context.Context, group Group) (Group, error)
	DeleteGroup(ctx context.Context, groupID int) error

	// Members
	GetMember(ctx context.Context, groupID, subID int) (Subscription, error)
	GetMembers(ctx context.Context, groupID int) ([]Subscription, error)
	SearchMembers(ctx context.Context, groupID int, q string) ([]Subscription, error)
	ApproveMember(ctx context.Context, groupID, subID int) (Subscription, error)
	BanMember(ctx context.Context, groupID, subID int) (Subscription, error)
	RemoveMember(ctx context.Context, groupID, subID int) (Subscription, error)
	InviteMembers(ctx context.Context, groupID int, emails []string) (InviteResults, error)
	DirectAddMembers(ctx context.Context, groupID int, emails []string) (DirectAddResults, error)
	BulkRemoveMembers(ctx context.Context, groupID int, emails []string) (BulkRemoveResults, error)
	SendBounceProbe(ctx context.Context, groupID, subID int) (Subscription, error)
	SendConfirmationEmail(ctx context.Context, groupID, subID int) (Subscription, error)
	UpdateMember(ctx context.Context, sub Subscription) (Subscription, error)

	// User
	GetUser(ctx context.Context) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	GetSubscription(ctx context.Context, groupID int) (Subscription, error)
	GetSubscriptions(ctx context.Context) ([]Subscription, error)
	DeleteSubscription(ctx context.Context, subID int) error

	// Archives
	GetTopics(ctx context.Context, groupID int) ([]Topic, error)
}

var _ API = (*Client)(nil)
