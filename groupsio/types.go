package groupsio

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// SubscriptionStatus is the state of a member's subscription to a group.
type SubscriptionStatus string

const (
	SubscriptionStatusNormal  SubscriptionStatus = "sub_status_normal"
	SubscriptionStatusPending SubscriptionStatus = "sub_status_pending"
	SubscriptionStatusBanned  SubscriptionStatus = "sub_status_banned"
)

// CanBan checks if a subscription in this state may be banned
func (s SubscriptionStatus) CanBan() bool {
	return s != SubscriptionStatusBanned
}

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserStatusNotConfirmed UserStatus = "user_status_notconfirmed"
	UserStatusConfirmed    UserStatus = "user_status_confirmed"
	UserStatusInactive     UserStatus = "user_status_inactive"
	UserStatusBouncing     UserStatus = "user_status_bouncing"
	UserStatusBounced      UserStatus = "user_status_bounced"
)

// CanSendBounceProbe checks if a bounce probe makes sense for this user
func (s UserStatus) CanSendBounceProbe() bool {
	return s == UserStatusBouncing || s == UserStatusBounced
}

// CanSendConfirmationEmail checks if the user still has to confirm their address
func (s UserStatus) CanSendConfirmationEmail() bool {
	return s == UserStatusNotConfirmed
}

// GroupPrivacy controls who can see a group.
type GroupPrivacy string

const (
	GroupPrivacyPublic      GroupPrivacy = "group_privacy_none"
	GroupPrivacyUnlisted    GroupPrivacy = "group_privacy_unlisted_public"
	GroupPrivacyArchives    GroupPrivacy = "group_privacy_archive_private"
	GroupPrivacyPrivate     GroupPrivacy = "group_privacy_private"
	GroupPrivacySubgroupAll GroupPrivacy = "group_privacy_subgroup_all"
)

// Login is the response of the /login endpoint.
type Login struct {
	Object string `json:"object,omitempty"`
	Token  string `json:"token"`
	User   User   `json:"user"`
}

// Group represents a Groups.io group or subgroup.
// Fields tagged url are sent by UpdateGroup.
type Group struct {
	Object                  string       `json:"object,omitempty" url:"-"`
	ID                      int          `json:"id" url:"-"`
	ParentGroupID           *int         `json:"parent_group_id,omitempty" url:"-"`
	Created                 string       `json:"created" url:"-"`
	Updated                 string       `json:"updated" url:"-"`
	Title                   string       `json:"title" url:"title,omitempty"`
	Name                    string       `json:"name" url:"-"`
	Alias                   string       `json:"alias" url:"alias,omitempty"`
	Desc                    string       `json:"desc" url:"desc,omitempty"`
	SubjectTag              string       `json:"subject_tag" url:"subject_tag,omitempty"`
	Footer                  string       `json:"footer" url:"footer,omitempty"`
	Website                 string       `json:"website" url:"website,omitempty"`
	Announce                bool         `json:"announce" url:"announce"`
	Moderated               bool         `json:"moderated" url:"moderated"`
	NewUsersModerated       bool         `json:"new_users_moderated" url:"new_users_moderated"`
	UnmoderateUsersAfter    int          `json:"unmoderate_users_after" url:"unmoderate_users_after"`
	Restricted              bool         `json:"restricted" url:"restricted"`
	AllowNonSubsToPost      bool         `json:"allow_non_subs_to_post" url:"allow_non_subs_to_post"`
	ReplyTo                 string       `json:"reply_to" url:"reply_to,omitempty"`
	Privacy                 GroupPrivacy `json:"privacy" url:"privacy,omitempty"`
	MembersVisible          string       `json:"members_visible" url:"members_visible,omitempty"`
	SubgroupAccess          string       `json:"subgroup_access" url:"subgroup_access,omitempty"`
	HandleAttachments       string       `json:"handle_attachments" url:"handle_attachments,omitempty"`
	PlainTextOnly           bool         `json:"plain_text_only" url:"plain_text_only"`
	HashTagsRequired        bool         `json:"hash_tags_required" url:"hash_tags_required"`
	EmailDeliveryDefault    string       `json:"email_delivery_default" url:"email_delivery_default,omitempty"`
	MessageSelectionDefault string       `json:"message_selection_default" url:"message_selection_default,omitempty"`
	DisableEdits            bool         `json:"disable_edits" url:"disable_edits"`
	AutoCloseThreads        bool         `json:"auto_close_threads" url:"auto_close_threads"`
	CloseThreadsAfter       int          `json:"close_threads_after" url:"close_threads_after"`
}

func (Group) objectName() string { return "group" }

// User represents a Groups.io account.
// Fields tagged url are sent by UpdateUser.
type User struct {
	Object          string     `json:"object,omitempty" url:"-"`
	ID              int        `json:"id" url:"-"`
	Created         string     `json:"created" url:"-"`
	Updated         string     `json:"updated" url:"-"`
	Email           string     `json:"email" url:"-"`
	FullName        string     `json:"full_name" url:"full_name,omitempty"`
	UserName        string     `json:"user_name" url:"user_name,omitempty"`
	Timezone        string     `json:"timezone" url:"timezone,omitempty"`
	Status          UserStatus `json:"status" url:"-"`
	HasProfilePhoto bool       `json:"has_profile_photo" url:"-"`
	TwoFactor       bool       `json:"two_factor_enabled" url:"-"`
	AboutMe         string     `json:"about_me" url:"about_me,omitempty"`
	Location        string     `json:"location" url:"location,omitempty"`
	Website         string     `json:"website" url:"website,omitempty"`
	ProfilePrivacy  string     `json:"profile_privacy" url:"profile_privacy,omitempty"`
}

func (User) objectName() string { return "user" }

// GetDisplayName returns the best available display name for the user
func (u *User) GetDisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.UserName != "" {
		return u.UserName
	}
	return u.Email
}

// Subscription is a user's membership of one group.
// Fields tagged url are sent by UpdateMember.
type Subscription struct {
	Object            string             `json:"object,omitempty" url:"-"`
	ID                int                `json:"id" url:"-"`
	Created           string             `json:"created" url:"-"`
	Updated           string             `json:"updated" url:"-"`
	UserID            int                `json:"user_id" url:"-"`
	GroupID           int                `json:"group_id" url:"-"`
	GroupName         string             `json:"group_name,omitempty" url:"-"`
	Status            SubscriptionStatus `json:"status" url:"-"`
	PostStatus        string             `json:"post_status" url:"post_status,omitempty"`
	EmailDelivery     string             `json:"email_delivery,omitempty" url:"email_delivery,omitempty"`
	MessageSelection  string             `json:"message_selection,omitempty" url:"message_selection,omitempty"`
	AutoFollowReplies *bool              `json:"auto_follow_replies,omitempty" url:"auto_follow_replies,omitempty"`
	ApprovedPosts     int                `json:"approved_posts" url:"-"`
	ModStatus         string             `json:"mod_status" url:"mod_status,omitempty"`
	Email             string             `json:"email" url:"-"`
	UserStatus        UserStatus         `json:"user_status" url:"-"`
	UserName          string             `json:"user_name" url:"-"`
	FullName          string             `json:"full_name" url:"full_name,omitempty"`
	Timezone          string             `json:"timezone" url:"-"`
	ModeratorNotes    string             `json:"moderator_notes" url:"moderator_notes,omitempty"`
	UseSignature      bool               `json:"use_signature" url:"use_signature"`
	UseSignatureEmail bool               `json:"use_signature_email" url:"use_signature_email"`

	// Only present on the user's own subscriptions.
	NumSubs         int `json:"num_subs,omitempty" url:"-"`
	PendingMessages int `json:"pending_messages,omitempty" url:"-"`
	PendingSubs     int `json:"pending_subs,omitempty" url:"-"`
}

// Permissions lists what the logged-in user may do in a group.
type Permissions struct {
	Object                          string `json:"object,omitempty"`
	ManageSubgroups                 bool   `json:"manage_subgroups"`
	DeleteGroup                     bool   `json:"delete_group"`
	ViewArchives                    bool   `json:"view_archives"`
	DownloadMembers                 bool   `json:"download_members"`
	ViewActivity                    bool   `json:"view_activity"`
	ManageHashtags                  bool   `json:"manage_hashtags"`
	ManageIntegrations              bool   `json:"manage_integrations"`
	ManageGroupSettings             bool   `json:"manage_group_settings"`
	MakeModerator                   bool   `json:"make_moderator"`
	ManageMemberSubscriptionOptions bool   `json:"manage_member_subscription_options"`
	ManagePendingMembers            bool   `json:"manage_pending_members"`
	RemoveMembers                   bool   `json:"remove_members"`
	BanMembers                      bool   `json:"ban_members"`
	ManageGroupBilling              bool   `json:"manage_group_billing"`
	EditArchives                    bool   `json:"edit_archives"`
	ManagePendingMessages           bool   `json:"manage_pending_messages"`
	InviteMembers                   bool   `json:"invite_members"`
	ViewDatabases                   bool   `json:"view_databases"`
	CanPost                         bool   `json:"can_post"`
	ManagePolls                     bool   `json:"manage_polls"`
	ViewPhotos                      bool   `json:"view_photos"`
	ManagePhotos                    bool   `json:"manage_photos"`
	ManageMembers                   bool   `json:"manage_members"`
	ViewCalendar                    bool   `json:"view_calendar"`
	ManageCalendar                  bool   `json:"manage_calendar"`
	ViewChats                       bool   `json:"view_chats"`
	ManageChats                     bool   `json:"manage_chats"`
	ViewMemberDirectory             bool   `json:"view_member_directory"`
	ViewFiles                       bool   `json:"view_files"`
	ManageFiles                     bool   `json:"manage_files"`
	ViewMembers                     bool   `json:"view_members"`
	ViewWiki                        bool   `json:"view_wiki"`
	ManageWiki                      bool   `json:"manage_wiki"`
	ManageSubscription              bool   `json:"manage_subscription"`
}

func (Permissions) objectName() string { return "permissions" }

// Poster is the author shown on a topic.
type Poster struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// Hashtag labels a topic.
type Hashtag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Topic is one thread in a group's message archive.
type Topic struct {
	ID                int       `json:"id"`
	Subject           string    `json:"subject"`
	Snippet           string    `json:"snippet"`
	Poster            Poster    `json:"poster"`
	NumMsgs           int       `json:"num_msgs"`
	MostRecentMessage string    `json:"most_recent_message"`
	IsSticky          bool      `json:"is_sticky"`
	IsModerated       bool      `json:"is_moderated"`
	IsClosed          bool      `json:"is_closed"`
	Hashtags          []Hashtag `json:"hashtags"`
}

// InviteResults is the outcome of InviteMembers.
type InviteResults struct {
	Object      string         `json:"object,omitempty"`
	TotalEmails int            `json:"total_emails"`
	Errors      []ErrorPayload `json:"errors"`
	Invited     []string       `json:"invited"`
}

// Err folds the per-email errors into one error, or nil when every email
// was accepted.
func (r InviteResults) Err() error {
	return foldErrors(r.Errors)
}

// DirectAddResults is the outcome of DirectAddMembers.
type DirectAddResults struct {
	Object       string         `json:"object,omitempty"`
	TotalEmails  int            `json:"total_emails"`
	Errors       []ErrorPayload `json:"errors"`
	AddedMembers []Subscription `json:"added_members"`
}

// Err folds the per-email errors into one error.
func (r DirectAddResults) Err() error {
	return foldErrors(r.Errors)
}

// BulkRemoveResults is the outcome of BulkRemoveMembers.
type BulkRemoveResults struct {
	Object      string         `json:"object,omitempty"`
	Removed     int            `json:"removed"`
	TotalEmails int            `json:"total_emails"`
	Errors      []ErrorPayload `json:"errors"`
}

// Err folds the per-email errors into one error.
func (r BulkRemoveResults) Err() error {
	return foldErrors(r.Errors)
}

func foldErrors(payloads []ErrorPayload) error {
	var result *multierror.Error
	for i, p := range payloads {
		result = multierror.Append(result, fmt.Errorf("entry %d: %w", i+1, p.Err()))
	}
	return result.ErrorOrNil()
}
