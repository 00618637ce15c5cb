package groupsio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

const (
	groupIDParam = "group_id"
	subIDParam   = "sub_id"
	limitParam   = "limit"
)

// permissionCheck reports whether a permission set allows an operation.
type permissionCheck func(Permissions) bool

// requirePermission fetches the caller's permissions in groupID and fails
// locally when check does not pass.
func (c *Client) requirePermission(ctx context.Context, groupID int, name string, check permissionCheck) error {
	perms, err := c.GetPermissions(ctx, groupID)
	if err != nil {
		return err
	}
	if !check(perms) {
		c.logger.Debug().
			Int("group_id", groupID).
			Str("permission", name).
			Msg("Permission missing, request not sent")
		return inadequatePermissions(fmt.Sprintf("%s required in group %d", name, groupID))
	}
	return nil
}

func get(path string) *RequestBuilder {
	return NewRequest(http.MethodGet, path)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

func joinEmails(emails []string) string {
	return strings.Join(emails, "\n")
}

// updateRequest encodes v's url-tagged fields, plus extra, as a POST form body.
func updateRequest(path string, v any, extra url.Values) (Request, error) {
	form, err := query.Values(v)
	if err != nil {
		return Request{}, fmt.Errorf("%w: encode %s form: %v", ErrInvalidRequest, path, err)
	}
	for k, vals := range extra {
		form[k] = vals
	}
	return NewRequest(http.MethodPost, path).FormBody(form).Build()
}
