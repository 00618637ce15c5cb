package groupsio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	body := []byte(`{
		"object": "list",
		"total_count": 3,
		"start_item": 1,
		"end_item": 2,
		"has_more": true,
		"next_page_token": 99,
		"data": [{"id": 1, "email": "a@example.com"}, {"id": 2, "email": "b@example.com"}]
	}`)

	page, err := decode[Page[Subscription]](body)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.True(t, page.HasMore)
	assert.Equal(t, 99, page.NextPageToken)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "b@example.com", page.Data[1].Email)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "whitespace", body: "  \n"},
		{name: "malformed", body: `{"object":`},
		{name: "error envelope", body: `{"object":"error","type":"expired"}`},
		{name: "bare error envelope", body: `{"type":"expired","extra":"token expired"}`},
		{name: "wrong discriminator", body: `{"object":"user","id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode[Permissions]([]byte(tt.body))
			require.Error(t, err)
		})
	}

	_, err := decode[User](nil)
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestDecodeUntyped(t *testing.T) {
	raw, err := decode[json.RawMessage]([]byte(`{"object":"sub","id":3}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"object":"sub","id":3}`, string(raw))

	sub, err := decode[Subscription]([]byte(`{"object":"subscription_plus","id":3,"status":"sub_status_normal"}`))
	require.NoError(t, err)
	assert.Equal(t, SubscriptionStatusNormal, sub.Status)
}

func TestDecodeError(t *testing.T) {
	p, err := decodeError([]byte(`{"object":"error","type":"inadequate_permissions","extra":"nope"}`))
	require.NoError(t, err)
	assert.Equal(t, ErrorTypeInadequatePermissions, p.Kind())
	assert.Equal(t, "nope", p.Extra)

	_, err = decodeError([]byte(`{"object":"error"}`))
	assert.Error(t, err)

	_, err = decodeError([]byte(`<html>bad gateway</html>`))
	assert.Error(t, err)
}
