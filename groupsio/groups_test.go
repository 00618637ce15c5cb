package groupsio

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPermissions(t *testing.T) {
	client, rec := newTestClient(t, permsHandler(map[string]any{
		"view_members":   true,
		"invite_members": true,
		"delete_group":   false,
	}, nil))

	perms, err := client.GetPermissions(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, perms.ViewMembers)
	assert.True(t, perms.InviteMembers)
	assert.False(t, perms.DeleteGroup)
	assert.Equal(t, []string{"group_id=7"}, rec.queries("/v1/getperms"))
}

func TestGetGroup(t *testing.T) {
	client, _ := newTestClient(t, permsHandler(map[string]any{"manage_group_settings": true},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/getgroup", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{
				"object":  "group",
				"id":      7,
				"name":    "golang",
				"privacy": GroupPrivacyPrivate,
			})
		}))

	group, err := client.GetGroup(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "golang", group.Name)
	assert.Equal(t, GroupPrivacyPrivate, group.Privacy)
}

func TestGetSubgroups(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(pageTokenParam) == "" {
			writeJSON(w, http.StatusOK, map[string]any{
				"object": "list", "has_more": true, "next_page_token": 2,
				"data": []map[string]any{{"object": "group", "id": 8, "name": "golang+announce"}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"object": "list", "has_more": false,
			"data": []map[string]any{{"object": "group", "id": 9, "name": "golang+jobs"}},
		})
	})

	groups, err := client.GetSubgroups(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "golang+jobs", groups[1].Name)
	assert.Equal(t, 2, rec.count("/v1/getsubgroups"))
}

func TestCreateSubgroup(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"object": "group", "id": 10, "name": "golang+new"})
	})

	group, err := client.CreateSubgroup(context.Background(), 7, "new", "A new subgroup", GroupPrivacySubgroupAll)
	require.NoError(t, err)
	assert.Equal(t, 10, group.ID)
	assert.Equal(t,
		[]string{"group_id=7&sub_group_name=new&desc=A+new+subgroup&privacy=group_privacy_subgroup_all"},
		rec.queries("/v1/createsubgroup"))
}

func TestUpdateGroup(t *testing.T) {
	client, _ := newTestClient(t, permsHandler(map[string]any{"manage_group_settings": true},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "7", r.PostForm.Get("group_id"))
			assert.Equal(t, "Gophers", r.PostForm.Get("title"))
			assert.Equal(t, "true", r.PostForm.Get("moderated"))
			assert.Empty(t, r.PostForm.Get("name"))
			writeJSON(w, http.StatusOK, map[string]any{"object": "group", "id": 7, "title": "Gophers"})
		}))

	group, err := client.UpdateGroup(context.Background(), Group{ID: 7, Name: "golang", Title: "Gophers", Moderated: true})
	require.NoError(t, err)
	assert.Equal(t, "Gophers", group.Title)
}

func TestDeleteGroup(t *testing.T) {
	client, rec := newTestClient(t, permsHandler(map[string]any{"delete_group": true},
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"object": "group", "id": 7})
		}))

	require.NoError(t, client.DeleteGroup(context.Background(), 7))
	assert.Equal(t, []string{"group_id=7&understand=I+understand"}, rec.queries("/v1/deletegroup"))
}

func TestGetTopics(t *testing.T) {
	client, _ := newTestClient(t, permsHandler(map[string]any{"view_archives": true},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/gettopics", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{
				"object":   "list",
				"has_more": false,
				"data": []map[string]any{{
					"id":       1,
					"subject":  "Hello",
					"num_msgs": 3,
					"poster":   map[string]any{"name": "Jane"},
					"hashtags": []map[string]any{{"id": 5, "name": "intro"}},
				}},
			})
		}))

	topics, err := client.GetTopics(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Hello", topics[0].Subject)
	assert.Equal(t, "Jane", topics[0].Poster.Name)
	assert.Equal(t, "intro", topics[0].Hashtags[0].Name)
}
