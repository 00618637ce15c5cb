// Package groupsio provides a client for the Groups.io REST API.
//
// Groups.io is a mailing list and group collaboration service. This package
// models its resources as typed values and handles authentication, JSON
// decoding and cursor pagination.
//
// # Architecture
//
//   - Request: an immutable description of one API call, built with NewRequest
//   - Client: the session holding the API key and login token
//   - Call and Paginate: generic helpers that execute a Request and decode it
//   - Resource methods: GetMembers, InviteMembers, GetTopics and friends
//   - Errors: APIError for rejected calls, TransportError for everything else
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := groupsio.NewClient("your-api-key", logger,
//		groupsio.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.Login(ctx, "me@example.com", "secret"); err != nil {
//		log.Fatal(err)
//	}
//
//	members, err := client.GetMembers(ctx, 12345)
//
// Endpoints without a resource method can be reached directly:
//
//	req, _ := groupsio.NewRequest(http.MethodGet, "/gethashtags").
//		Param("group_id", "12345").
//		Param("limit", "100").
//		Build()
//	tags, err := groupsio.Paginate[groupsio.Hashtag](ctx, client, req)
//
// # Permissions
//
// Operations that need a group permission fetch /getperms first and fail
// with ErrInadequatePermissions, without calling the endpoint, when the
// logged-in user lacks it.
//
// # Error Handling
//
// Every rejection by the API is an *APIError. Compare it with the sentinel
// values:
//
//	if errors.Is(err, groupsio.ErrExpired) {
//		// log in again
//	}
//
// Network failures and undecodable responses are a *TransportError.
package groupsio
