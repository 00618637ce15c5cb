package groupsio

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name     string
		apiKey   string
		opts     []Option
		wantRoot string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "defaults",
			apiKey:   "test-key",
			wantRoot: "https://api.groups.io/v1",
		},
		{
			name:     "custom host and version",
			apiKey:   "test-key",
			opts:     []Option{WithHostname("sandbox.groups.io/"), WithVersion("/v2")},
			wantRoot: "https://sandbox.groups.io/v2",
		},
		{
			name:    "missing API key",
			apiKey:  " ",
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name:    "missing hostname",
			apiKey:  "test-key",
			opts:    []Option{WithHostname("")},
			wantErr: true,
			errMsg:  "hostname is required",
		},
		{
			name:    "missing version",
			apiKey:  "test-key",
			opts:    []Option{WithVersion("")},
			wantErr: true,
			errMsg:  "version is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, logger, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, client.APIRoot())
			assert.Empty(t, client.Token())
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithUserAgent("groupsio-test"))
		require.NoError(t, err)
		assert.Equal(t, "groupsio-test", client.userAgent)
	})
}

func TestLogin(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/login":
			assert.Equal(t, "Basic test-key:", r.Header.Get("Authorization"))
			assert.Equal(t, "me@example.com", r.URL.Query().Get("email"))
			assert.Equal(t, "secret", r.URL.Query().Get("password"))
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "abc123",
				"user":  map[string]any{"object": "user", "id": 1, "email": "me@example.com"},
			})
		case "/v1/getuser":
			assert.Equal(t, "Basic abc123:", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"object": "user", "id": 1, "email": "me@example.com"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	client.SetToken("")

	ctx := context.Background()
	require.NoError(t, client.Login(ctx, "me@example.com", "secret"))
	assert.Equal(t, "abc123", client.Token())

	user, err := client.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
	assert.Equal(t, 2, rec.total())
}

func TestLoginWithTwoFactor(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "email=me%40example.com&password=secret&twofactor=123456", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{"token": "tfa"})
	})

	require.NoError(t, client.LoginWithTwoFactor(context.Background(), "me@example.com", "secret", 123456))
	assert.Equal(t, "tfa", client.Token())
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		transport bool
	}{
		{
			name:    "bad credentials",
			status:  http.StatusUnauthorized,
			body:    `{"object":"error","type":"authentication","extra":"bad password"}`,
			wantErr: ErrAuthentication,
		},
		{
			name:      "empty token",
			status:    http.StatusOK,
			body:      `{"token":""}`,
			transport: true,
		},
		{
			name:      "garbage",
			status:    http.StatusOK,
			body:      `not json`,
			transport: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			client.SetToken("")

			err := client.Login(context.Background(), "me@example.com", "wrong")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.transport, IsTransportError(err))
			assert.Empty(t, client.Token())
		})
	}
}

func TestCallAuthorization(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"object": "user", "id": 1})
	})
	ctx := context.Background()

	req, err := NewRequest(http.MethodGet, "/getuser").Build()
	require.NoError(t, err)
	_, err = Call[User](ctx, client, req)
	require.NoError(t, err)

	explicit, err := req.Derive().Header("Authorization", "Bearer other").Build()
	require.NoError(t, err)
	_, err = Call[User](ctx, client, explicit)
	require.NoError(t, err)

	lower, err := req.Derive().Header("authorization", "Basic mine:").Build()
	require.NoError(t, err)
	_, err = Call[User](ctx, client, lower)
	require.NoError(t, err)

	client.SetToken("")
	_, err = Call[User](ctx, client, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"Basic session-token:", "Bearer other", "Basic mine:", "Basic :"}, rec.headers("Authorization"))
}

func TestCallClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		transport bool
	}{
		{
			name:    "403 inadequate permissions",
			status:  http.StatusForbidden,
			body:    `{"object":"error","type":"inadequate_permissions"}`,
			wantErr: ErrInadequatePermissions,
		},
		{
			name:    "400 without object field",
			status:  http.StatusBadRequest,
			body:    `{"type":"invalid_value","extra":"group_id"}`,
			wantErr: ErrInvalidValue,
		},
		{
			name:    "200 with error envelope",
			status:  http.StatusOK,
			body:    `{"object":"error","type":"expired","extra":"token expired"}`,
			wantErr: ErrExpired,
		},
		{
			name:    "200 with bare error envelope",
			status:  http.StatusOK,
			body:    `{"type":"expired","extra":"token expired"}`,
			wantErr: ErrExpired,
		},
		{
			name:    "200 bare envelope with unknown kind",
			status:  http.StatusOK,
			body:    `{"type":"brand_new"}`,
			wantErr: ErrUnknown,
		},
		{
			name:    "unrecognised kind",
			status:  http.StatusTeapot,
			body:    `{"object":"error","type":"brand_new"}`,
			wantErr: ErrUnknown,
		},
		{
			name:      "500 html",
			status:    http.StatusBadGateway,
			body:      `<html>bad gateway</html>`,
			transport: true,
		},
		{
			name:      "200 malformed",
			status:    http.StatusOK,
			body:      `{"object":"user",`,
			transport: true,
		},
		{
			name:      "200 empty",
			status:    http.StatusOK,
			body:      ``,
			wantErr:   ErrEmptyBody,
			transport: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			req, err := NewRequest(http.MethodGet, "/getuser").Build()
			require.NoError(t, err)

			_, err = Call[User](context.Background(), client, req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.transport, IsTransportError(err))

			if !tt.transport {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.status, apiErr.StatusCode)
			}
		})
	}
}

func TestCallRequestShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/updateuser", r.URL.Path)
		assert.Equal(t, "a=1&b=2&a2=3", r.URL.RawQuery)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "groupsio-go", r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Custom"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Jane", r.PostForm.Get("full_name"))
		writeJSON(w, http.StatusOK, map[string]any{"object": "user", "full_name": "Jane"})
	})

	req, err := NewRequest(http.MethodPost, "updateuser").
		Param("a", "1").
		Param("b", "2").
		Param("a2", "3").
		Header("X-Custom", "yes").
		Body("application/x-www-form-urlencoded", []byte("full_name=Jane")).
		Build()
	require.NoError(t, err)

	user, err := Call[User](context.Background(), client, req)
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.FullName)
}

func TestCallTransportFailure(t *testing.T) {
	client, err := NewClient("test-key", zerolog.Nop(), WithHostname("127.0.0.1:1"), WithTimeout(time.Second))
	require.NoError(t, err)

	req, err := NewRequest(http.MethodGet, "/getuser").Build()
	require.NoError(t, err)

	_, err = Call[User](context.Background(), client, req)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
}

func TestCallContextCanceled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"object": "user"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := NewRequest(http.MethodGet, "/getuser").Build()
	require.NoError(t, err)

	_, err = Call[User](ctx, client, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
