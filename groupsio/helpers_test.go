package groupsio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// recorder counts the requests a fake API received, per path.
type recorder struct {
	mu    sync.Mutex
	calls map[string]int
	reqs  []*http.Request
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[req.URL.Path]++
	r.reqs = append(r.reqs, req)
}

func (r *recorder) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[path]
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

func (r *recorder) headers(key string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.reqs))
	for _, req := range r.reqs {
		out = append(out, req.Header.Get(key))
	}
	return out
}

func (r *recorder) queries(path string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, req := range r.reqs {
		if req.URL.Path == path {
			out = append(out, req.URL.RawQuery)
		}
	}
	return out
}

// newTestClient starts a TLS server standing in for api.groups.io and returns
// a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", zerolog.Nop(),
		WithHostname(strings.TrimPrefix(server.URL, "https://")),
		WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	client.SetToken("session-token")
	return client, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// permsHandler answers /getperms with perms and delegates everything else.
func permsHandler(perms map[string]any, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/getperms" {
			body := map[string]any{"object": "permissions"}
			for k, v := range perms {
				body[k] = v
			}
			writeJSON(w, http.StatusOK, body)
			return
		}
		next(w, r)
	}
}
