package rapidapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"linkedin-dashboard/lib/telemetry"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	calls atomic.Int32
}

// newTestServer replies with each handler in turn, repeating the last one.
func newTestServer(t testing.TB, handlers ...http.HandlerFunc) *testServer {
	s := &testServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idx := int(s.calls.Add(1)) - 1
		if idx >= len(handlers) {
			idx = len(handlers) - 1
		}
		handlers[idx](w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, body)
	}
}

func newTestClient(t testing.TB, baseUrl string, key string) (*Client, *SimulatedClock) {
	cleanup := telemetry.SetupForTesting(t, "test:rapidapi")
	t.Cleanup(cleanup)

	clock := &SimulatedClock{}
	client, err := NewClient(ClientOptions{
		BaseUrl:     baseUrl,
		Credentials: StaticCredential(key),
		Clock:       clock,
	})
	require.NoError(t, err)
	return client, clock
}

func TestGetSendsCredentialAndQuery(t *testing.T) {
	var gotUrl, gotKey string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUrl = r.URL.String()
		gotKey = r.Header.Get("x-rapidapi-key")
		io.WriteString(w, `{"full_name":"Ada"}`)
	})
	client, clock := newTestClient(t, server.URL+"/api", "secret")

	data, err := client.Get(context.Background(), "profile", P("username", "ada lovelace", "page", 1))
	require.NoError(t, err)
	require.JSONEq(t, `{"full_name":"Ada"}`, string(data))
	require.Equal(t, "/api/profile?username=ada+lovelace&page=1", gotUrl)
	require.Equal(t, "secret", gotKey)
	require.Equal(t, PreSendDelay, clock.Elapsed())
}

func TestRetriesRateLimitThenSucceeds(t *testing.T) {
	server := newTestServer(t,
		status(http.StatusTooManyRequests, `{"detail":"slow down"}`),
		status(http.StatusTooManyRequests, `{"detail":"slow down"}`),
		status(http.StatusOK, `{"ok":true}`),
	)
	client, clock := newTestClient(t, server.URL, "secret")

	var retries []int
	client.onRetry = func(attempt int, wait time.Duration) {
		retries = append(retries, attempt)
	}

	data, err := client.Get(context.Background(), "posts", P("username", "ada"))
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(data))
	require.EqualValues(t, 3, server.calls.Load())
	require.Equal(t, []int{2, 3}, retries)

	expected := []time.Duration{
		700 * time.Millisecond,
		1000 * time.Millisecond,
		700 * time.Millisecond,
		2000 * time.Millisecond,
		700 * time.Millisecond,
	}
	require.Equal(t, expected, clock.Waits())
	require.Equal(t, 5100*time.Millisecond, clock.Elapsed())
}

func TestRateLimitedAfterThreeAttempts(t *testing.T) {
	server := newTestServer(t, status(http.StatusTooManyRequests, ``))
	client, _ := newTestClient(t, server.URL, "secret")

	data, err := client.Get(context.Background(), "posts", nil)
	require.Nil(t, data)
	require.ErrorIs(t, err, ErrRateLimited)
	require.EqualValues(t, 3, server.calls.Load())
}

func TestMissingCredentialMakesNoCall(t *testing.T) {
	server := newTestServer(t, status(http.StatusOK, `{}`))
	client, clock := newTestClient(t, server.URL, "")

	data, err := client.Get(context.Background(), "profile", P("username", "ada"))
	require.Nil(t, data)
	require.ErrorIs(t, err, ErrMissingCredential)
	require.EqualValues(t, 0, server.calls.Load())
	require.Zero(t, clock.Elapsed())
}

type failingCredential struct{}

func (failingCredential) Credential(context.Context) (string, error) {
	return "", errors.New("keystore unavailable")
}

func TestCredentialProviderError(t *testing.T) {
	server := newTestServer(t, status(http.StatusOK, `{}`))
	client, err := NewClient(ClientOptions{
		BaseUrl:     server.URL,
		Credentials: failingCredential{},
		Clock:       &SimulatedClock{},
	})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "profile", nil)
	require.ErrorContains(t, err, "keystore unavailable")
	require.EqualValues(t, 0, server.calls.Load())
}

func TestRemoteErrorDetail(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"string detail", 404, `{"detail":"Profile not found"}`, "Profile not found"},
		{"structured detail", 422, `{"detail": [ {"loc": ["query", "username"], "msg": "field required"} ]}`, `[{"loc":["query","username"],"msg":"field required"}]`},
		{"empty detail", 500, `{"detail":""}`, "HTTP error 500"},
		{"no detail", 500, `{"error":"boom"}`, "HTTP error 500"},
		{"not json", 503, `upstream connect error`, "HTTP error 503"},
		{"html page", 502, `<!DOCTYPE html><html><head><title>502 Bad Gateway</title></head><body></body></html>`, "502 Bad Gateway"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			server := newTestServer(t, status(c.status, c.body))
			client, _ := newTestClient(t, server.URL, "secret")

			data, err := client.Get(context.Background(), "profile", nil)
			require.Nil(t, data)

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			require.Equal(t, c.status, remote.Status)
			require.Equal(t, c.expected, remote.Detail)
			require.EqualValues(t, 1, server.calls.Load())
		})
	}
}

func TestInvalidJSONSuccess(t *testing.T) {
	server := newTestServer(t, status(http.StatusOK, `<html>not json</html>`))
	client, _ := newTestClient(t, server.URL, "secret")

	_, err := client.Get(context.Background(), "profile", nil)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, "invalid JSON response", remote.Detail)
}

func TestNetworkError(t *testing.T) {
	server := newTestServer(t, status(http.StatusOK, `{}`))
	baseUrl := server.URL
	server.Close()

	client, _ := newTestClient(t, baseUrl, "secret")
	_, err := client.Get(context.Background(), "profile", nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestPostJSONBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType, gotMethod string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"reactions":[]}`)
	})
	client, _ := newTestClient(t, server.URL, "secret")

	body := map[string]any{"post_url": "https://x", "page_number": 1, "reaction_type": "ALL"}
	_, err := client.Post(context.Background(), "reactions", nil, body)
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, gotMethod)
	require.True(t, strings.HasPrefix(gotContentType, "application/json"))
	require.Equal(t, map[string]any{"post_url": "https://x", "page_number": float64(1), "reaction_type": "ALL"}, gotBody)
}

func TestUploadResentOnRetry(t *testing.T) {
	var contents []string
	handler := func(code int, body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			require.Equal(t, "profiles.csv", header.Filename)
			buf, err := io.ReadAll(file)
			require.NoError(t, err)
			contents = append(contents, string(buf))
			w.WriteHeader(code)
			io.WriteString(w, body)
		}
	}
	server := newTestServer(t,
		handler(http.StatusTooManyRequests, ``),
		handler(http.StatusOK, `{"count":0,"results":[]}`),
	)
	client, _ := newTestClient(t, server.URL, "secret")

	_, err := client.Do(context.Background(), Request{
		Endpoint: "upload/profiles",
		Method:   http.MethodPost,
		Upload:   &Upload{Filename: "profiles.csv", Contents: []byte("username\nada\n")},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"username\nada\n", "username\nada\n"}, contents)
}

func TestCancelledContext(t *testing.T) {
	server := newTestServer(t, status(http.StatusOK, `{}`))
	client, err := NewClient(ClientOptions{
		BaseUrl:     server.URL,
		Credentials: StaticCredential("secret"),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Get(ctx, "profile", nil)
	require.ErrorIs(t, err, context.Canceled)
	require.EqualValues(t, 0, server.calls.Load())
}

func TestConcurrentCalls(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"username":"`+r.URL.Query().Get("username")+`"}`)
	})
	client, _ := newTestClient(t, server.URL, "secret")

	names := []string{"a", "b", "c", "d", "e", "f"}
	results := make(chan string, len(names))
	for _, name := range names {
		go func(name string) {
			data, err := client.Get(context.Background(), "profile", P("username", name))
			if err != nil {
				results <- err.Error()
				return
			}
			var out struct {
				Username string `json:"username"`
			}
			json.Unmarshal(data, &out)
			results <- out.Username
		}(name)
	}

	seen := map[string]bool{}
	for range names {
		seen[<-results] = true
	}
	for _, name := range names {
		require.True(t, seen[name], name)
	}
}
