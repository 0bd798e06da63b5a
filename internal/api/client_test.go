package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var tokens TokenSource
	if token != "" {
		tokens = StaticToken(token)
	}
	return NewClient(srv.URL, 2*time.Second, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCall_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}, "tok-123")

	_, err := client.Call(context.Background(), http.MethodGet, "/tasks", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestCall_OmitsBearerWhenNoToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, "")

	_, err := client.Call(context.Background(), http.MethodGet, "/tasks", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestCall_SetsRequestID(t *testing.T) {
	var gotID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}, "")

	_, err := client.Call(context.Background(), http.MethodGet, "/tasks", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, gotID)
}

func TestCall_HTTPErrorRange(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 409, 500, 503} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"nope"}`))
		}, "")

		_, err := client.Call(context.Background(), http.MethodGet, "/x", nil)
		require.Error(t, err, "status %d must fail", status)
		assert.Equal(t, status, StatusOf(err))
	}
}

func TestCall_NoContentSucceedsWithNilPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "")

	data, err := client.Call(context.Background(), http.MethodDelete, "/users/x", nil)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCall_NonJSONSuccessReturnsRawText(t *testing.T) {
	csv := "id,title\n1,hello"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	}, "")

	data, err := client.Call(context.Background(), http.MethodGet, "/reports/tasks?format=csv", nil)
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestCall_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 50*time.Millisecond, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.Call(context.Background(), http.MethodGet, "/slow", nil)
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "got %v", err)
}

func TestCall_ExpiredContextIsTimeout(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := client.Call(ctx, http.MethodDelete, "/users/u1", nil)
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "got %v", err)
	assert.False(t, called, "no request may leave after the deadline")
}

func TestCall_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens here anymore

	client := NewClient(srv.URL, time.Second, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.Call(context.Background(), http.MethodGet, "/tasks", nil)
	require.Error(t, err)
	assert.True(t, IsUnreachable(err), "got %v", err)
}

func TestCall_NeverRetries(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	_, err := client.Call(context.Background(), http.MethodGet, "/x", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestUserMessage_Truncates(t *testing.T) {
	err := &HTTPError{Status: 500, Body: strings.Repeat("x", 500)}
	msg := UserMessage(err)
	assert.LessOrEqual(t, len(msg), userMessageLimit+len("API error: "))
}

func TestUserMessage_KnownCases(t *testing.T) {
	assert.Contains(t, UserMessage(ErrUnreachable), "Cannot connect")
	assert.Contains(t, UserMessage(ErrTimeout), "timed out")
	assert.Empty(t, UserMessage(nil))
}

func TestLogin_ParsesTokenAndUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"token":"t1","user":{"id":"u1","email":"a@b.com","fullName":"A B","role":"ADMIN"}}`))
	}, "should-not-be-sent")

	result, err := client.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t1", result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, "ADMIN", result.User.Role)
}

func TestTasks_DecodesList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"t1","title":"one","status":"TODO","priority":2,"createdAt":1700000000000}]`))
	}, "tok")

	tasks, err := client.Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "one", tasks[0].Title)
	assert.Equal(t, 2, tasks[0].EffectivePriority())
}

func TestEffectivePriority_DefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, DefaultPriority, Task{}.EffectivePriority())
	assert.Equal(t, 5, Task{Priority: 5}.EffectivePriority())
}
