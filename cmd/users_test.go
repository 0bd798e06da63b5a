package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// slowReader delays the first read, standing in for an operator who
// takes a while to type the confirmation.
type slowReader struct {
	delay time.Duration
	r     io.Reader
	once  sync.Once
}

func (s *slowReader) Read(p []byte) (int, error) {
	s.once.Do(func() { time.Sleep(s.delay) })
	return s.r.Read(p)
}

func deleteBackend(t *testing.T, deleted *bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			w.Write([]byte(`[
				{"id":"u1","email":"admin@company.com","fullName":"Admin","role":"ADMIN"},
				{"id":"u2","email":"emp@company.com","fullName":"Emp","role":"EMPLOYEE"}
			]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/users/u2":
			*deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUsersDelete_SlowConfirmationStillDeletes(t *testing.T) {
	deleted := false
	srv := deleteBackend(t, &deleted)

	chdir(t, t.TempDir())
	t.Setenv("TASKFLOWCTL_API_BASE_URL", srv.URL)
	// Keep the per-call deadline well below the prompt delay.
	t.Setenv("TASKFLOWCTL_API_TIMEOUT", "200ms")
	seedSession(t)

	rootCmd.SetIn(&slowReader{delay: 800 * time.Millisecond, r: strings.NewReader("yes\n")})
	t.Cleanup(func() { rootCmd.SetIn(nil) })
	rootCmd.SetArgs([]string{"users", "delete", "u2"})

	_, _, err := captureOutput(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("slow confirmation must not time the delete out: %v", err)
	}
	if !deleted {
		t.Error("backend delete was never reached")
	}
}

func TestUsersDelete_DecliningLeavesUser(t *testing.T) {
	deleted := false
	srv := deleteBackend(t, &deleted)

	chdir(t, t.TempDir())
	t.Setenv("TASKFLOWCTL_API_BASE_URL", srv.URL)
	seedSession(t)

	rootCmd.SetIn(strings.NewReader("no\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })
	rootCmd.SetArgs([]string{"users", "delete", "u2"})

	_, _, err := captureOutput(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("declined delete must not fail: %v", err)
	}
	if deleted {
		t.Error("declined delete must not reach the backend")
	}
}

func TestUsersDelete_QuietRequiresYes(t *testing.T) {
	deleted := false
	srv := deleteBackend(t, &deleted)

	chdir(t, t.TempDir())
	t.Setenv("TASKFLOWCTL_API_BASE_URL", srv.URL)
	seedSession(t)

	rootCmd.SetArgs([]string{"users", "delete", "u2", "--quiet"})
	t.Cleanup(func() {
		quiet = false
		_ = rootCmd.PersistentFlags().Set("quiet", "false")
	})

	_, _, err := captureOutput(t, rootCmd.Execute)
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("quiet delete without --yes must be refused, got: %v", err)
	}
	if deleted {
		t.Error("refused delete must not reach the backend")
	}
}

func TestUsersDelete_YesFlagSkipsPrompt(t *testing.T) {
	deleted := false
	srv := deleteBackend(t, &deleted)

	chdir(t, t.TempDir())
	t.Setenv("TASKFLOWCTL_API_BASE_URL", srv.URL)
	seedSession(t)

	rootCmd.SetArgs([]string{"users", "delete", "u2", "--yes"})
	t.Cleanup(func() { _ = usersDeleteCmd.Flags().Set("yes", "false") })

	_, _, err := captureOutput(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("delete with --yes failed: %v", err)
	}
	if !deleted {
		t.Error("backend delete was never reached")
	}
}
