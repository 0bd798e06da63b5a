package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskflow-project/taskflowctl/internal/signup"
)

func runSignupAgainst(t *testing.T, url string) error {
	t.Helper()
	t.Setenv("TASKFLOWCTL_API_BASE_URL", url)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{
		"signup",
		"--name", "John Doe",
		"--email", "john@company.com",
		"--password", "secret1",
		"--confirm-password", "secret1",
	})
	return rootCmd.Execute()
}

func readPending(t *testing.T) []signup.Entry {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("data", "pending_signups.json"))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var entries []signup.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestSignup_ForbiddenQueuesEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"Forbidden"}`))
	}))
	t.Cleanup(srv.Close)

	chdir(t, t.TempDir())

	// Queuing is the expected outcome, not an error.
	if err := runSignupAgainst(t, srv.URL); err != nil {
		t.Fatalf("signup should succeed informationally: %v", err)
	}

	entries := readPending(t)
	if len(entries) != 1 {
		t.Fatalf("expected 1 pending entry, got %d", len(entries))
	}
	if entries[0].FullName != "John Doe" || entries[0].Email != "john@company.com" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	if entries[0].RequestedAt == "" {
		t.Error("entry must carry a request timestamp")
	}
}

func TestSignup_UnreachableQueuesWithNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	chdir(t, t.TempDir())

	if err := runSignupAgainst(t, srv.URL); err != nil {
		t.Fatalf("signup should succeed informationally: %v", err)
	}

	entries := readPending(t)
	if len(entries) != 1 {
		t.Fatalf("expected 1 pending entry, got %d", len(entries))
	}
	if entries[0].Note != signup.NoteUnreachable {
		t.Errorf("expected unreachable note, got %q", entries[0].Note)
	}
}

func TestSignup_OtherErrorsAreNotQueued(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"User already exists"}`))
	}))
	t.Cleanup(srv.Close)

	chdir(t, t.TempDir())

	if err := runSignupAgainst(t, srv.URL); err == nil {
		t.Fatal("expected error for conflict response")
	}
	if entries := readPending(t); len(entries) != 0 {
		t.Errorf("conflict must not enqueue, got %d entries", len(entries))
	}
}

func TestSignup_SuccessCreatesNothingLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"u1","email":"john@company.com","fullName":"John Doe","role":"EMPLOYEE"}`))
	}))
	t.Cleanup(srv.Close)

	chdir(t, t.TempDir())

	if err := runSignupAgainst(t, srv.URL); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if entries := readPending(t); len(entries) != 0 {
		t.Errorf("successful signup must not enqueue, got %d entries", len(entries))
	}
}
