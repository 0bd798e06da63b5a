// Package signup implements the offline-first queue of account
// requests that could not be committed to the backend, plus the admin
// approval workflow that reconciles it.
package signup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/taskflow-project/taskflowctl/internal/api"
)

// DefaultPassword is the fixed password for admin-provisioned accounts.
// It is communicated to the operator out-of-band and never generated
// per user. A known weak default, kept for backend compatibility.
const DefaultPassword = "TaskFlow@123"

// NoteUnreachable marks entries queued because the backend was down.
const NoteUnreachable = "backend-unreachable"

// Entry is one queued signup request.
type Entry struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	RequestedAt string `json:"requestedAt"`
	Note        string `json:"note,omitempty"`
}

// Equal reports structural equality; removal matches on every field.
func (e Entry) Equal(other Entry) bool {
	return e == other
}

// NewEntry stamps a request with the current UTC time.
func NewEntry(fullName, email, note string) Entry {
	return Entry{
		FullName:    fullName,
		Email:       email,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
		Note:        note,
	}
}

// UserCreator is the part of the API client approval needs.
type UserCreator interface {
	CreateUser(ctx context.Context, fullName, email, role, password string) (*api.User, error)
}

// Store is a durable, file-resident, ordered queue of signup requests.
// Writers within one process are strictly sequential; concurrent admin
// processes are not coordinated, an accepted limitation for a local
// administrative tool.
type Store struct {
	path string
}

// NewStore creates a store persisting to path. The file is created
// lazily on the first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns queued entries in insertion order, oldest first. A
// missing or corrupt file reads as an empty queue and never fails the
// caller; corrupt content is not auto-repaired.
func (s *Store) List() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// Append adds an entry to the end of the queue.
func (s *Store) Append(entry Entry) error {
	entries := append(s.List(), entry)
	return s.write(entries)
}

// Remove deletes the first entry structurally equal to the given one.
// Removing an entry that is not queued is a no-op, so approving or
// rejecting twice never fails.
func (s *Store) Remove(entry Entry) error {
	entries := s.List()
	for i, e := range entries {
		if e.Equal(entry) {
			return s.write(append(entries[:i], entries[i+1:]...))
		}
	}
	return nil
}

// Approve creates the account with the fixed EMPLOYEE role and default
// password, then removes the entry from the queue. When creation fails
// the entry stays queued and the failure is returned: an approval never
// silently disappears without a resulting account. A crash between
// creation and removal can leave a duplicate pending entry; that gap is
// accepted rather than papered over.
func (s *Store) Approve(ctx context.Context, client UserCreator, entry Entry) error {
	if _, err := client.CreateUser(ctx, entry.FullName, entry.Email, api.RoleEmployee, DefaultPassword); err != nil {
		return fmt.Errorf("creating account for %s: %w", entry.Email, err)
	}
	return s.Remove(entry)
}

// Reject removes the entry without creating an account.
func (s *Store) Reject(entry Entry) error {
	return s.Remove(entry)
}

// Find returns the first queued entry for the given email.
func (s *Store) Find(email string) (Entry, bool) {
	for _, e := range s.List() {
		if e.Email == email {
			return e, true
		}
	}
	return Entry{}, false
}

// write replaces the queue file atomically (write temp, rename) so a
// reader never observes a partially written file.
func (s *Store) write(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing queue: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// ShouldQueue decides whether a failed signup belongs in the queue:
// only an explicit 403 (public signup disabled) or an unreachable
// backend qualifies. Every other failure is surfaced directly.
func ShouldQueue(err error) bool {
	if err == nil {
		return false
	}
	if api.StatusOf(err) == http.StatusForbidden {
		return true
	}
	return api.IsUnreachable(err)
}
