package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cedarclub/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func sampleUser() models.User {
	return models.User{
		ID:           "u-1",
		MembershipID: "m-1",
		MemberNumber: "31505",
		Role:         models.RoleTitular,
		FirstName:    "Ana",
		LastName:     "Ruiz",
		UserType:     models.UserTypeMember,
	}
}

func storages(t *testing.T) map[string]Storage {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	fs, err := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("file storage: %v", err)
	}
	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   fs,
		"redis":  NewRedisStorage(rdb, "test-device"),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	for name, st := range storages(t) {
		st := st
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, err := Open(ctx, st, nil)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if s.IsAuthenticated() {
				t.Fatal("expected fresh store to be unauthenticated")
			}
			if err := s.Login(ctx, sampleUser(), "tok-1"); err != nil {
				t.Fatalf("login: %v", err)
			}

			restored, err := Open(ctx, st, nil)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			u, ok := restored.User()
			if !ok || u != sampleUser() {
				t.Fatalf("expected restored user %+v, got %+v (ok=%v)", sampleUser(), u, ok)
			}
			if restored.Token() != "tok-1" {
				t.Fatalf("expected token tok-1, got %q", restored.Token())
			}

			if err := restored.Logout(ctx); err != nil {
				t.Fatalf("logout: %v", err)
			}
			for _, k := range []string{KeyUser, KeyToken} {
				if _, ok, _ := st.Get(ctx, k); ok {
					t.Fatalf("expected %s to be cleared", k)
				}
			}
			again, _ := Open(ctx, st, nil)
			if again.IsAuthenticated() {
				t.Fatal("expected logged out store after reopen")
			}
		})
	}
}

func TestOpenIgnoresPartialSession(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "token only", values: map[string]string{KeyToken: "tok"}},
		{name: "user only", values: map[string]string{KeyUser: `{"id":"u-1","user_type":"member"}`}},
		{name: "corrupt user", values: map[string]string{KeyUser: "{not json", KeyToken: "tok"}},
		{name: "user without type", values: map[string]string{KeyUser: `{"id":"u-1"}`, KeyToken: "tok"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := NewMemoryStorage()
			_ = st.Set(context.Background(), tt.values)
			s, err := Open(context.Background(), st, nil)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if s.IsAuthenticated() {
				t.Fatal("expected unauthenticated store")
			}
			if s.Token() != "" {
				t.Fatalf("expected stray token to be ignored, got %q", s.Token())
			}
		})
	}
}

func TestLoginOverwritesPreviousUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := Open(ctx, NewMemoryStorage(), nil)
	_ = s.Login(ctx, sampleUser(), "tok-1")

	staff := models.User{ID: "s-1", FirstName: "Luis", UserType: models.UserTypeEmployee, UnitName: "Hermes"}
	if err := s.Login(ctx, staff, "tok-2"); err != nil {
		t.Fatalf("login: %v", err)
	}
	u, _ := s.User()
	if u != staff || s.Token() != "tok-2" {
		t.Fatalf("expected staff session, got %+v / %q", u, s.Token())
	}
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	t.Parallel()
	s, _ := Open(context.Background(), NewMemoryStorage(), nil)
	if err := s.Login(context.Background(), sampleUser(), ""); err != ErrEmptyToken {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatal("expected store to stay logged out")
	}
}

func TestFileStorageReplacesCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs, _ := NewFileStorage(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if v, ok, err := fs.Get(context.Background(), KeyToken); err != nil || ok {
		t.Fatalf("expected corrupt file to read as empty, got %q ok=%v err=%v", v, ok, err)
	}
	s, err := Open(context.Background(), fs, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatal("expected unauthenticated store over a corrupt file")
	}
	if err := fs.Set(context.Background(), map[string]string{KeyToken: "tok"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, err := fs.Get(context.Background(), KeyToken); err != nil || !ok || v != "tok" {
		t.Fatalf("expected tok, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStorageUnreadableFileFailsOpen(t *testing.T) {
	t.Parallel()
	// A directory in place of the file is an I/O failure, not a corrupt session.
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.Mkdir(path, 0o700); err != nil {
		t.Fatal(err)
	}
	fs, _ := NewFileStorage(path)
	if _, err := Open(context.Background(), fs, nil); err == nil {
		t.Fatal("expected read failure to surface on open")
	}
}

func TestRedisStorageNamespacesByDevice(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	a := NewRedisStorage(rdb, "a")
	b := NewRedisStorage(rdb, "b")
	ctx := context.Background()
	_ = a.Set(ctx, map[string]string{KeyToken: "tok-a"})

	if _, ok, _ := b.Get(ctx, KeyToken); ok {
		t.Fatal("expected device b to see no token")
	}
	if !mr.Exists("cedarclub:session:a:" + KeyToken) {
		t.Fatal("expected prefixed key in redis")
	}
}
