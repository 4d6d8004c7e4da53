package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/identity-admin/internal/core/domain"
	"github.com/99minutos/identity-admin/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUsersRepo struct {
	byID       map[string]*domain.User
	byUsername map[string]*domain.User
	seq        int
	failWith   error // if set, every call returns this error
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
}

func (r *stubUsersRepo) List(_ context.Context, f ports.ListUsersFilter) ([]domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []domain.User
	for _, u := range r.byID {
		if f.Username != "" && u.Username != f.Username {
			continue
		}
		if f.Role != "" && !u.HasRole(f.Role) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubUsersRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFound("user " + id + " not found")
	}
	clone := *u
	return &clone, nil
}

func (r *stubUsersRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.NotFound("user " + username + " not found")
	}
	clone := *u
	return &clone, nil
}

func (r *stubUsersRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if _, taken := r.byUsername[user.Username]; taken {
		return nil, domain.AlreadyExists("username " + user.Username + " is taken")
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("u-%06d", r.seq)
	r.byID[clone.ID] = &clone
	r.byUsername[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUsersRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFound("user " + id + " not found")
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Roles != nil {
		u.Roles = *patch.Roles
	}
	clone := *u
	return &clone, nil
}

func (r *stubUsersRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFound("user " + id + " not found")
	}
	delete(r.byID, id)
	delete(r.byUsername, u.Username)
	return u, nil
}

// ---------------------------------------------------------------------------
// In-memory stub cache
// ---------------------------------------------------------------------------

type stubUserCache struct {
	entries     map[string]*domain.User
	hits        int
	invalidated []string
}

func newStubUserCache() *stubUserCache {
	return &stubUserCache{entries: make(map[string]*domain.User)}
}

func (c *stubUserCache) Get(_ context.Context, id string) (*domain.User, bool) {
	u, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return u, ok
}

func (c *stubUserCache) Set(_ context.Context, user *domain.User) {
	clone := *user
	c.entries[user.ID] = &clone
}

func (c *stubUserCache) Invalidate(_ context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newUsersService(repo ports.UsersRepository, cache ports.UserCache) *UsersService {
	return NewUsersService(repo, cache, zerolog.Nop())
}

func validInput(username string) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username: username,
		Password: "s3cret-pass",
		Email:    username + "@example.com",
		Roles:    []string{domain.RoleUser},
	}
}

func TestCreate_AssignsFreshID(t *testing.T) {
	svc := newUsersService(newStubUsersRepo(), nil)

	seen := make(map[string]struct{})
	for _, name := range []string{"alice", "bob", "carol"} {
		res, err := svc.Create(context.Background(), validInput(name))
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if cataErr := res.Cata(
			func(e *domain.Error) error { return e },
			func(u domain.User) error {
				if u.ID == "" {
					t.Fatalf("create %s: empty id", name)
				}
				if _, dup := seen[u.ID]; dup {
					t.Fatalf("create %s: id %s already assigned", name, u.ID)
				}
				seen[u.ID] = struct{}{}
				return nil
			},
		); cataErr != nil {
			t.Fatalf("create %s: unexpected domain error: %v", name, cataErr)
		}
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	svc := newUsersService(newStubUsersRepo(), nil)

	first, err := svc.Create(context.Background(), validInput("alice"))
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if !first.IsOk() {
		t.Fatalf("first create must succeed")
	}

	second, err := svc.Create(context.Background(), validInput("alice"))
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if cataErr := second.Cata(
		func(e *domain.Error) error {
			if e.Kind != domain.KindAlreadyExists {
				t.Fatalf("expected AlreadyExists, got %s", e.Kind)
			}
			return nil
		},
		func(u domain.User) error {
			t.Fatalf("duplicate username must not succeed, got id %s", u.ID)
			return nil
		},
	); cataErr != nil {
		t.Fatalf("cata: %v", cataErr)
	}
}

func TestCreate_HashesPassword(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newUsersService(repo, nil)

	if _, err := svc.Create(context.Background(), validInput("alice")); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := repo.byUsername["alice"]
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Fatalf("stored hash does not verify against original password")
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	svc := newUsersService(newStubUsersRepo(), nil)

	cases := []struct {
		name  string
		input ports.CreateUserInput
	}{
		{"blank username", ports.CreateUserInput{Username: "  ", Password: "s3cret-pass", Roles: []string{"user"}}},
		{"short password", ports.CreateUserInput{Username: "alice", Password: "short", Roles: []string{"user"}}},
		{"no roles", ports.CreateUserInput{Username: "alice", Password: "s3cret-pass"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Create(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("unexpected fatal error: %v", err)
			}
			_ = res.Cata(
				func(e *domain.Error) error {
					if e.Kind != domain.KindValidation {
						t.Fatalf("expected Validation, got %s", e.Kind)
					}
					return nil
				},
				func(domain.User) error {
					t.Fatalf("invalid input must not succeed")
					return nil
				},
			)
		})
	}
}

func TestFindOne_NotFound(t *testing.T) {
	svc := newUsersService(newStubUsersRepo(), nil)

	res, err := svc.FindOne(context.Background(), "u-missing")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	_ = res.Cata(
		func(e *domain.Error) error {
			if e.Kind != domain.KindNotFound {
				t.Fatalf("expected NotFound, got %s", e.Kind)
			}
			return nil
		},
		func(domain.User) error {
			t.Fatalf("missing id must not succeed")
			return nil
		},
	)
}

func TestFindOne_UsesCache(t *testing.T) {
	repo := newStubUsersRepo()
	cache := newStubUserCache()
	svc := newUsersService(repo, cache)

	res, err := svc.Create(context.Background(), validInput("alice"))
	if err != nil || !res.IsOk() {
		t.Fatalf("create failed")
	}
	var id string
	_ = res.Cata(
		func(e *domain.Error) error { return e },
		func(u domain.User) error { id = u.ID; return nil },
	)

	// First lookup populates, second one hits.
	if _, err := svc.FindOne(context.Background(), id); err != nil {
		t.Fatalf("first find: %v", err)
	}
	if _, err := svc.FindOne(context.Background(), id); err != nil {
		t.Fatalf("second find: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected 1 cache hit, got %d", cache.hits)
	}
}

func TestUpdate_PartialPatchKeepsPriorValues(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newUsersService(repo, nil)

	created, err := svc.Create(context.Background(), validInput("alice"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var id string
	_ = created.Cata(
		func(e *domain.Error) error { return e },
		func(u domain.User) error { id = u.ID; return nil },
	)

	email := "new@example.com"
	res, err := svc.Update(context.Background(), id, ports.UpdateUserInput{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	_ = res.Cata(
		func(e *domain.Error) error {
			t.Fatalf("unexpected domain error: %v", e)
			return nil
		},
		func(u domain.User) error {
			if u.Email != email {
				t.Fatalf("email not updated: %s", u.Email)
			}
			if u.Username != "alice" {
				t.Fatalf("username must not change: %s", u.Username)
			}
			if len(u.Roles) != 1 || u.Roles[0] != domain.RoleUser {
				t.Fatalf("roles must be untouched: %v", u.Roles)
			}
			return nil
		},
	)
}

func TestUpdate_MissingIDIsNotFound(t *testing.T) {
	svc := newUsersService(newStubUsersRepo(), nil)

	email := "x@example.com"
	res, err := svc.Update(context.Background(), "u-missing", ports.UpdateUserInput{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.IsOk() {
		t.Fatalf("update of missing id must fail")
	}
}

func TestRemove_SecondCallIsNotFound(t *testing.T) {
	svc := newUsersService(newStubUsersRepo(), nil)

	created, err := svc.Create(context.Background(), validInput("alice"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var id string
	_ = created.Cata(
		func(e *domain.Error) error { return e },
		func(u domain.User) error { id = u.ID; return nil },
	)

	first, err := svc.Remove(context.Background(), id)
	if err != nil {
		t.Fatalf("first remove: %v", err)
	}
	_ = first.Cata(
		func(e *domain.Error) error {
			t.Fatalf("first remove must succeed: %v", e)
			return nil
		},
		func(u domain.User) error {
			if u.Username != "alice" {
				t.Fatalf("removed snapshot mismatch: %s", u.Username)
			}
			return nil
		},
	)

	second, err := svc.Remove(context.Background(), id)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	_ = second.Cata(
		func(e *domain.Error) error {
			if e.Kind != domain.KindNotFound {
				t.Fatalf("expected NotFound on second remove, got %s", e.Kind)
			}
			return nil
		},
		func(domain.User) error {
			t.Fatalf("second remove must not succeed")
			return nil
		},
	)
}

func TestRemove_InvalidatesCache(t *testing.T) {
	cache := newStubUserCache()
	svc := newUsersService(newStubUsersRepo(), cache)

	created, _ := svc.Create(context.Background(), validInput("alice"))
	var id string
	_ = created.Cata(
		func(e *domain.Error) error { return e },
		func(u domain.User) error { id = u.ID; return nil },
	)

	if _, err := svc.FindOne(context.Background(), id); err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, err := svc.Remove(context.Background(), id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != id {
		t.Fatalf("cache not invalidated on remove: %v", cache.invalidated)
	}
}

func TestGetAll_OrderStableAndFiltered(t *testing.T) {
	svc := newUsersService(newStubUsersRepo(), nil)

	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := svc.Create(context.Background(), validInput(name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	admin := validInput("dora")
	admin.Roles = []string{domain.RoleAdmin}
	if _, err := svc.Create(context.Background(), admin); err != nil {
		t.Fatalf("create dora: %v", err)
	}

	all, err := svc.GetAll(context.Background(), ports.ListUsersFilter{})
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 users, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.Before(all[i-1].CreatedAt) {
			t.Fatalf("listing not ordered by creation time")
		}
	}

	admins, err := svc.GetAll(context.Background(), ports.ListUsersFilter{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("filtered get all: %v", err)
	}
	if len(admins) != 1 || admins[0].Username != "dora" {
		t.Fatalf("role filter broken: %+v", admins)
	}
}

func TestFatalRepositoryErrorStaysFatal(t *testing.T) {
	repo := newStubUsersRepo()
	repo.failWith = errors.New("store unavailable")
	svc := newUsersService(repo, nil)

	if _, err := svc.FindOne(context.Background(), "u-1"); err == nil {
		t.Fatalf("infrastructure failure must propagate as a plain error")
	}
	if _, err := svc.GetAll(context.Background(), ports.ListUsersFilter{}); err == nil {
		t.Fatalf("infrastructure failure must propagate from GetAll")
	}
}
