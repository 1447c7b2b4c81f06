// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/session"
)

type fakeUsers struct {
	byEmail map[string]*UserInfo
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*UserInfo)}
}

func (f *fakeUsers) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUsers) Create(
	_ context.Context,
	firstName, lastName, email, passwordHash, avatar string,
) (*UserInfo, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	f.nextID++
	u := &UserInfo{
		ID:           fmt.Sprintf("u-%d", f.nextID),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       avatar,
	}
	f.byEmail[email] = u
	return u, nil
}

type fakeIssuer struct {
	issued  []session.Identity
	revoked []string
}

func (f *fakeIssuer) Issue(
	_ context.Context,
	identity session.Identity,
) (session.Handle, error) {
	f.issued = append(f.issued, identity)
	return session.Handle{
		Value:  "handle-" + identity.UserID,
		Role:   identity.Role,
		Bearer: true,
	}, nil
}

func (f *fakeIssuer) Resolve(
	_ context.Context,
	_ string,
) (session.Identity, error) {
	return session.Identity{}, session.ErrInvalid
}

func (f *fakeIssuer) Revoke(_ context.Context, value string) error {
	f.revoked = append(f.revoked, value)
	return nil
}

func (f *fakeIssuer) BindCart(_ context.Context, _, _ string) error { return nil }

func (f *fakeIssuer) Extract(_ *http.Request) string { return "" }

func (f *fakeIssuer) Attach(_ http.ResponseWriter, _ session.Handle) {}

func (f *fakeIssuer) Clear(_ http.ResponseWriter) {}

func newTestService() (*Service, *fakeUsers, *fakeIssuer) {
	users := newFakeUsers()
	issuer := &fakeIssuer{}
	return NewService(users, issuer), users, issuer
}

func TestRegister(t *testing.T) {
	svc, users, _ := newTestService()

	resp, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "A@X.com",
		Password:  "secret-password",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if resp.User.Email != "a@x.com" {
		t.Errorf("email should be lowercased, got %q", resp.User.Email)
	}
	if resp.Token != "" {
		t.Error("registration must not issue a session")
	}

	stored := users.byEmail["a@x.com"]
	if stored == nil {
		t.Fatal("user was not persisted")
	}
	if stored.PasswordHash == "secret-password" {
		t.Error("password must be stored hashed, not in plaintext")
	}
	if !strings.Contains(stored.Avatar, "gravatar.com/avatar/") {
		t.Errorf("avatar should be a gravatar URL, got %q", stored.Avatar)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := RegisterRequest{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "a@x.com",
		Password:  "secret-password",
	}

	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate email should fail ErrEmailExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users, issuer := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "a@x.com",
		Password:  "secret1-long-enough",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	resp, handle, err := svc.Login(ctx, LoginRequest{
		Email:    "a@x.com",
		Password: "secret1-long-enough",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if handle.Value == "" {
		t.Error("login should issue a session handle")
	}
	if resp.Token != handle.Token() {
		t.Error("response token should match the issued handle")
	}

	if len(issuer.issued) != 1 {
		t.Fatalf("expected 1 issued identity, got %d", len(issuer.issued))
	}
	if issuer.issued[0].Role != session.RoleUser {
		t.Errorf("plain account should get the user role, got %q",
			issuer.issued[0].Role)
	}

	// Admin accounts get the admin role at issue time.
	users.byEmail["a@x.com"].IsAdmin = true
	if _, _, err := svc.Login(ctx, LoginRequest{
		Email:    "a@x.com",
		Password: "secret1-long-enough",
	}); err != nil {
		t.Fatalf("admin Login returned error: %v", err)
	}
	if issuer.issued[1].Role != session.RoleAdmin {
		t.Errorf("admin account should get the admin role, got %q",
			issuer.issued[1].Role)
	}
}

// A missing account and a wrong password must be indistinguishable.
func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "a@x.com",
		Password:  "secret1-long-enough",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, errWrongPassword := svc.Login(ctx, LoginRequest{
		Email:    "a@x.com",
		Password: "wrong-password",
	})
	_, _, errUnknownEmail := svc.Login(ctx, LoginRequest{
		Email:    "nobody@x.com",
		Password: "whatever-password",
	})

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", errUnknownEmail)
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Error("both login failures must produce identical errors")
	}
}

func TestLogoutRevokes(t *testing.T) {
	svc, _, issuer := newTestService()

	if err := svc.Logout(context.Background(), "handle-u-1"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if len(issuer.revoked) != 1 || issuer.revoked[0] != "handle-u-1" {
		t.Errorf("expected handle-u-1 revoked, got %v", issuer.revoked)
	}
}

func TestGravatarURL(t *testing.T) {
	url := GravatarURL("A@X.com ")

	// md5("a@x.com")
	want := "https://www.gravatar.com/avatar/" +
		"743173788aa9166801df2e18f0e7ff24?s=300&r=pg&d=mm"
	if url != want {
		t.Errorf("GravatarURL = %q, want %q", url, want)
	}
}
