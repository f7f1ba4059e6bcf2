package auth

import (
	"context"
	"errors"
	"testing"

	pkgauth "github.com/mealdash/mealdash/pkg/auth"

	"github.com/mealdash/mealdash/internal/infra/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db)
}

func register(t *testing.T, svc *Service) *Session {
	t.Helper()
	session, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Email: "Asha@Example.com", Phone: "9999999999",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return session
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newTestService(t)
	session := register(t, svc)

	if session.Token == "" {
		t.Fatal("empty token")
	}
	if session.User.Role != pkgauth.RoleCustomer {
		t.Errorf("role = %q, want customer", session.User.Role)
	}
	// Email is normalized to lowercase.
	if session.User.Email != "asha@example.com" {
		t.Errorf("email = %q", session.User.Email)
	}

	claims, err := pkgauth.ParseJWT(session.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != session.User.ID {
		t.Errorf("token userID = %q, want %q", claims.UserID, session.User.ID)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Other", Email: "asha@example.com", Phone: "8888888888",
	})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("err = %v, want ErrDuplicateUser", err)
	}
}

func TestLoginByPhone(t *testing.T) {
	svc := newTestService(t)
	registered := register(t, svc)

	session, err := svc.Login(context.Background(), "9999999999")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.User.ID != registered.User.ID {
		t.Errorf("logged in as %q, want %q", session.User.ID, registered.User.ID)
	}

	if _, err := svc.Login(context.Background(), "0000000000"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestAdminLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "Root", "admin@example.com", "7777777777", "s3cret-pw")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Role != pkgauth.RoleAdmin {
		t.Fatalf("role = %q, want admin", admin.Role)
	}

	session, err := svc.AdminLogin(ctx, "admin@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if session.User.ID != admin.ID {
		t.Errorf("logged in as %q", session.User.ID)
	}

	if _, err := svc.AdminLogin(ctx, "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.AdminLogin(ctx, "nobody@example.com", "s3cret-pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminLoginRejectsCustomers(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	// Customers have no password; admin login must not accept them.
	_, err := svc.AdminLogin(context.Background(), "asha@example.com", "anything")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	session := register(t, svc)
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, session.User.ID, UpdateProfileInput{Name: "Asha K"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Asha K" {
		t.Errorf("name = %q", updated.Name)
	}
	// Untouched fields survive.
	if updated.Email != "asha@example.com" {
		t.Errorf("email = %q", updated.Email)
	}
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	first := register(t, svc)
	ctx := context.Background()

	second, err := svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi@example.com", Phone: "8888888888"})
	if err != nil {
		t.Fatalf("register second: %v", err)
	}

	_, err = svc.UpdateProfile(ctx, second.User.ID, UpdateProfileInput{Email: first.User.Email})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("err = %v, want ErrDuplicateUser", err)
	}
}
