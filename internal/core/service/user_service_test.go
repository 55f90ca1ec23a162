package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

func signupInput(username string, birthDate time.Time) ports.SignupInput {
	return ports.SignupInput{
		Username:  username,
		Password:  "correct horse battery staple",
		BirthDate: birthDate,
	}
}

func birthdayYearsAgo(years int) time.Time {
	return time.Now().UTC().AddDate(-years, 0, 0)
}

func TestUserService_Signup_HashesPassword(t *testing.T) {
	f := newFixtures()

	user, err := f.userSvc.Signup(context.Background(), signupInput("alice", birthdayYearsAgo(30)))
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.PasswordHash == "correct horse battery staple" {
		t.Fatal("password must never be stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery staple")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestUserService_Signup_AgeGate(t *testing.T) {
	f := newFixtures()

	// 14 years old: rejected.
	_, err := f.userSvc.Signup(context.Background(), signupInput("kid", birthdayYearsAgo(14)))
	if !errors.Is(err, domain.ErrUserTooYoung) {
		t.Fatalf("expected ErrUserTooYoung at 14, got %v", err)
	}

	// Exactly 15: accepted.
	if _, err := f.userSvc.Signup(context.Background(), signupInput("teen", birthdayYearsAgo(15))); err != nil {
		t.Fatalf("signup at exactly 15 must succeed, got %v", err)
	}
}

func TestUserService_Signup_DuplicateUsername(t *testing.T) {
	f := newFixtures()

	if _, err := f.userSvc.Signup(context.Background(), signupInput("alice", birthdayYearsAgo(30))); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := f.userSvc.Signup(context.Background(), signupInput("alice", birthdayYearsAgo(25)))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_SelfOnly(t *testing.T) {
	f := newFixtures()
	alice := f.seedUser("alice")
	bob := f.seedUser("bob")

	name := "Robert"
	_, err := f.userSvc.Update(context.Background(), alice.ID, bob.ID, ports.UpdateUserInput{FirstName: &name})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden updating another account, got %v", err)
	}

	updated, err := f.userSvc.Update(context.Background(), bob.ID, bob.ID, ports.UpdateUserInput{FirstName: &name})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated.FirstName != "Robert" {
		t.Errorf("first name not updated: %q", updated.FirstName)
	}
}

func TestUserService_Update_BirthDateRecheck(t *testing.T) {
	f := newFixtures()
	alice := f.seedUser("alice")

	tooYoung := birthdayYearsAgo(10)
	_, err := f.userSvc.Update(context.Background(), alice.ID, alice.ID, ports.UpdateUserInput{BirthDate: &tooYoung})
	if !errors.Is(err, domain.ErrUserTooYoung) {
		t.Fatalf("expected ErrUserTooYoung, got %v", err)
	}
}

func TestUserService_Update_UnknownUser(t *testing.T) {
	f := newFixtures()
	alice := f.seedUser("alice")

	name := "x"
	// Resolution happens before the ownership check, so a stranger probing
	// a nonexistent id learns nothing beyond not-found.
	_, err := f.userSvc.Update(context.Background(), alice.ID, 999, ports.UpdateUserInput{FirstName: &name})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_SelfOnly(t *testing.T) {
	f := newFixtures()
	alice := f.seedUser("alice")
	bob := f.seedUser("bob")

	if err := f.userSvc.Delete(context.Background(), alice.ID, bob.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden deleting another account, got %v", err)
	}
	if err := f.userSvc.Delete(context.Background(), bob.ID, bob.ID); err != nil {
		t.Fatalf("self delete failed: %v", err)
	}
	if _, err := f.users.FindByID(context.Background(), bob.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Error("account must be gone after delete")
	}
}

func TestUserService_List_Paginates(t *testing.T) {
	f := newFixtures()
	for _, name := range []string{"a", "b", "c"} {
		f.seedUser(name)
	}

	users, total, err := f.userSvc.List(context.Background(), ports.Page{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user on the last page, got %d", len(users))
	}
}
