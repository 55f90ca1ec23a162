package service

import (
	"context"
	"errors"
	"testing"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

func TestContributorService_Add_ByAuthor(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	bob := f.seedUser("bob")
	project := createProject(t, f, author.ID, "api")

	contributor, err := f.contributorSvc.Add(context.Background(), author.ID, project.ID, bob.ID)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if contributor.UserID != bob.ID || contributor.ProjectID != project.ID {
		t.Errorf("contributor record wrong: %+v", contributor)
	}

	member, _ := f.contributors.IsMember(context.Background(), project.ID, bob.ID)
	if !member {
		t.Error("bob must be a member after being added")
	}
}

func TestContributorService_Add_MemberCannot(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	bob := f.seedUser("bob")
	carol := f.seedUser("carol")
	project := createProject(t, f, author.ID, "api")
	if _, err := f.contributorSvc.Add(context.Background(), author.ID, project.ID, bob.ID); err != nil {
		t.Fatalf("seeding bob: %v", err)
	}

	_, err := f.contributorSvc.Add(context.Background(), bob.ID, project.ID, carol.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author add, got %v", err)
	}
}

func TestContributorService_Add_UnknownUser(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	project := createProject(t, f, author.ID, "api")

	_, err := f.contributorSvc.Add(context.Background(), author.ID, project.ID, 999)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestContributorService_Add_Duplicate(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	bob := f.seedUser("bob")
	project := createProject(t, f, author.ID, "api")
	if _, err := f.contributorSvc.Add(context.Background(), author.ID, project.ID, bob.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := f.contributorSvc.Add(context.Background(), author.ID, project.ID, bob.ID)
	if !errors.Is(err, domain.ErrDuplicateContributor) {
		t.Fatalf("expected ErrDuplicateContributor, got %v", err)
	}
}

func TestContributorService_Remove(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	bob := f.seedUser("bob")
	project := createProject(t, f, author.ID, "api")
	contributor, err := f.contributorSvc.Add(context.Background(), author.ID, project.ID, bob.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := f.contributorSvc.Remove(context.Background(), author.ID, project.ID, contributor.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	member, _ := f.contributors.IsMember(context.Background(), project.ID, bob.ID)
	if member {
		t.Error("bob must no longer be a member")
	}
}

func TestContributorService_Remove_AuthorMembershipProtected(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	project := createProject(t, f, author.ID, "api")

	contribs, _, _ := f.contributors.ListByProject(context.Background(), project.ID, 10, 0)
	if len(contribs) != 1 {
		t.Fatalf("expected the author membership, got %d records", len(contribs))
	}

	err := f.contributorSvc.Remove(context.Background(), author.ID, project.ID, contribs[0].ID)
	if !errors.Is(err, domain.ErrAuthorNotRemovable) {
		t.Fatalf("expected ErrAuthorNotRemovable, got %v", err)
	}
}

func TestContributorService_Remove_WrongProject(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	bob := f.seedUser("bob")
	first := createProject(t, f, author.ID, "first")
	second := createProject(t, f, author.ID, "second")
	contributor, err := f.contributorSvc.Add(context.Background(), author.ID, first.ID, bob.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Addressing a contributor through the wrong parent must read as
	// not-found, never as a hit on the other project.
	err = f.contributorSvc.Remove(context.Background(), author.ID, second.ID, contributor.ID)
	if !errors.Is(err, domain.ErrContributorNotFound) {
		t.Fatalf("expected ErrContributorNotFound, got %v", err)
	}
}

func TestContributorService_List_RequiresMembership(t *testing.T) {
	f := newFixtures()
	author := f.seedUser("alice")
	outsider := f.seedUser("oscar")
	project := createProject(t, f, author.ID, "api")

	if _, _, err := f.contributorSvc.List(context.Background(), author.ID, project.ID, ports.Page{}); err != nil {
		t.Errorf("member list failed: %v", err)
	}
	_, _, err := f.contributorSvc.List(context.Background(), outsider.ID, project.ID, ports.Page{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for outsider, got %v", err)
	}
}
