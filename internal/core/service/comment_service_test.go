package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// commentScene builds a project with one issue and returns the pieces the
// comment tests need.
func commentScene(t *testing.T, f *fixtures) (author, member *domain.User, project *domain.Project, issue *domain.Issue) {
	t.Helper()
	author = f.seedUser("alice")
	member = f.seedUser("bob")
	project = createProject(t, f, author.ID, "api")
	if _, err := f.contributorSvc.Add(context.Background(), author.ID, project.ID, member.ID); err != nil {
		t.Fatalf("adding member: %v", err)
	}
	var err error
	issue, err = f.issueSvc.Create(context.Background(), author.ID, project.ID, minimalIssueInput())
	if err != nil {
		t.Fatalf("creating issue: %v", err)
	}
	return author, member, project, issue
}

func TestCommentService_Create_OpaqueID(t *testing.T) {
	f := newFixtures()
	_, member, project, issue := commentScene(t, f)

	comment, err := f.commentSvc.Create(context.Background(), member.ID, project.ID, issue.ID, "ack, looking into it")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if comment.ID == uuid.Nil {
		t.Error("comment id must be a random UUID")
	}
	if comment.AuthorID != member.ID {
		t.Errorf("comment author must be the caller, got %d", comment.AuthorID)
	}

	second, err := f.commentSvc.Create(context.Background(), member.ID, project.ID, issue.ID, "second")
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.ID == comment.ID {
		t.Error("comment ids must not repeat")
	}
}

func TestCommentService_Create_OutsiderForbidden(t *testing.T) {
	f := newFixtures()
	_, _, project, issue := commentScene(t, f)
	outsider := f.seedUser("oscar")

	_, err := f.commentSvc.Create(context.Background(), outsider.ID, project.ID, issue.ID, "hi")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCommentService_Update_AuthorOnly(t *testing.T) {
	f := newFixtures()
	author, member, project, issue := commentScene(t, f)

	comment, err := f.commentSvc.Create(context.Background(), member.ID, project.ID, issue.ID, "draft")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.commentSvc.Update(context.Background(), author.ID, project.ID, issue.ID, comment.ID, "hijacked")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}

	updated, err := f.commentSvc.Update(context.Background(), member.ID, project.ID, issue.ID, comment.ID, "final")
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Description != "final" {
		t.Errorf("description not updated: %q", updated.Description)
	}
}

func TestCommentService_Delete_AuthorOnly(t *testing.T) {
	f := newFixtures()
	author, member, project, issue := commentScene(t, f)

	comment, err := f.commentSvc.Create(context.Background(), member.ID, project.ID, issue.ID, "tmp")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.commentSvc.Delete(context.Background(), author.ID, project.ID, issue.ID, comment.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author delete, got %v", err)
	}
	if err := f.commentSvc.Delete(context.Background(), member.ID, project.ID, issue.ID, comment.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
}

func TestCommentService_Get_WrongIssueIsNotFound(t *testing.T) {
	f := newFixtures()
	author, _, project, issue := commentScene(t, f)
	other, err := f.issueSvc.Create(context.Background(), author.ID, project.ID, minimalIssueInput())
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}

	comment, err := f.commentSvc.Create(context.Background(), author.ID, project.ID, issue.ID, "here")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.commentSvc.Get(context.Background(), author.ID, project.ID, other.ID, comment.ID)
	if !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound for mismatched parent, got %v", err)
	}
}

func TestCommentService_List_RequiresMembership(t *testing.T) {
	f := newFixtures()
	author, _, project, issue := commentScene(t, f)
	outsider := f.seedUser("oscar")

	if _, err := f.commentSvc.Create(context.Background(), author.ID, project.ID, issue.ID, "one"); err != nil {
		t.Fatalf("create: %v", err)
	}

	comments, total, err := f.commentSvc.List(context.Background(), author.ID, project.ID, issue.ID, ports.Page{})
	if err != nil {
		t.Fatalf("member list failed: %v", err)
	}
	if total != 1 || len(comments) != 1 {
		t.Errorf("expected 1 comment, got total=%d len=%d", total, len(comments))
	}

	_, _, err = f.commentSvc.List(context.Background(), outsider.ID, project.ID, issue.ID, ports.Page{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for outsider, got %v", err)
	}
}
