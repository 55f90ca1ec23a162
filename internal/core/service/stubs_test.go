package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openboard/tracker/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, int64, error) {
	var all []domain.User
	for _, u := range r.byID {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return pageSlice(all, limit, offset), int64(len(all)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProjectRepo struct {
	byID         map[int64]*domain.Project
	contributors *stubContributorRepo // Create inserts the author membership here
	nextID       int64
}

func newStubProjectRepo(contributors *stubContributorRepo) *stubProjectRepo {
	return &stubProjectRepo{
		byID:         make(map[int64]*domain.Project),
		contributors: contributors,
		nextID:       1,
	}
}

func (r *stubProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	clone := *p
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone

	// Mirrors the transactional insert the real repository performs.
	if _, err := r.contributors.Add(ctx, &domain.Contributor{
		ProjectID: clone.ID,
		UserID:    clone.AuthorID,
		CreatedAt: clone.CreatedAt,
	}); err != nil {
		return nil, err
	}
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Project, int64, error) {
	var matched []domain.Project
	for _, p := range r.byID {
		member, _ := r.contributors.IsMember(ctx, p.ID, userID)
		if member {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return pageSlice(matched, limit, offset), int64(len(matched)), nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubContributorRepo struct {
	byID   map[int64]*domain.Contributor
	nextID int64
}

func newStubContributorRepo() *stubContributorRepo {
	return &stubContributorRepo{byID: make(map[int64]*domain.Contributor), nextID: 1}
}

func (r *stubContributorRepo) Add(_ context.Context, c *domain.Contributor) (*domain.Contributor, error) {
	for _, existing := range r.byID {
		if existing.ProjectID == c.ProjectID && existing.UserID == c.UserID {
			return nil, domain.ErrDuplicateContributor
		}
	}
	clone := *c
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubContributorRepo) FindByID(_ context.Context, projectID, contributorID int64) (*domain.Contributor, error) {
	c, ok := r.byID[contributorID]
	if !ok || c.ProjectID != projectID {
		return nil, domain.ErrContributorNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubContributorRepo) ListByProject(_ context.Context, projectID int64, limit, offset int) ([]domain.Contributor, int64, error) {
	var matched []domain.Contributor
	for _, c := range r.byID {
		if c.ProjectID == projectID {
			matched = append(matched, *c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return pageSlice(matched, limit, offset), int64(len(matched)), nil
}

func (r *stubContributorRepo) IsMember(_ context.Context, projectID, userID int64) (bool, error) {
	for _, c := range r.byID {
		if c.ProjectID == projectID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubContributorRepo) Remove(_ context.Context, projectID, contributorID int64) error {
	c, ok := r.byID[contributorID]
	if !ok || c.ProjectID != projectID {
		return domain.ErrContributorNotFound
	}
	delete(r.byID, contributorID)
	return nil
}

type stubIssueRepo struct {
	byID   map[int64]*domain.Issue
	nextID int64
}

func newStubIssueRepo() *stubIssueRepo {
	return &stubIssueRepo{byID: make(map[int64]*domain.Issue), nextID: 1}
}

func (r *stubIssueRepo) Create(_ context.Context, issue *domain.Issue) (*domain.Issue, error) {
	clone := *issue
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubIssueRepo) FindByID(_ context.Context, projectID, issueID int64) (*domain.Issue, error) {
	issue, ok := r.byID[issueID]
	if !ok || issue.ProjectID != projectID {
		return nil, domain.ErrIssueNotFound
	}
	clone := *issue
	return &clone, nil
}

func (r *stubIssueRepo) ListByProject(_ context.Context, projectID int64, limit, offset int) ([]domain.Issue, int64, error) {
	var matched []domain.Issue
	for _, issue := range r.byID {
		if issue.ProjectID == projectID {
			matched = append(matched, *issue)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return pageSlice(matched, limit, offset), int64(len(matched)), nil
}

func (r *stubIssueRepo) Update(_ context.Context, issue *domain.Issue) error {
	if _, ok := r.byID[issue.ID]; !ok {
		return domain.ErrIssueNotFound
	}
	clone := *issue
	r.byID[issue.ID] = &clone
	return nil
}

func (r *stubIssueRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrIssueNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubCommentRepo struct {
	byID map[uuid.UUID]*domain.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byID: make(map[uuid.UUID]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	clone := *c
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, issueID int64, commentID uuid.UUID) (*domain.Comment, error) {
	c, ok := r.byID[commentID]
	if !ok || c.IssueID != issueID {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) ListByIssue(_ context.Context, issueID int64, limit, offset int) ([]domain.Comment, int64, error) {
	var matched []domain.Comment
	for _, c := range r.byID {
		if c.IssueID == issueID {
			matched = append(matched, *c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return pageSlice(matched, limit, offset), int64(len(matched)), nil
}

func (r *stubCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubTokenStore struct {
	byToken map[string]int64
	saveErr error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{byToken: make(map[string]int64)}
}

func (s *stubTokenStore) SaveRefresh(_ context.Context, token string, userID int64, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.byToken[token] = userID
	return nil
}

func (s *stubTokenStore) ResolveRefresh(_ context.Context, token string) (int64, error) {
	userID, ok := s.byToken[token]
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return userID, nil
}

func (s *stubTokenStore) RevokeRefresh(_ context.Context, token string) error {
	delete(s.byToken, token)
	return nil
}

func pageSlice[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// ---------------------------------------------------------------------------
// Fixture helpers
// ---------------------------------------------------------------------------

// fixtures bundles the stub repositories with the services under test so a
// scenario can mix user, project, issue and comment operations.
type fixtures struct {
	users        *stubUserRepo
	projects     *stubProjectRepo
	contributors *stubContributorRepo
	issues       *stubIssueRepo
	comments     *stubCommentRepo

	userSvc        *UserService
	projectSvc     *ProjectService
	contributorSvc *ContributorService
	issueSvc       *IssueService
	commentSvc     *CommentService
}

func newFixtures() *fixtures {
	users := newStubUserRepo()
	contributors := newStubContributorRepo()
	projects := newStubProjectRepo(contributors)
	issues := newStubIssueRepo()
	comments := newStubCommentRepo()

	return &fixtures{
		users:          users,
		projects:       projects,
		contributors:   contributors,
		issues:         issues,
		comments:       comments,
		userSvc:        NewUserService(users, discardLogger),
		projectSvc:     NewProjectService(projects, contributors, discardLogger),
		contributorSvc: NewContributorService(projects, contributors, users, discardLogger),
		issueSvc:       NewIssueService(projects, contributors, issues, discardLogger),
		commentSvc:     NewCommentService(projects, contributors, issues, comments, discardLogger),
	}
}

// seedUser inserts a user directly into the stub store.
func (f *fixtures) seedUser(username string) *domain.User {
	u, err := f.users.Create(context.Background(), &domain.User{
		Username:  username,
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		panic(err)
	}
	return u
}
