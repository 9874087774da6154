package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upeohq/backoffice-backend/internal/mail"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/repository"
)

// In-memory stores backing the service tests.

type fakeUserStore struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.New()
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, id, roleID uuid.UUID) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RoleID = roleID
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type fakeRoleStore struct {
	roles map[string]*model.RoleWithPermissions
}

func newFakeRoleStore(roles ...*model.RoleWithPermissions) *fakeRoleStore {
	s := &fakeRoleStore{roles: map[string]*model.RoleWithPermissions{}}
	for _, r := range roles {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		s.roles[r.Name] = r
	}
	return s
}

func (s *fakeRoleStore) GetByID(_ context.Context, id uuid.UUID) (*model.RoleWithPermissions, error) {
	for _, r := range s.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeRoleStore) GetByName(_ context.Context, name string) (*model.RoleWithPermissions, error) {
	if r, ok := s.roles[name]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

type fakeRefreshStore struct {
	tokens map[string]*model.RefreshToken
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{tokens: map[string]*model.RefreshToken{}}
}

func (s *fakeRefreshStore) Create(_ context.Context, t *model.RefreshToken) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	copied := *t
	s.tokens[t.Token] = &copied
	return nil
}

func (s *fakeRefreshStore) FindActive(_ context.Context, token string, userID uuid.UUID) (*model.RefreshToken, error) {
	t, ok := s.tokens[token]
	if !ok || t.UserID != userID || t.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *fakeRefreshStore) Invalidate(_ context.Context, id uuid.UUID) error {
	for _, t := range s.tokens {
		if t.ID == id {
			t.ExpiresAt = time.Now().Add(-time.Second)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeRefreshStore) InvalidateByValue(_ context.Context, token string, userID uuid.UUID) error {
	t, ok := s.tokens[token]
	if !ok || t.UserID != userID || t.ExpiresAt.Before(time.Now()) {
		return repository.ErrNotFound
	}
	t.ExpiresAt = time.Now().Add(-time.Second)
	return nil
}

type fakeInviteStore struct {
	invites map[string]*model.Invite
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{invites: map[string]*model.Invite{}}
}

func (s *fakeInviteStore) Create(_ context.Context, inv *model.Invite) error {
	inv.ID = uuid.New()
	copied := *inv
	s.invites[inv.Token] = &copied
	return nil
}

func (s *fakeInviteStore) FindPendingByToken(_ context.Context, token string) (*model.Invite, error) {
	inv, ok := s.invites[token]
	if !ok || inv.Status != model.InviteStatusPending {
		return nil, repository.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (s *fakeInviteStore) MarkAccepted(_ context.Context, id uuid.UUID) error {
	for _, inv := range s.invites {
		if inv.ID == id && inv.Status == model.InviteStatusPending {
			inv.Status = model.InviteStatusAccepted
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeResetStore struct {
	tokens map[string]*model.PasswordResetToken
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{tokens: map[string]*model.PasswordResetToken{}}
}

func (s *fakeResetStore) Create(_ context.Context, t *model.PasswordResetToken) error {
	t.ID = uuid.New()
	copied := *t
	s.tokens[t.Token] = &copied
	return nil
}

func (s *fakeResetStore) FindActiveByToken(_ context.Context, token string) (*model.PasswordResetToken, error) {
	t, ok := s.tokens[token]
	if !ok || t.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *fakeResetStore) Invalidate(_ context.Context, id uuid.UUID) error {
	for _, t := range s.tokens {
		if t.ID == id {
			t.ExpiresAt = time.Now().Add(-time.Second)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeOutbox struct {
	sent []*mail.Message
}

func (f *fakeOutbox) Enqueue(_ context.Context, msg *mail.Message) {
	f.sent = append(f.sent, msg)
}

type fakeProjectStore struct {
	projects    map[uuid.UUID]*model.Project
	assignments map[uuid.UUID]*model.Assignment
}

func newFakeProjectStore(projects ...*model.Project) *fakeProjectStore {
	s := &fakeProjectStore{
		projects:    map[uuid.UUID]*model.Project{},
		assignments: map[uuid.UUID]*model.Assignment{},
	}
	for _, p := range projects {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		s.projects[p.ID] = p
	}
	return s
}

func (s *fakeProjectStore) Create(_ context.Context, p *model.Project) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	s.projects[p.ID] = &copied
	return nil
}

func (s *fakeProjectStore) GetByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	if p, ok := s.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeProjectStore) ListAll(_ context.Context) ([]*model.Project, error) {
	out := []*model.Project{}
	for _, p := range s.projects {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeProjectStore) ListAssignedTo(_ context.Context, userID uuid.UUID) ([]*model.Project, error) {
	out := []*model.Project{}
	for _, a := range s.assignments {
		if a.UserID == userID {
			if p, ok := s.projects[a.ProjectID]; ok {
				copied := *p
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (s *fakeProjectStore) Update(_ context.Context, id uuid.UUID, req *model.UpdateProjectRequest) error {
	p, ok := s.projects[id]
	if !ok {
		return repository.ErrNotFound
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	return nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *fakeProjectStore) CreateAssignment(_ context.Context, a *model.Assignment) error {
	for _, existing := range s.assignments {
		if existing.UserID == a.UserID && existing.ProjectID == a.ProjectID {
			return repository.ErrDuplicateAssignment
		}
	}
	a.ID = uuid.New()
	a.AssignedAt = time.Now()
	copied := *a
	s.assignments[a.ID] = &copied
	return nil
}

func (s *fakeProjectStore) GetAssignment(_ context.Context, userID, projectID uuid.UUID) (*model.Assignment, error) {
	for _, a := range s.assignments {
		if a.UserID == userID && a.ProjectID == projectID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeProjectStore) DeleteAssignment(_ context.Context, userID, projectID uuid.UUID) error {
	for id, a := range s.assignments {
		if a.UserID == userID && a.ProjectID == projectID {
			delete(s.assignments, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeProjectStore) ListAssignedUsers(_ context.Context, _ uuid.UUID) ([]*model.AssignedUser, error) {
	return []*model.AssignedUser{}, nil
}

type fakeLeadStore struct {
	leads map[uuid.UUID]*model.Lead
}

func newFakeLeadStore(leads ...*model.Lead) *fakeLeadStore {
	s := &fakeLeadStore{leads: map[uuid.UUID]*model.Lead{}}
	for _, l := range leads {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		if l.Status == "" {
			l.Status = model.LeadStatusNew
		}
		s.leads[l.ID] = l
	}
	return s
}

func (s *fakeLeadStore) Create(_ context.Context, l *model.Lead) error {
	for _, existing := range s.leads {
		if existing.Email == l.Email {
			return repository.ErrDuplicateEmail
		}
	}
	l.ID = uuid.New()
	l.Status = model.LeadStatusNew
	copied := *l
	s.leads[l.ID] = &copied
	return nil
}

func (s *fakeLeadStore) GetByID(_ context.Context, id uuid.UUID) (*model.Lead, error) {
	if l, ok := s.leads[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeLeadStore) List(_ context.Context) ([]*model.Lead, error) {
	out := []*model.Lead{}
	for _, l := range s.leads {
		copied := *l
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeLeadStore) Search(_ context.Context, _ *model.SearchLeadsRequest) ([]*model.Lead, error) {
	return s.List(context.Background())
}

func (s *fakeLeadStore) Update(_ context.Context, id uuid.UUID, req *model.UpdateLeadRequest) error {
	l, ok := s.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	if req.Status != "" {
		l.Status = req.Status
	}
	return nil
}

func (s *fakeLeadStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.LeadStatus) error {
	l, ok := s.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.Status = status
	return nil
}

func (s *fakeLeadStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.leads, id)
	return nil
}

type fakeCustomerStore struct {
	customers map[uuid.UUID]*model.Customer
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: map[uuid.UUID]*model.Customer{}}
}

func (s *fakeCustomerStore) Create(_ context.Context, c *model.Customer) error {
	c.ID = uuid.New()
	c.Status = model.CustomerStatusActive
	copied := *c
	s.customers[c.ID] = &copied
	return nil
}

func (s *fakeCustomerStore) GetByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	if c, ok := s.customers[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCustomerStore) List(_ context.Context) ([]*model.Customer, error) {
	out := []*model.Customer{}
	for _, c := range s.customers {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeCustomerStore) Search(_ context.Context, _ *model.SearchCustomersRequest) ([]*model.Customer, error) {
	return s.List(context.Background())
}

func (s *fakeCustomerStore) Update(_ context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) error {
	c, ok := s.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	if req.Status != "" {
		c.Status = req.Status
	}
	return nil
}

func (s *fakeCustomerStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

type fakeConversionStore struct {
	histories []*model.ConversionHistory
}

func (s *fakeConversionStore) Create(_ context.Context, h *model.ConversionHistory) error {
	h.ID = uuid.New()
	copied := *h
	s.histories = append(s.histories, &copied)
	return nil
}

func (s *fakeConversionStore) GetByID(_ context.Context, id uuid.UUID) (*model.ConversionHistory, error) {
	for _, h := range s.histories {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeConversionStore) List(_ context.Context) ([]*model.ConversionHistory, error) {
	return s.histories, nil
}

func (s *fakeConversionStore) ListByLead(_ context.Context, leadID uuid.UUID) ([]*model.ConversionHistory, error) {
	out := []*model.ConversionHistory{}
	for _, h := range s.histories {
		if h.LeadID == leadID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *fakeConversionStore) CountByLead(_ context.Context, leadID uuid.UUID) (int, error) {
	count := 0
	for _, h := range s.histories {
		if h.LeadID == leadID {
			count++
		}
	}
	return count, nil
}
