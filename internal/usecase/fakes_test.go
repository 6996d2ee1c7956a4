package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/data/repository"

	"github.com/google/uuid"
)

// ---- fake notifier ----

type otpCall struct {
	email string
	otp   string
}

type submittedCall struct {
	author    *entity.User
	admin     *entity.User
	complaint *entity.Complaint
}

type statusCall struct {
	admin        *entity.User
	complaint    *entity.ComplaintWithAuthor
	notifyAuthor bool
}

type fakeNotifier struct {
	mu        sync.Mutex
	signups   []otpCall
	logins    []otpCall
	submitted []submittedCall
	statuses  []statusCall
}

func (f *fakeNotifier) SignupOTP(email, otp string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signups = append(f.signups, otpCall{email: email, otp: otp})
}

func (f *fakeNotifier) LoginOTP(email, otp string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, otpCall{email: email, otp: otp})
}

func (f *fakeNotifier) ComplaintSubmitted(author, admin *entity.User, complaint *entity.Complaint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, submittedCall{author: author, admin: admin, complaint: complaint})
}

func (f *fakeNotifier) StatusChanged(admin *entity.User, complaint *entity.ComplaintWithAuthor, notifyAuthor bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, statusCall{admin: admin, complaint: complaint, notifyAuthor: notifyAuthor})
}

// ---- fake user repository ----

// fakeUserRepo stores copies so a mutation only becomes visible through an
// explicit Update, the way a real store behaves.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	createErr error
	findErr   error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.VerificationOTP != nil {
		otp := *u.VerificationOTP
		c.VerificationOTP = &otp
	}
	if u.OTPExpiresAt != nil {
		at := *u.OTPExpiresAt
		c.OTPExpiresAt = &at
	}
	return &c
}

func (f *fakeUserRepo) seed(u *entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = cloneUser(u)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindFirstAdmin(ctx context.Context) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var oldest *entity.User
	for _, u := range f.users {
		if u.Role != entity.RoleAdmin {
			continue
		}
		if oldest == nil || u.CreatedAt.Before(oldest.CreatedAt) {
			oldest = u
		}
	}
	if oldest == nil {
		return nil, nil
	}
	return cloneUser(oldest), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("no rows updated")
	}
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUserRepo) stored(id uuid.UUID) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return cloneUser(u)
	}
	return nil
}

// ---- fake complaint repository ----

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints map[uuid.UUID]*entity.Complaint
	authors    *fakeUserRepo

	createErr error
	findErr   error

	lastFilter *repository.ComplaintFilter
}

func newFakeComplaintRepo(authors *fakeUserRepo) *fakeComplaintRepo {
	return &fakeComplaintRepo{
		complaints: make(map[uuid.UUID]*entity.Complaint),
		authors:    authors,
	}
}

func (f *fakeComplaintRepo) withAuthor(c *entity.Complaint) *entity.ComplaintWithAuthor {
	joined := &entity.ComplaintWithAuthor{Complaint: *c}
	if author := f.authors.stored(c.UserID); author != nil {
		joined.AuthorUsername = author.Username
		joined.AuthorEmail = author.Email
	}
	return joined
}

func (f *fakeComplaintRepo) Create(ctx context.Context, complaint *entity.Complaint) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *complaint
	f.complaints[complaint.ID] = &c
	return nil
}

func (f *fakeComplaintRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ComplaintWithAuthor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	c, ok := f.complaints[id]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return f.withAuthor(c), nil
}

func (f *fakeComplaintRepo) FindAll(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.ComplaintWithAuthor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	f.lastFilter = &filter
	all := make([]*entity.Complaint, 0, len(f.complaints))
	for _, c := range f.complaints {
		all = append(all, c)
	}
	f.mu.Unlock()

	var result []*entity.ComplaintWithAuthor
	for _, c := range all {
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && c.Priority != *filter.Priority {
			continue
		}
		result = append(result, f.withAuthor(c))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeComplaintRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ComplaintStatus) (*entity.ComplaintWithAuthor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	c, ok := f.complaints[id]
	if !ok {
		f.mu.Unlock()
		return nil, nil
	}
	c.Status = status
	snapshot := *c
	f.mu.Unlock()
	return f.withAuthor(&snapshot), nil
}

func (f *fakeComplaintRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.complaints[id]; !ok {
		return false, nil
	}
	delete(f.complaints, id)
	return true, nil
}

func (f *fakeComplaintRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.complaints)
}
