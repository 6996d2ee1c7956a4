package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/data/repository"
	"complaint-desk/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type complaintFixture struct {
	users      *fakeUserRepo
	complaints *fakeComplaintRepo
	notifier   *fakeNotifier
	svc        ComplaintService
}

func newComplaintFixture(t *testing.T) *complaintFixture {
	t.Helper()

	users := newFakeUserRepo()
	complaints := newFakeComplaintRepo(users)
	notifier := &fakeNotifier{}
	repo := &repository.Repository{User: users, Complaint: complaints}

	return &complaintFixture{
		users:      users,
		complaints: complaints,
		notifier:   notifier,
		svc:        NewComplaintService(repo, notifier, zap.NewNop()),
	}
}

func seedAccount(f *complaintFixture, username string, role entity.UserRole, createdAt time.Time) *entity.User {
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Username:   username,
		Email:      username + "@example.com",
		Role:       role,
		IsVerified: true,
	}
	f.users.seed(user)
	return user
}

func seedComplaint(f *complaintFixture, author *entity.User, title string, priority entity.ComplaintPriority, createdAt time.Time) *entity.Complaint {
	c := &entity.Complaint{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Title:       title,
		Description: strings.Repeat(title+" ", 5),
		Category:    entity.CategoryService,
		Priority:    priority,
		Status:      entity.StatusPending,
		UserID:      author.ID,
	}
	_ = f.complaints.Create(context.Background(), c)
	return c
}

func validCreateRequest() *request.CreateComplaintRequest {
	return &request.CreateComplaintRequest{
		Title:       "Broken checkout flow",
		Description: "The checkout page errors out whenever I apply a discount code.",
		Category:    "Product",
		Priority:    "High",
	}
}

func TestSubmit_CreatesPendingAndNotifies(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	author := seedAccount(f, "jane", entity.RoleUser, time.Now())
	admin := seedAccount(f, "boss", entity.RoleAdmin, time.Now())

	resp, err := f.svc.Submit(context.Background(), author.ID, validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Equal(t, "Broken checkout flow", resp.Title)
	require.Equal(t, entity.StatusPending, resp.Status)
	require.Equal(t, 1, f.complaints.count())

	require.Len(t, f.notifier.submitted, 1)
	call := f.notifier.submitted[0]
	require.NotNil(t, call.author)
	require.Equal(t, author.ID, call.author.ID)
	require.NotNil(t, call.admin)
	require.Equal(t, admin.ID, call.admin.ID)
	require.Equal(t, entity.StatusPending, call.complaint.Status)
}

func TestSubmit_ShortDescription(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	author := seedAccount(f, "jane", entity.RoleUser, time.Now())

	req := validCreateRequest()
	req.Description = strings.Repeat("x", 19)

	_, err := f.svc.Submit(context.Background(), author.ID, req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "Description")
	require.Equal(t, 0, f.complaints.count())
	require.Empty(t, f.notifier.submitted)
}

func TestSubmit_InvalidEnums(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	author := seedAccount(f, "jane", entity.RoleUser, time.Now())

	req := validCreateRequest()
	req.Category = "Billing"
	req.Priority = "Urgent"

	_, err := f.svc.Submit(context.Background(), author.ID, req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "Category")
	require.Contains(t, ve.Fields, "Priority")
}

func TestSubmit_MissingAdminStillSucceeds(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	author := seedAccount(f, "jane", entity.RoleUser, time.Now())

	resp, err := f.svc.Submit(context.Background(), author.ID, validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.Len(t, f.notifier.submitted, 1)
	require.Nil(t, f.notifier.submitted[0].admin)
}

func TestList_UserSeesOnlyOwn(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	jane := seedAccount(f, "jane", entity.RoleUser, time.Now())
	bob := seedAccount(f, "bob", entity.RoleUser, time.Now())

	older := seedComplaint(f, jane, "older complaint", entity.PriorityLow, time.Now().Add(-time.Hour))
	newer := seedComplaint(f, jane, "newer complaint", entity.PriorityHigh, time.Now())
	seedComplaint(f, bob, "someone else entirely", entity.PriorityHigh, time.Now())

	// Filters are ignored for plain users.
	result, err := f.svc.List(context.Background(), jane.ID, entity.RoleUser, "Resolved", "Low")
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, newer.ID.String(), result[0].ID)
	require.Equal(t, older.ID.String(), result[1].ID)
}

func TestList_AdminSeesAllWithFilters(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	jane := seedAccount(f, "jane", entity.RoleUser, time.Now())
	bob := seedAccount(f, "bob", entity.RoleUser, time.Now())
	admin := seedAccount(f, "boss", entity.RoleAdmin, time.Now())

	seedComplaint(f, jane, "low priority issue", entity.PriorityLow, time.Now().Add(-time.Hour))
	high := seedComplaint(f, bob, "high priority issue", entity.PriorityHigh, time.Now())

	all, err := f.svc.List(context.Background(), admin.ID, entity.RoleAdmin, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Author)
	require.Equal(t, "bob", all[0].Author.Username)

	// "all" means no filter, same as empty.
	unfiltered, err := f.svc.List(context.Background(), admin.ID, entity.RoleAdmin, "all", "all")
	require.NoError(t, err)
	require.Len(t, unfiltered, 2)

	filtered, err := f.svc.List(context.Background(), admin.ID, entity.RoleAdmin, "", "High")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, high.ID.String(), filtered[0].ID)
}

func TestUpdateStatus_NotificationAsymmetry(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	jane := seedAccount(f, "jane", entity.RoleUser, time.Now())
	seedAccount(f, "boss", entity.RoleAdmin, time.Now())
	c := seedComplaint(f, jane, "stuck order", entity.PriorityMedium, time.Now())

	// Moving forward notifies the author.
	resp, err := f.svc.UpdateStatus(context.Background(), c.ID, &request.UpdateStatusRequest{Status: "In Progress"})
	require.NoError(t, err)
	require.Equal(t, entity.StatusInProgress, resp.Status)
	require.Len(t, f.notifier.statuses, 1)
	require.True(t, f.notifier.statuses[0].notifyAuthor)
	require.NotNil(t, f.notifier.statuses[0].admin)

	// Reverting to Pending still notifies the admin, not the author.
	resp, err = f.svc.UpdateStatus(context.Background(), c.ID, &request.UpdateStatusRequest{Status: "Pending"})
	require.NoError(t, err)
	require.Equal(t, entity.StatusPending, resp.Status)
	require.Len(t, f.notifier.statuses, 2)
	require.False(t, f.notifier.statuses[1].notifyAuthor)

	resp, err = f.svc.UpdateStatus(context.Background(), c.ID, &request.UpdateStatusRequest{Status: "Resolved"})
	require.NoError(t, err)
	require.Equal(t, entity.StatusResolved, resp.Status)
	require.Len(t, f.notifier.statuses, 3)
	require.True(t, f.notifier.statuses[2].notifyAuthor)
}

func TestUpdateStatus_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	jane := seedAccount(f, "jane", entity.RoleUser, time.Now())
	seedAccount(f, "boss", entity.RoleAdmin, time.Now())
	c := seedComplaint(f, jane, "stuck order", entity.PriorityMedium, time.Now())

	// Two racing writers: last write wins, but the row must end in one of
	// the two requested states, never anything else.
	targets := []string{"In Progress", "Resolved"}
	errs := make(chan error, len(targets))
	var wg sync.WaitGroup
	for _, status := range targets {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			_, err := f.svc.UpdateStatus(context.Background(), c.ID, &request.UpdateStatusRequest{Status: status})
			errs <- err
		}(status)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := f.complaints.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Contains(t,
		[]entity.ComplaintStatus{entity.StatusInProgress, entity.StatusResolved},
		stored.Status)
	require.Len(t, f.notifier.statuses, 2)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	jane := seedAccount(f, "jane", entity.RoleUser, time.Now())
	c := seedComplaint(f, jane, "stuck order", entity.PriorityMedium, time.Now())

	_, err := f.svc.UpdateStatus(context.Background(), c.ID, &request.UpdateStatusRequest{Status: "Closed"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "Status")
	require.Empty(t, f.notifier.statuses)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	_, err := f.svc.UpdateStatus(context.Background(), uuid.New(), &request.UpdateStatusRequest{Status: "Resolved"})
	require.ErrorIs(t, err, ErrNotFound)
	require.Empty(t, f.notifier.statuses)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	f := newComplaintFixture(t)
	jane := seedAccount(f, "jane", entity.RoleUser, time.Now())
	c := seedComplaint(f, jane, "stuck order", entity.PriorityMedium, time.Now())

	require.NoError(t, f.svc.Delete(context.Background(), c.ID))
	require.Equal(t, 0, f.complaints.count())

	// Deleting again reports not found. No notification either way.
	require.ErrorIs(t, f.svc.Delete(context.Background(), c.ID), ErrNotFound)
	require.Empty(t, f.notifier.statuses)
	require.Empty(t, f.notifier.submitted)
}
