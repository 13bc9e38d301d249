package services

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/app/models/dto"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
)

// fakeEmployeeRepo mimics the store's behavior: it assigns
// MAX(local_id)+1 on create and rejects duplicate emails.
type fakeEmployeeRepo struct {
	employees map[int64]*models.Employee
	nextID    int64
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[int64]*models.Employee)}
}

func (r *fakeEmployeeRepo) maxLocalID() int64 {
	var max int64
	for id := range r.employees {
		if id > max {
			max = id
		}
	}
	return max
}

func (r *fakeEmployeeRepo) emailTaken(email string, excludeLocalID int64) bool {
	for _, e := range r.employees {
		if e.Email == email && e.LocalID != excludeLocalID {
			return true
		}
	}
	return false
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *models.Employee) error {
	if r.emailTaken(employee.Email, 0) {
		return apperrors.ErrEmailAlreadyExists
	}
	employee.LocalID = r.maxLocalID() + 1
	r.nextID++
	employee.ID = r.nextID
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = employee.CreatedAt
	copied := *employee
	r.employees[employee.LocalID] = &copied
	return nil
}

func (r *fakeEmployeeRepo) GetAll(_ context.Context, search string) ([]*models.Employee, error) {
	var result []*models.Employee
	for i := int64(1); i <= r.maxLocalID(); i++ {
		e, ok := r.employees[i]
		if !ok {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(search)) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeEmployeeRepo) GetByLocalID(_ context.Context, localID int64) (*models.Employee, error) {
	e, ok := r.employees[localID]
	if !ok {
		return nil, apperrors.ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *models.Employee) error {
	existing, ok := r.employees[employee.LocalID]
	if !ok {
		return apperrors.ErrEmployeeNotFound
	}
	if r.emailTaken(employee.Email, employee.LocalID) {
		return apperrors.ErrEmailAlreadyExists
	}
	copied := *employee
	copied.ID = existing.ID
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now()
	r.employees[employee.LocalID] = &copied
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, localID int64) error {
	if _, ok := r.employees[localID]; !ok {
		return apperrors.ErrEmployeeNotFound
	}
	delete(r.employees, localID)
	return nil
}

// fakeStorage records delete calls so tests can assert image cleanup.
type fakeStorage struct {
	deleted []string
}

func (s *fakeStorage) SaveFile(_ context.Context, _ *multipart.FileHeader) (string, error) {
	return "uploads/fake.png", nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func validEmployeeForm(email string) *dto.EmployeeForm {
	return &dto.EmployeeForm{
		Name:        "Jane Roe",
		Email:       email,
		Mobile:      "5551234567",
		Designation: "HR",
		Gender:      "F",
		Courses:     []string{"MCA"},
	}
}

func newTestEmployeeService() (EmployeeService, *fakeEmployeeRepo, *fakeStorage) {
	repo := newFakeEmployeeRepo()
	storage := &fakeStorage{}
	return NewEmployeeService(repo, storage, zerolog.Nop()), repo, storage
}

func TestEmployeeCreate_SequentialLocalIDs(t *testing.T) {
	svc, _, _ := newTestEmployeeService()
	ctx := context.Background()

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		emp, err := svc.Create(ctx, validEmployeeForm(email), "")
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), emp.LocalID)
	}
}

func TestEmployeeCreate_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestEmployeeService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validEmployeeForm("dup@x.com"), "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, validEmployeeForm("dup@x.com"), "")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestEmployeeCreate_MissingFields(t *testing.T) {
	svc, _, _ := newTestEmployeeService()
	ctx := context.Background()

	form := validEmployeeForm("a@x.com")
	form.Name = ""
	_, err := svc.Create(ctx, form, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	form = validEmployeeForm("a@x.com")
	form.Courses = nil
	_, err = svc.Create(ctx, form, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEmployeeList_Search(t *testing.T) {
	svc, _, _ := newTestEmployeeService()
	ctx := context.Background()

	first := validEmployeeForm("a@x.com")
	first.Name = "Alice Smith"
	_, err := svc.Create(ctx, first, "")
	require.NoError(t, err)

	second := validEmployeeForm("b@x.com")
	second.Name = "Bob Jones"
	_, err = svc.Create(ctx, second, "")
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Alice Smith", filtered[0].Name)
}

func TestEmployeeGet_NotFound(t *testing.T) {
	svc, _, _ := newTestEmployeeService()

	_, err := svc.GetByLocalID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)

	_, err = svc.GetByLocalID(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEmployeeUpdate_RetainsImageWhenEmpty(t *testing.T) {
	svc, _, storage := newTestEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validEmployeeForm("a@x.com"), "uploads/original.png")
	require.NoError(t, err)

	form := validEmployeeForm("a@x.com")
	form.Name = "Jane Updated"
	updated, err := svc.Update(ctx, created.LocalID, form, "")
	require.NoError(t, err)

	assert.Equal(t, "Jane Updated", updated.Name)
	assert.Equal(t, "uploads/original.png", updated.ImagePath)
	assert.Empty(t, storage.deleted)
}

func TestEmployeeUpdate_ReplacesImage(t *testing.T) {
	svc, _, storage := newTestEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validEmployeeForm("a@x.com"), "uploads/original.png")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.LocalID, validEmployeeForm("a@x.com"), "uploads/replacement.png")
	require.NoError(t, err)

	assert.Equal(t, "uploads/replacement.png", updated.ImagePath)
	// The replaced file is removed from storage.
	assert.Equal(t, []string{"uploads/original.png"}, storage.deleted)
}

func TestEmployeeUpdate_KeepingOwnEmailIsNotDuplicate(t *testing.T) {
	svc, _, _ := newTestEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validEmployeeForm("a@x.com"), "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.LocalID, validEmployeeForm("a@x.com"), "")
	assert.NoError(t, err)
}

func TestEmployeeUpdate_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestEmployeeService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validEmployeeForm("a@x.com"), "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, validEmployeeForm("b@x.com"), "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.LocalID, validEmployeeForm("a@x.com"), "")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestEmployeeUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestEmployeeService()

	_, err := svc.Update(context.Background(), 42, validEmployeeForm("a@x.com"), "")
	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestEmployeeDelete(t *testing.T) {
	svc, repo, storage := newTestEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validEmployeeForm("a@x.com"), "uploads/photo.png")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.LocalID))
	assert.Empty(t, repo.employees)
	assert.Equal(t, []string{"uploads/photo.png"}, storage.deleted)

	assert.ErrorIs(t, svc.Delete(ctx, created.LocalID), apperrors.ErrEmployeeNotFound)
}

// The next local ID is always current maximum plus one, so deleting
// the highest-numbered employee frees its ID for the next create.
func TestEmployeeCreate_LocalIDFollowsMaximum(t *testing.T) {
	svc, _, _ := newTestEmployeeService()
	ctx := context.Background()

	first, err := svc.Create(ctx, validEmployeeForm("a@x.com"), "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, validEmployeeForm("b@x.com"), "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, second.LocalID))

	third, err := svc.Create(ctx, validEmployeeForm("c@x.com"), "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.LocalID)
	assert.Equal(t, int64(2), third.LocalID)
}
