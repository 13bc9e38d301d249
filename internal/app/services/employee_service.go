package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/app/models/dto"
	"github.com/emirkaya/staffdesk/internal/app/repositories"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
	"github.com/emirkaya/staffdesk/internal/pkg/filestorage"
)

// employeeService implements EmployeeService. It holds no employee
// state between requests; every operation goes to the store.
type employeeService struct {
	employeeRepo repositories.IEmployeeRepository
	fileStorage  filestorage.FileStorage
	logger       zerolog.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo repositories.IEmployeeRepository, fileStorage filestorage.FileStorage, logger zerolog.Logger) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

// validateForm is the precondition check on a bound form. Structural
// validation already happened at binding; this guards direct callers.
func validateForm(form *dto.EmployeeForm) error {
	if form == nil {
		return fmt.Errorf("%w: employee form is nil", apperrors.ErrValidationFailed)
	}
	if form.Name == "" || form.Email == "" || form.Mobile == "" || form.Designation == "" || form.Gender == "" {
		return fmt.Errorf("%w: all fields are required", apperrors.ErrValidationFailed)
	}
	if len(form.Courses) == 0 {
		return fmt.Errorf("%w: at least one course is required", apperrors.ErrValidationFailed)
	}
	return nil
}

// Create persists a new employee. The store assigns the next local_id
// and enforces email uniqueness; duplicate emails surface as
// ErrEmailAlreadyExists.
func (s *employeeService) Create(ctx context.Context, form *dto.EmployeeForm, imagePath string) (*models.Employee, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Courses:     form.Courses,
		ImagePath:   imagePath,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("localId", employee.LocalID).Str("email", employee.Email).Msg("Employee created")
	return employee, nil
}

// List returns employees, filtered by a case-insensitive name
// substring when search is non-empty.
func (s *employeeService) List(ctx context.Context, search string) ([]*models.Employee, error) {
	return s.employeeRepo.GetAll(ctx, search)
}

// GetByLocalID returns the matching employee or ErrEmployeeNotFound.
func (s *employeeService) GetByLocalID(ctx context.Context, localID int64) (*models.Employee, error) {
	if localID <= 0 {
		return nil, fmt.Errorf("%w: invalid employee ID", apperrors.ErrValidationFailed)
	}
	return s.employeeRepo.GetByLocalID(ctx, localID)
}

// Update replaces all mutable fields of an employee. The image is
// replaced only when imagePath is non-empty, otherwise the existing
// reference is retained; a replaced file is removed from storage.
func (s *employeeService) Update(ctx context.Context, localID int64, form *dto.EmployeeForm, imagePath string) (*models.Employee, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	existing, err := s.employeeRepo.GetByLocalID(ctx, localID)
	if err != nil {
		return nil, err
	}

	replacedImage := ""
	if imagePath == "" {
		imagePath = existing.ImagePath
	} else if existing.ImagePath != "" && existing.ImagePath != imagePath {
		replacedImage = existing.ImagePath
	}

	employee := &models.Employee{
		LocalID:     localID,
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Courses:     form.Courses,
		ImagePath:   imagePath,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	if replacedImage != "" {
		if err := s.fileStorage.DeleteFile(ctx, replacedImage); err != nil {
			s.logger.Warn().Err(err).Str("path", replacedImage).Msg("Failed to delete replaced employee image")
		}
	}

	s.logger.Info().Int64("localId", localID).Msg("Employee updated")
	// Re-read so the caller sees the stored timestamps.
	return s.employeeRepo.GetByLocalID(ctx, localID)
}

// Delete removes an employee and, best effort, its stored image.
func (s *employeeService) Delete(ctx context.Context, localID int64) error {
	if localID <= 0 {
		return fmt.Errorf("%w: invalid employee ID", apperrors.ErrValidationFailed)
	}

	existing, err := s.employeeRepo.GetByLocalID(ctx, localID)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, localID); err != nil {
		return err
	}

	if existing.ImagePath != "" {
		if err := s.fileStorage.DeleteFile(ctx, existing.ImagePath); err != nil {
			s.logger.Warn().Err(err).Str("path", existing.ImagePath).Msg("Failed to delete employee image")
		}
	}

	s.logger.Info().Int64("localId", localID).Msg("Employee deleted")
	return nil
}
