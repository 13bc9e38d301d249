// Package services holds the application business logic.
package services

import (
	"context"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/app/models/dto"
)

// AuthService authenticates admin credentials and issues tokens.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// EmployeeService enforces the employee invariants and performs CRUD
// against the employee store. imagePath arguments are the stored
// accessible paths produced by the file storage; an empty imagePath on
// Update means the existing image is retained.
type EmployeeService interface {
	Create(ctx context.Context, form *dto.EmployeeForm, imagePath string) (*models.Employee, error)
	List(ctx context.Context, search string) ([]*models.Employee, error)
	GetByLocalID(ctx context.Context, localID int64) (*models.Employee, error)
	Update(ctx context.Context, localID int64, form *dto.EmployeeForm, imagePath string) (*models.Employee, error)
	Delete(ctx context.Context, localID int64) error
}
