// Package repositories implements the data stores over pgx.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles the application repositories for wiring.
type Repositories struct {
	CredentialRepository *CredentialRepository
	EmployeeRepository   *EmployeeRepository
}

// NewRepositories creates all repositories sharing one pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CredentialRepository: NewCredentialRepository(db),
		EmployeeRepository:   NewEmployeeRepository(db),
	}
}
