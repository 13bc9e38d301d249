package models

import "time"

// Employee is the record managed by the CRUD surface. LocalID is the
// application-assigned sequential identifier, distinct from the
// storage-internal row ID, and never changes after creation.
type Employee struct {
	ID          int64     `json:"-"`
	LocalID     int64     `json:"localId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Designation string    `json:"designation"`
	Gender      string    `json:"gender"`
	Courses     []string  `json:"courses"`
	ImagePath   string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
