// Package models defines the typed domain records.
package models

// Credential is a stored login identity. Rows are created once by the
// seed step and are read-only at runtime.
type Credential struct {
	SequenceNumber int64  `json:"sno"`
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
}
