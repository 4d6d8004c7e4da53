package domain

import "time"

// Role is a named role definition managed through the roles resource.
// Access rules reference roles by Name; the ID is the storage identifier.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
