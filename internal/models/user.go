package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleCO   UserRole = "CO"
	RoleJCO  UserRole = "JCO"
	RoleUser UserRole = "USER"
)

// ValidRole reports whether the value is one of the canonical roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleCO, RoleJCO, RoleUser:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
// ArmyNo is optional; when present it is stored uppercase and unique.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName"`
	Role         UserRole  `db:"role" json:"role"`
	ArmyNo       *string   `db:"army_no" json:"armyNo,omitempty"`
	Rank         string    `db:"rank" json:"rank"`
	BattalionID  *string   `db:"battalion_id" json:"battalion,omitempty"`
	Active       bool      `db:"active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      *UserRole
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
