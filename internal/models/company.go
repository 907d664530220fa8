package models

import "time"

// Company is a row of the companies table.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}

// CompanyUser is a row of the company_users table.
type CompanyUser struct {
	CompanyID string    `db:"company_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	JoinedAt  time.Time `db:"joined_at"`
}
