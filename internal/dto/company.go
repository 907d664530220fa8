package dto

import (
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a company.
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AddCompanyUserRequest grants a user a role in a company.
type AddCompanyUserRequest struct {
	UserID string             `json:"userID" binding:"required"`
	Role   domain.CompanyRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToCompanyResponse converts a domain.Company to its DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		CreatedBy: c.CreatedBy,
	}
}

// ListCompaniesResponse wraps the companies a user belongs to.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompanyResponse converts a slice of companies.
func ToListCompanyResponse(companies []domain.Company) ListCompaniesResponse {
	res := ListCompaniesResponse{Companies: make([]CompanyResponse, len(companies))}
	for i := range companies {
		res.Companies[i] = ToCompanyResponse(&companies[i])
	}
	return res
}
