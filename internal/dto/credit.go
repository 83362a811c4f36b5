package dto

import (
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditRequest defines the data needed to create a credit (loan).
// Outstanding defaults to the principal when not provided.
type CreateCreditRequest struct {
	AccountID   string                     `json:"accountID" binding:"required"`
	Title       string                     `json:"title" binding:"required"`
	Principal   decimal.Decimal            `json:"principal" binding:"required"`
	Outstanding *decimal.Decimal           `json:"outstanding"` // Optional override
	StartDate   time.Time                  `json:"startDate" binding:"required"`
	DueDate     time.Time                  `json:"dueDate" binding:"required"`
	Frequency   domain.RecurrenceFrequency `json:"frequency" binding:"omitempty,recurrencefreq"`
}

// UpdateCreditRequest is the patch applied to an existing credit. Outstanding
// is directly editable: it is a scalar of record, not re-derived from history.
type UpdateCreditRequest struct {
	Title       *string                     `json:"title"`
	StartDate   *time.Time                  `json:"startDate"`
	DueDate     *time.Time                  `json:"dueDate"`
	Outstanding *decimal.Decimal            `json:"outstanding"`
	Frequency   *domain.RecurrenceFrequency `json:"frequency" binding:"omitempty,recurrencefreq"`
	IsClosed    *bool                       `json:"isClosed"`
}

// CreditResponse defines the data returned for a credit.
type CreditResponse struct {
	CreditID      string                     `json:"creditID"`
	AccountID     string                     `json:"accountID"`
	Title         string                     `json:"title"`
	Principal     decimal.Decimal            `json:"principal"`
	Outstanding   decimal.Decimal            `json:"outstanding"`
	StartDate     time.Time                  `json:"startDate"`
	DueDate       time.Time                  `json:"dueDate"`
	Frequency     domain.RecurrenceFrequency `json:"frequency,omitempty"`
	IsClosed      bool                       `json:"isClosed"`
	CreatedAt     time.Time                  `json:"createdAt"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
}

// ToCreditResponse converts a domain.Credit to its response DTO.
func ToCreditResponse(c *domain.Credit) CreditResponse {
	return CreditResponse{
		CreditID:      c.CreditID,
		AccountID:     c.AccountID,
		Title:         c.Title,
		Principal:     c.Principal,
		Outstanding:   c.Outstanding,
		StartDate:     c.StartDate,
		DueDate:       c.DueDate,
		Frequency:     c.Frequency,
		IsClosed:      c.IsClosed,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ListCreditsParams defines query parameters for listing credits.
type ListCreditsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListCreditsResponse wraps the list of credits.
type ListCreditsResponse struct {
	Credits []CreditResponse `json:"credits"`
}

// ToListCreditsResponse converts domain credits to the list DTO.
func ToListCreditsResponse(credits []domain.Credit) ListCreditsResponse {
	res := make([]CreditResponse, len(credits))
	for i := range credits {
		res[i] = ToCreditResponse(&credits[i])
	}
	return ListCreditsResponse{Credits: res}
}
