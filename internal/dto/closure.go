package dto

import (
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// ClosureResponse defines the data returned for a month closure.
type ClosureResponse struct {
	ClosureID string    `json:"closureID"`
	MonthYear string    `json:"monthYear"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToClosureResponse converts a domain.MonthClosure to its response DTO.
func ToClosureResponse(c *domain.MonthClosure) ClosureResponse {
	return ClosureResponse{
		ClosureID: c.ClosureID,
		MonthYear: c.MonthYear,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		CreatedAt: c.CreatedAt,
	}
}

// CloseMonthResponse reports the outcome of an archiver run.
type CloseMonthResponse struct {
	Closure       ClosureResponse `json:"closure"`
	ArchivedCount int             `json:"archivedCount"`
}

// ListClosuresResponse wraps the list of closures.
type ListClosuresResponse struct {
	Closures []ClosureResponse `json:"closures"`
}

// ToListClosuresResponse converts domain closures to the list DTO.
func ToListClosuresResponse(closures []domain.MonthClosure) ListClosuresResponse {
	res := make([]ClosureResponse, len(closures))
	for i := range closures {
		res[i] = ToClosureResponse(&closures[i])
	}
	return ListClosuresResponse{Closures: res}
}
