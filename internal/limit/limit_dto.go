package limit

import (
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
)

type UpsertLimitRequest struct {
	Value *int `json:"value" binding:"required,min=0,max=31"`
}

// LimitResponse reports Unlimited when no row exists for the type.
type LimitResponse struct {
	LimitType string `json:"limit_type"`
	Value     int    `json:"value"`
	Unlimited bool   `json:"unlimited"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func mapToResponse(l domain.MonthlyLimit) LimitResponse {
	resp := LimitResponse{LimitType: l.LimitType, Value: l.Value}
	if !l.UpdatedAt.IsZero() {
		resp.UpdatedAt = l.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(limits []domain.MonthlyLimit) []LimitResponse {
	resp := make([]LimitResponse, len(limits))
	for i, l := range limits {
		resp[i] = mapToResponse(l)
	}
	return resp
}
