package shiftswap

import (
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/notification"
)

// CreateSwapRequest may carry the shifts the client displayed. When set they
// must match the roster; the roster is the source of truth either way.
type CreateSwapRequest struct {
	TargetID       string `json:"target_id" binding:"required,uuid"`
	Date           string `json:"date" binding:"required"`
	Reason         string `json:"reason" binding:"max=1000"`
	RequesterShift string `json:"requester_shift" binding:"omitempty,oneof=Morning Evening Night Off"`
	TargetShift    string `json:"target_shift" binding:"omitempty,oneof=Morning Evening Night Off"`
}

type RespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type DecideRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

type ListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending_target_approval rejected_by_target pending_hod_approval rejected_by_system approved rejected_by_hod"`
}

type SwapResponse struct {
	ID             string    `json:"id"`
	RequesterID    string    `json:"requester_id"`
	RequesterName  string    `json:"requester_name,omitempty"`
	TargetID       string    `json:"target_id"`
	TargetName     string    `json:"target_name,omitempty"`
	Date           string    `json:"date"`
	RequesterShift string    `json:"requester_shift"`
	TargetShift    string    `json:"target_shift"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Outcome carries the notices to dispatch once the transition is committed.
type Outcome struct {
	Swap    SwapResponse
	Notices []notification.Notice
}

func mapToResponse(s domain.ShiftSwap) SwapResponse {
	return SwapResponse{
		ID:             s.ID.String(),
		RequesterID:    s.RequesterID.String(),
		RequesterName:  s.RequesterName,
		TargetID:       s.TargetID.String(),
		TargetName:     s.TargetName,
		Date:           domain.FormatDate(s.Date),
		RequesterShift: s.RequesterShift,
		TargetShift:    s.TargetShift,
		Reason:         s.Reason,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func mapToListResponse(swaps []domain.ShiftSwap) []SwapResponse {
	resp := make([]SwapResponse, len(swaps))
	for i, s := range swaps {
		resp[i] = mapToResponse(s)
	}
	return resp
}
