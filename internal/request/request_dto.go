package request

import (
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/notification"
)

type CreateRequest struct {
	Type           string  `json:"type" binding:"required,oneof=leave permission shift"`
	Date           string  `json:"date" binding:"required"`
	Reason         string  `json:"reason" binding:"required,max=1000"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	CurrentShift   *string `json:"current_shift"`
	RequestedShift *string `json:"requested_shift"`
}

type ListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Type   string `form:"type" binding:"omitempty,oneof=leave permission shift"`
}

type RequestResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Username       string     `json:"username,omitempty"`
	Type           string     `json:"type"`
	Date           string     `json:"date"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	StartTime      *string    `json:"start_time,omitempty"`
	EndTime        *string    `json:"end_time,omitempty"`
	CurrentShift   *string    `json:"current_shift,omitempty"`
	RequestedShift *string    `json:"requested_shift,omitempty"`
	DecidedBy      *string    `json:"decided_by,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Outcome carries the notices to dispatch once the change is committed.
type Outcome struct {
	Request RequestResponse
	Notices []notification.Notice
}

func mapToResponse(r domain.Request) RequestResponse {
	resp := RequestResponse{
		ID:             r.ID.String(),
		UserID:         r.UserID.String(),
		Username:       r.Username,
		Type:           r.Type,
		Date:           domain.FormatDate(r.Date),
		Reason:         r.Reason,
		Status:         r.Status,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		CurrentShift:   r.CurrentShift,
		RequestedShift: r.RequestedShift,
		DecidedAt:      r.DecidedAt,
		CreatedAt:      r.CreatedAt,
	}
	if r.DecidedBy != nil {
		v := r.DecidedBy.String()
		resp.DecidedBy = &v
	}
	return resp
}

func mapToListResponse(requests []domain.Request) []RequestResponse {
	resp := make([]RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}
