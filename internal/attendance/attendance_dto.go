package attendance

import (
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
)

type MarkRequest struct {
	Status string `json:"status" binding:"required,oneof=Present Absent Leave"`
}

type AttendanceResponse struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username,omitempty"`
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

func mapToResponse(a domain.Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		UserID:   a.UserID.String(),
		Username: a.Username,
		Date:     domain.FormatDate(a.Date),
		Status:   a.Status,
	}
	if !a.UpdatedAt.IsZero() {
		v := a.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &v
	}
	return resp
}
