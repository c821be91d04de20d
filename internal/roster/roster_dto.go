package roster

import "github.com/Ashmit12092000/ems/internal/domain"

type SetShiftRequest struct {
	ShiftType string `json:"shift_type" binding:"required,oneof=Morning Evening Night Off"`
}

// SaveDayRequest maps user id to shift. Employees left out are set Off.
type SaveDayRequest struct {
	Shifts map[string]string `json:"shifts" binding:"required"`
}

type RangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type EntryResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Date      string `json:"date"`
	ShiftType string `json:"shift_type"`
}

func mapToResponse(e domain.RosterEntry) EntryResponse {
	return EntryResponse{
		UserID:    e.UserID.String(),
		Username:  e.Username,
		Date:      domain.FormatDate(e.Date),
		ShiftType: e.ShiftType,
	}
}

func mapToListResponse(entries []domain.RosterEntry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
