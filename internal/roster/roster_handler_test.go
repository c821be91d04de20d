package roster_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/roster"
	rostererrors "github.com/Ashmit12092000/ems/internal/roster/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeRosterService struct {
	setShiftFn   func(ctx context.Context, userID, date, shift string) (roster.EntryResponse, error)
	saveDayFn    func(ctx context.Context, date string, shifts map[string]string) ([]roster.EntryResponse, error)
	getDayFn     func(ctx context.Context, date string) ([]roster.EntryResponse, error)
	getForUserFn func(ctx context.Context, userID uuid.UUID, from, to string) ([]roster.EntryResponse, error)
	exportFn     func(ctx context.Context, from, to string) (*bytes.Buffer, string, error)
}

func (f *fakeRosterService) SetShift(ctx context.Context, userID, date, shift string) (roster.EntryResponse, error) {
	return f.setShiftFn(ctx, userID, date, shift)
}
func (f *fakeRosterService) SaveDay(ctx context.Context, date string, shifts map[string]string) ([]roster.EntryResponse, error) {
	return f.saveDayFn(ctx, date, shifts)
}
func (f *fakeRosterService) GetDay(ctx context.Context, date string) ([]roster.EntryResponse, error) {
	return f.getDayFn(ctx, date)
}
func (f *fakeRosterService) GetForUser(ctx context.Context, userID uuid.UUID, from, to string) ([]roster.EntryResponse, error) {
	return f.getForUserFn(ctx, userID, from, to)
}
func (f *fakeRosterService) Export(ctx context.Context, from, to string) (*bytes.Buffer, string, error) {
	return f.exportFn(ctx, from, to)
}

func newContext(method, target, body string, actor *domain.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if actor != nil {
		c.Set("user_id", actor.ID.String())
		c.Set("username", actor.Username)
		c.Set("role", actor.Role)
	}
	return c, w
}

func TestRosterHandler_GetDay(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeRosterService{getDayFn: func(_ context.Context, date string) ([]roster.EntryResponse, error) {
			assert.Equal(t, "2025-09-15", date)
			return []roster.EntryResponse{{Username: "alice", Date: date, ShiftType: "Morning"}}, nil
		}}
		c, w := newContext(http.MethodGet, "/roster?date=2025-09-15", "", nil)

		roster.NewHandler(svc).GetDay(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeEnvelope(t, w.Body.Bytes()).Ok)
	})

	t.Run("negative missing date", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/roster", "", nil)

		roster.NewHandler(&fakeRosterService{}).GetDay(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative bad date", func(t *testing.T) {
		svc := &fakeRosterService{getDayFn: func(context.Context, string) ([]roster.EntryResponse, error) {
			return nil, rostererrors.ErrInvalidDateFormat
		}}
		c, w := newContext(http.MethodGet, "/roster?date=x", "", nil)

		roster.NewHandler(svc).GetDay(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestRosterHandler_GetMine(t *testing.T) {
	alice := domain.Actor{ID: uuid.New(), Username: "alice", Role: domain.RoleEmployee}

	svc := &fakeRosterService{getForUserFn: func(_ context.Context, userID uuid.UUID, from, to string) ([]roster.EntryResponse, error) {
		assert.Equal(t, alice.ID, userID)
		assert.Equal(t, "2025-09-01", from)
		assert.Equal(t, "2025-09-30", to)
		return []roster.EntryResponse{}, nil
	}}
	c, w := newContext(http.MethodGet, "/roster/me?from=2025-09-01&to=2025-09-30", "", &alice)

	roster.NewHandler(svc).GetMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/roster/me", "", nil)
	roster.NewHandler(svc).GetMine(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRosterHandler_SaveDay(t *testing.T) {
	userID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeRosterService{saveDayFn: func(_ context.Context, date string, shifts map[string]string) ([]roster.EntryResponse, error) {
			assert.Equal(t, "2025-09-15", date)
			assert.Equal(t, "Night", shifts[userID])
			return []roster.EntryResponse{{UserID: userID, Date: date, ShiftType: "Night"}}, nil
		}}
		c, w := newContext(http.MethodPut, "/roster/2025-09-15", `{"shifts":{"`+userID+`":"Night"}}`, nil)
		c.Params = gin.Params{{Key: "date", Value: "2025-09-15"}}

		roster.NewHandler(svc).SaveDay(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative missing body", func(t *testing.T) {
		c, w := newContext(http.MethodPut, "/roster/2025-09-15", `{}`, nil)
		c.Params = gin.Params{{Key: "date", Value: "2025-09-15"}}

		roster.NewHandler(&fakeRosterService{}).SaveDay(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestRosterHandler_SetShift(t *testing.T) {
	userID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeRosterService{setShiftFn: func(_ context.Context, uid, date, shift string) (roster.EntryResponse, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, "Evening", shift)
			return roster.EntryResponse{UserID: uid, Date: date, ShiftType: shift}, nil
		}}
		c, w := newContext(http.MethodPut, "/roster/2025-09-15/"+userID, `{"shift_type":"Evening"}`, nil)
		c.Params = gin.Params{{Key: "date", Value: "2025-09-15"}, {Key: "user_id", Value: userID}}

		roster.NewHandler(svc).SetShift(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative invalid shift binding", func(t *testing.T) {
		c, w := newContext(http.MethodPut, "/roster/2025-09-15/"+userID, `{"shift_type":"Lunch"}`, nil)

		roster.NewHandler(&fakeRosterService{}).SetShift(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative user not found", func(t *testing.T) {
		svc := &fakeRosterService{setShiftFn: func(context.Context, string, string, string) (roster.EntryResponse, error) {
			return roster.EntryResponse{}, rostererrors.ErrUserNotFound
		}}
		c, w := newContext(http.MethodPut, "/roster/2025-09-15/"+userID, `{"shift_type":"Off"}`, nil)

		roster.NewHandler(svc).SetShift(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRosterHandler_Export(t *testing.T) {
	t.Run("success attachment", func(t *testing.T) {
		svc := &fakeRosterService{exportFn: func(_ context.Context, from, to string) (*bytes.Buffer, string, error) {
			return bytes.NewBufferString("xlsx-bytes"), "roster_" + from + "_" + to + ".xlsx", nil
		}}
		c, w := newContext(http.MethodGet, "/roster/export?from=2025-09-01&to=2025-09-30", "", nil)

		roster.NewHandler(svc).Export(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "roster_2025-09-01_2025-09-30.xlsx")
		assert.Equal(t, "xlsx-bytes", w.Body.String())
	})

	t.Run("negative range too long", func(t *testing.T) {
		svc := &fakeRosterService{exportFn: func(context.Context, string, string) (*bytes.Buffer, string, error) {
			return nil, "", rostererrors.ErrRangeTooLong
		}}
		c, w := newContext(http.MethodGet, "/roster/export?from=2025-01-01&to=2025-12-31", "", nil)

		roster.NewHandler(svc).Export(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
