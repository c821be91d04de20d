package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ashmit12092000/ems/internal/user"
	usererrors "github.com/Ashmit12092000/ems/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	listEmployeesFn func(ctx context.Context, excludeID uuid.UUID) ([]user.UserResponse, error)
	getByIDFn       func(ctx context.Context, id string) (user.UserResponse, error)
	listFn          func(ctx context.Context, role string) ([]user.UserResponse, error)
}

func (f *fakeUserService) ListEmployees(ctx context.Context, excludeID uuid.UUID) ([]user.UserResponse, error) {
	return f.listEmployeesFn(ctx, excludeID)
}
func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeUserService) List(ctx context.Context, role string) ([]user.UserResponse, error) {
	return f.listFn(ctx, role)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newContext(method, target string, userID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	if userID != uuid.Nil {
		c.Set("user_id", userID.String())
		c.Set("username", "alice")
		c.Set("role", "Employee")
	}
	return c, w
}

func TestUserHandler_ListEmployees(t *testing.T) {
	me := uuid.New()
	svc := &fakeUserService{
		listEmployeesFn: func(_ context.Context, excludeID uuid.UUID) ([]user.UserResponse, error) {
			assert.Equal(t, me, excludeID)
			return []user.UserResponse{{Username: "bob"}, {Username: "carol"}}, nil
		},
	}

	t.Run("success filtered by q", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/users/employees?q=CAR", me)
		user.NewHandler(svc).ListEmployees(c)

		require.Equal(t, http.StatusOK, w.Code)
		var env apiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var got []user.UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "carol", got[0].Username)
	})

	t.Run("negative unauthenticated", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/users/employees", uuid.Nil)
		user.NewHandler(svc).ListEmployees(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_GetByID(t *testing.T) {
	svc := &fakeUserService{
		getByIDFn: func(_ context.Context, id string) (user.UserResponse, error) {
			if id == "missing" {
				return user.UserResponse{}, usererrors.ErrUserNotFound
			}
			return user.UserResponse{ID: id, Username: "bob"}, nil
		},
	}

	t.Run("success", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/users/x", uuid.New())
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		user.NewHandler(svc).GetByID(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative not found", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/users/missing", uuid.New())
		c.Params = gin.Params{{Key: "id", Value: "missing"}}
		user.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var env apiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestUserHandler_List(t *testing.T) {
	svc := &fakeUserService{
		listFn: func(_ context.Context, role string) ([]user.UserResponse, error) {
			if role == "Admin" {
				return nil, usererrors.ErrInvalidRole
			}
			return []user.UserResponse{{Username: "a"}, {Username: "b"}, {Username: "c"}}, nil
		},
	}

	c, w := newContext(http.MethodGet, "/users?page=2&page_size=2", uuid.New())
	user.NewHandler(svc).List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)

	c, w = newContext(http.MethodGet, "/users?role=Admin", uuid.New())
	user.NewHandler(svc).List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
