package storefake_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"
	"github.com/Ashmit12092000/ems/internal/store/storefake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_GuardedUpdates(t *testing.T) {
	ctx := context.Background()
	st := storefake.New()
	a := st.AddUser("a", domain.RoleEmployee)
	date := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	st.SetRoster(a.ID, date, domain.ShiftMorning)

	assert.ErrorIs(t, st.UpdateRosterShift(ctx, a.ID, date, domain.ShiftNight, domain.ShiftOff), store.ErrStaleStatus)
	assert.ErrorIs(t, st.UpdateRosterShift(ctx, a.ID, date.AddDate(0, 0, 1), domain.ShiftMorning, domain.ShiftOff), store.ErrNotFound)
	require.NoError(t, st.UpdateRosterShift(ctx, a.ID, date, domain.ShiftMorning, domain.ShiftNight))

	e, err := st.FindRosterEntry(ctx, a.ID, date)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftNight, e.ShiftType)
}

func TestFake_FailOn(t *testing.T) {
	st := storefake.New()
	boom := errors.New("boom")

	st.FailOn("CountRequests", boom)
	_, err := st.CountRequests(context.Background(), store.CountFilter{})
	assert.ErrorIs(t, err, boom)

	st.FailOn("CountRequests", nil)
	_, err = st.CountRequests(context.Background(), store.CountFilter{})
	assert.NoError(t, err)
}
