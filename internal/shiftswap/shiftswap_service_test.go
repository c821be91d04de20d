package shiftswap_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/Ashmit12092000/ems/internal/domain"
	kafkamock "github.com/Ashmit12092000/ems/internal/messaging/kafka/mock"
	"github.com/Ashmit12092000/ems/internal/notification"
	"github.com/Ashmit12092000/ems/internal/shiftswap"
	shiftswaperrors "github.com/Ashmit12092000/ems/internal/shiftswap/errors"
	"github.com/Ashmit12092000/ems/internal/store/storefake"
	"github.com/Ashmit12092000/ems/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const swapDay = "2025-09-15"

type swapDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	store      *storefake.Store
	service    shiftswap.Service
	dispatcher notification.Dispatcher

	alice, bob, hod domain.User
}

func setupSwapTest(t *testing.T) *swapDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := storefake.New()
	outbox := kafkamock.NewMockOutboxRepository(gomock.NewController(t))
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).AnyTimes()
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	d := &swapDeps{
		db:         db,
		sqlMock:    sqlMock,
		store:      st,
		service:    shiftswap.NewService(db, st, validation.New(st, zap.NewNop()), outbox, nil, zap.NewNop()),
		dispatcher: notification.NewDispatcher(st, nil, nil, zap.NewNop()),
		alice:      st.AddUser("alice", domain.RoleEmployee),
		bob:        st.AddUser("bob", domain.RoleEmployee),
		hod:        st.AddUser("hana", domain.RoleHOD),
	}

	date, _ := domain.ParseDate(swapDay)
	st.SetRoster(d.alice.ID, date, domain.ShiftMorning)
	st.SetRoster(d.bob.ID, date, domain.ShiftNight)
	return d
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func actorOf(u domain.User) domain.Actor {
	return domain.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (d *swapDeps) shiftOf(t *testing.T, userID uuid.UUID, day string) string {
	t.Helper()
	date, _ := domain.ParseDate(day)
	e, err := d.store.FindRosterEntry(context.Background(), userID, date)
	require.NoError(t, err)
	return e.ShiftType
}

func (d *swapDeps) notificationsFor(userID uuid.UUID) []string {
	var out []string
	for _, n := range d.store.Notifications() {
		if n.UserID == userID {
			out = append(out, n.Message)
		}
	}
	return out
}

func (d *swapDeps) create(t *testing.T) shiftswap.Outcome {
	t.Helper()
	expectTx(t, d.sqlMock, true)
	out, err := d.service.Create(context.Background(), actorOf(d.alice), shiftswap.CreateSwapRequest{
		TargetID: d.bob.ID.String(), Date: swapDay, Reason: "appointment",
	})
	require.NoError(t, err)
	d.dispatcher.Dispatch(context.Background(), out.Notices)
	return out
}

func TestSwapService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success resolves shifts from roster and notifies target", func(t *testing.T) {
		d := setupSwapTest(t)
		out := d.create(t)

		assert.Equal(t, domain.SwapStatusPendingTarget, out.Swap.Status)
		assert.Equal(t, domain.ShiftMorning, out.Swap.RequesterShift)
		assert.Equal(t, domain.ShiftNight, out.Swap.TargetShift)
		assert.Equal(t, []string{
			"alice wants to swap your Night shift on 2025-09-15 with their Morning shift. Please review the request.",
		}, d.notificationsFor(d.bob.ID))
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative self swap", func(t *testing.T) {
		d := setupSwapTest(t)
		_, err := d.service.Create(ctx, actorOf(d.alice), shiftswap.CreateSwapRequest{TargetID: d.alice.ID.String(), Date: swapDay})
		assert.ErrorIs(t, err, shiftswaperrors.ErrSelfSwap)
	})

	t.Run("negative target is HOD", func(t *testing.T) {
		d := setupSwapTest(t)
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Create(ctx, actorOf(d.alice), shiftswap.CreateSwapRequest{TargetID: d.hod.ID.String(), Date: swapDay})
		assert.ErrorIs(t, err, shiftswaperrors.ErrTargetNotEmployee)
	})

	t.Run("negative target unknown", func(t *testing.T) {
		d := setupSwapTest(t)
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Create(ctx, actorOf(d.alice), shiftswap.CreateSwapRequest{TargetID: uuid.NewString(), Date: swapDay})
		assert.ErrorIs(t, err, shiftswaperrors.ErrTargetNotFound)
	})

	t.Run("negative requester not rostered", func(t *testing.T) {
		d := setupSwapTest(t)
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Create(ctx, actorOf(d.alice), shiftswap.CreateSwapRequest{TargetID: d.bob.ID.String(), Date: "2025-09-16"})
		assert.ErrorIs(t, err, shiftswaperrors.ErrRequesterNotRostered)
	})

	t.Run("negative target not rostered", func(t *testing.T) {
		d := setupSwapTest(t)
		other, _ := domain.ParseDate("2025-09-16")
		d.store.SetRoster(d.alice.ID, other, domain.ShiftMorning)
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Create(ctx, actorOf(d.alice), shiftswap.CreateSwapRequest{TargetID: d.bob.ID.String(), Date: "2025-09-16"})
		assert.ErrorIs(t, err, shiftswaperrors.ErrTargetNotRostered)
	})

	t.Run("negative client shift does not match roster", func(t *testing.T) {
		d := setupSwapTest(t)
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Create(ctx, actorOf(d.alice), shiftswap.CreateSwapRequest{
			TargetID: d.bob.ID.String(), Date: swapDay, TargetShift: domain.ShiftEvening,
		})
		assert.ErrorIs(t, err, shiftswaperrors.ErrShiftMismatch)
	})
}

func TestSwapService_AcceptThenApprove(t *testing.T) {
	ctx := context.Background()
	d := setupSwapTest(t)
	swap := d.create(t)

	expectTx(t, d.sqlMock, true)
	out, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusPendingHOD, out.Swap.Status)
	d.dispatcher.Dispatch(ctx, out.Notices)

	before := len(d.store.Notifications())

	expectTx(t, d.sqlMock, true)
	out, err = d.service.Decide(ctx, actorOf(d.hod), swap.Swap.ID, true)
	require.NoError(t, err)
	d.dispatcher.Dispatch(ctx, out.Notices)

	assert.Equal(t, domain.SwapStatusApproved, out.Swap.Status)
	assert.Equal(t, domain.ShiftNight, d.shiftOf(t, d.alice.ID, swapDay))
	assert.Equal(t, domain.ShiftMorning, d.shiftOf(t, d.bob.ID, swapDay))
	assert.Equal(t, 2, len(d.store.Notifications())-before)

	assert.Contains(t, d.notificationsFor(d.alice.ID),
		"Your shift swap request for 2025-09-15 was accepted by bob and is now pending HOD approval.")
	assert.Contains(t, d.notificationsFor(d.alice.ID), "Your shift swap request for 2025-09-15 has been approved by HOD.")
	assert.Contains(t, d.notificationsFor(d.bob.ID), "The shift swap for 2025-09-15 you accepted has been approved by HOD.")
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestSwapService_ApproveLeavesOtherDatesAlone(t *testing.T) {
	ctx := context.Background()
	d := setupSwapTest(t)
	other, _ := domain.ParseDate("2025-09-16")
	d.store.SetRoster(d.alice.ID, other, domain.ShiftEvening)
	d.store.SetRoster(d.bob.ID, other, domain.ShiftMorning)
	swap := d.create(t)

	expectTx(t, d.sqlMock, true)
	_, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, true)
	require.NoError(t, err)
	expectTx(t, d.sqlMock, true)
	_, err = d.service.Decide(ctx, actorOf(d.hod), swap.Swap.ID, true)
	require.NoError(t, err)

	assert.Equal(t, domain.ShiftEvening, d.shiftOf(t, d.alice.ID, "2025-09-16"))
	assert.Equal(t, domain.ShiftMorning, d.shiftOf(t, d.bob.ID, "2025-09-16"))
}

func TestSwapService_TargetRejects(t *testing.T) {
	ctx := context.Background()
	d := setupSwapTest(t)
	swap := d.create(t)

	expectTx(t, d.sqlMock, true)
	out, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, false)
	require.NoError(t, err)
	d.dispatcher.Dispatch(ctx, out.Notices)

	assert.Equal(t, domain.SwapStatusRejectedByTarget, out.Swap.Status)
	assert.Equal(t, []string{"Your shift swap request for 2025-09-15 was declined by bob."}, d.notificationsFor(d.alice.ID))
	assert.Equal(t, domain.ShiftMorning, d.shiftOf(t, d.alice.ID, swapDay))
	assert.Equal(t, domain.ShiftNight, d.shiftOf(t, d.bob.ID, swapDay))

	t.Run("negative terminal swap cannot be answered again", func(t *testing.T) {
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, true)
		assert.ErrorIs(t, err, shiftswaperrors.ErrInvalidStatusTransition)
	})
}

func TestSwapService_SystemRejects(t *testing.T) {
	ctx := context.Background()
	d := setupSwapTest(t)
	swap := d.create(t)

	// Bob has used up the leave quota after the swap was proposed.
	d.store.SetLimit(domain.RequestTypeLeave, 1)
	date, _ := domain.ParseDate("2025-09-03")
	require.NoError(t, d.store.CreateRequest(ctx, &domain.Request{UserID: d.bob.ID, Type: domain.RequestTypeLeave, Date: date, Reason: "r"}))

	expectTx(t, d.sqlMock, true)
	out, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, true)
	require.NoError(t, err)
	d.dispatcher.Dispatch(ctx, out.Notices)

	assert.Equal(t, domain.SwapStatusRejectedBySystem, out.Swap.Status)
	msg := "You have reached your monthly limit of 1 leave requests."
	assert.Contains(t, d.notificationsFor(d.alice.ID), "Your shift swap request for 2025-09-15 was rejected by system: "+msg)
	assert.Contains(t, d.notificationsFor(d.bob.ID), "Shift swap request for 2025-09-15 was rejected by system: "+msg)
}

func TestSwapService_DecideGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("negative HOD cannot approve before target answers", func(t *testing.T) {
		d := setupSwapTest(t)
		swap := d.create(t)

		expectTx(t, d.sqlMock, false)
		_, err := d.service.Decide(ctx, actorOf(d.hod), swap.Swap.ID, true)
		assert.ErrorIs(t, err, shiftswaperrors.ErrInvalidStatusTransition)

		got, err := d.service.GetByID(ctx, actorOf(d.hod), swap.Swap.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SwapStatusPendingTarget, got.Status)
	})

	t.Run("negative employee cannot decide", func(t *testing.T) {
		d := setupSwapTest(t)
		swap := d.create(t)
		_, err := d.service.Decide(ctx, actorOf(d.alice), swap.Swap.ID, true)
		assert.ErrorIs(t, err, shiftswaperrors.ErrNotHOD)
	})

	t.Run("negative only target responds", func(t *testing.T) {
		d := setupSwapTest(t)
		swap := d.create(t)
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Respond(ctx, actorOf(d.alice), swap.Swap.ID, true)
		assert.ErrorIs(t, err, shiftswaperrors.ErrNotTarget)
	})

	t.Run("negative roster changed before approval", func(t *testing.T) {
		d := setupSwapTest(t)
		swap := d.create(t)
		expectTx(t, d.sqlMock, true)
		_, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, true)
		require.NoError(t, err)

		date, _ := domain.ParseDate(swapDay)
		d.store.SetRoster(d.bob.ID, date, domain.ShiftEvening)

		expectTx(t, d.sqlMock, false)
		_, err = d.service.Decide(ctx, actorOf(d.hod), swap.Swap.ID, true)
		assert.ErrorIs(t, err, shiftswaperrors.ErrRosterChanged)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("success HOD rejects notifies both", func(t *testing.T) {
		d := setupSwapTest(t)
		swap := d.create(t)
		expectTx(t, d.sqlMock, true)
		_, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, true)
		require.NoError(t, err)

		expectTx(t, d.sqlMock, true)
		out, err := d.service.Decide(ctx, actorOf(d.hod), swap.Swap.ID, false)
		require.NoError(t, err)
		assert.Equal(t, domain.SwapStatusRejectedByHOD, out.Swap.Status)
		require.Len(t, out.Notices, 2)
		assert.Equal(t, "Your shift swap request for 2025-09-15 has been rejected by HOD.", out.Notices[0].Message)
		assert.Equal(t, domain.ShiftMorning, d.shiftOf(t, d.alice.ID, swapDay))
	})

	t.Run("negative store failure surfaces", func(t *testing.T) {
		d := setupSwapTest(t)
		swap := d.create(t)
		d.store.FailOn("FindSwapByID", errors.New("db down"))
		expectTx(t, d.sqlMock, false)
		_, err := d.service.Respond(ctx, actorOf(d.bob), swap.Swap.ID, true)
		assert.EqualError(t, err, "db down")
	})
}

func TestSwapService_Visibility(t *testing.T) {
	ctx := context.Background()
	d := setupSwapTest(t)
	swap := d.create(t)
	carol := d.store.AddUser("carol", domain.RoleEmployee)

	incoming, err := d.service.Incoming(ctx, actorOf(d.bob))
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "alice", incoming[0].RequesterName)

	none, err := d.service.Incoming(ctx, actorOf(d.alice))
	require.NoError(t, err)
	assert.Empty(t, none)

	mine, err := d.service.GetAll(ctx, actorOf(d.alice), shiftswap.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := d.service.GetAll(ctx, actorOf(carol), shiftswap.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = d.service.GetByID(ctx, actorOf(carol), swap.Swap.ID)
	assert.ErrorIs(t, err, shiftswaperrors.ErrSwapNotFound)

	all, err := d.service.GetAll(ctx, actorOf(d.hod), shiftswap.ListFilter{Status: domain.SwapStatusPendingTarget})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
