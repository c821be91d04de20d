package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	attendanceerrors "github.com/Ashmit12092000/ems/internal/attendance/errors"
	"github.com/Ashmit12092000/ems/internal/events"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordCall struct {
	userID uuid.UUID
	date   string
}

// fakeRecorder fails its first failFirst calls with err, or every call when
// failFirst is zero.
type fakeRecorder struct {
	calls     []recordCall
	err       error
	failFirst int
}

func (r *fakeRecorder) RecordLeave(_ context.Context, userID uuid.UUID, date string) error {
	r.calls = append(r.calls, recordCall{userID, date})
	if r.failFirst > 0 && len(r.calls) > r.failFirst {
		return nil
	}
	return r.err
}

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafkago.Message
	committed []int64
	fetchErrs int
	fetches   int
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if r.fetchErrs > 0 {
		r.fetchErrs--
		return kafkago.Message{}, errors.New("broker unavailable")
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func shortRetry(t *testing.T) {
	t.Helper()
	prev, prevMax := retryDelay, maxRetryDelay
	retryDelay, maxRetryDelay = time.Millisecond, 4*time.Millisecond
	t.Cleanup(func() { retryDelay, maxRetryDelay = prev, prevMax })
}

func message(t *testing.T, offset int64, ev events.RequestStatusChangedEvent) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body}
}

func TestHandleRequestStatusChanged(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()
	userID := uuid.New()

	approvedLeave := events.RequestStatusChangedEvent{
		EventType:   "request_status_changed",
		RequestID:   uuid.NewString(),
		UserID:      userID.String(),
		RequestType: "leave",
		Date:        "2025-09-15",
		Status:      "approved",
		OccurredAt:  time.Now(),
	}

	t.Run("success approved leave records attendance", func(t *testing.T) {
		rec := &fakeRecorder{}
		require.NoError(t, handleRequestStatusChanged(ctx, message(t, 1, approvedLeave), rec, log))
		require.Len(t, rec.calls, 1)
		assert.Equal(t, userID, rec.calls[0].userID)
		assert.Equal(t, "2025-09-15", rec.calls[0].date)
	})

	t.Run("skip rejected or non leave", func(t *testing.T) {
		rec := &fakeRecorder{}
		rejected := approvedLeave
		rejected.Status = "rejected"
		permission := approvedLeave
		permission.RequestType = "permission"

		require.NoError(t, handleRequestStatusChanged(ctx, message(t, 1, rejected), rec, log))
		require.NoError(t, handleRequestStatusChanged(ctx, message(t, 2, permission), rec, log))
		assert.Empty(t, rec.calls)
	})

	t.Run("skip undecodable", func(t *testing.T) {
		rec := &fakeRecorder{}
		assert.NoError(t, handleRequestStatusChanged(ctx, kafkago.Message{Value: []byte("{")}, rec, log))
		assert.Empty(t, rec.calls)
	})

	t.Run("negative recorder error is retried", func(t *testing.T) {
		rec := &fakeRecorder{err: errors.New("db down")}
		assert.Error(t, handleRequestStatusChanged(ctx, message(t, 1, approvedLeave), rec, log))
	})

	t.Run("skip invalid date", func(t *testing.T) {
		rec := &fakeRecorder{err: attendanceerrors.ErrInvalidDateFormat}
		bad := approvedLeave
		bad.Date = "15/09/2025"
		assert.NoError(t, handleRequestStatusChanged(ctx, message(t, 1, bad), rec, log))
		assert.Len(t, rec.calls, 1)
	})
}

func TestConsumeRequestStatusChanged_CommitsHandledMessages(t *testing.T) {
	userID := uuid.New()
	ev := events.RequestStatusChangedEvent{UserID: userID.String(), RequestType: "leave", Status: "approved", Date: "2025-09-15"}

	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		msgs:   []kafkago.Message{message(t, 10, ev), {Offset: 11, Value: []byte("garbage")}},
		cancel: cancel,
	}
	rec := &fakeRecorder{}

	ConsumeRequestStatusChanged(ctx, reader, rec, zap.NewNop())

	assert.Equal(t, []int64{10, 11}, reader.committed)
	assert.Len(t, rec.calls, 1)
}

func TestConsumeRequestStatusChanged_RetriesBeforeMovingOn(t *testing.T) {
	shortRetry(t)
	ev := events.RequestStatusChangedEvent{UserID: uuid.NewString(), RequestType: "leave", Status: "approved", Date: "2025-09-15"}
	other := ev
	other.Date = "2025-09-16"

	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		msgs:   []kafkago.Message{message(t, 1, ev), message(t, 2, other)},
		cancel: cancel,
	}
	rec := &fakeRecorder{err: errors.New("connection reset"), failFirst: 1}

	ConsumeRequestStatusChanged(ctx, reader, rec, zap.NewNop())

	assert.Equal(t, []int64{1, 2}, reader.committed)
	require.Len(t, rec.calls, 3)
	assert.Equal(t, "2025-09-15", rec.calls[0].date)
	assert.Equal(t, "2025-09-15", rec.calls[1].date)
	assert.Equal(t, "2025-09-16", rec.calls[2].date)
}

func TestConsumeRequestStatusChanged_StopsRetryingOnCancel(t *testing.T) {
	shortRetry(t)
	ev := events.RequestStatusChangedEvent{UserID: uuid.NewString(), RequestType: "leave", Status: "approved", Date: "2025-09-15"}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	reader := &fakeReader{msgs: []kafkago.Message{message(t, 7, ev)}, cancel: cancel}
	rec := &fakeRecorder{err: errors.New("db down")}

	ConsumeRequestStatusChanged(ctx, reader, rec, zap.NewNop())

	assert.Empty(t, reader.committed)
	assert.GreaterOrEqual(t, len(rec.calls), 2)
}

func TestConsumeRequestStatusChanged_BacksOffOnFetchError(t *testing.T) {
	shortRetry(t)
	ev := events.RequestStatusChangedEvent{UserID: uuid.NewString(), RequestType: "leave", Status: "approved", Date: "2025-09-15"}

	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		msgs:      []kafkago.Message{message(t, 3, ev)},
		fetchErrs: 2,
		cancel:    cancel,
	}
	rec := &fakeRecorder{}

	start := time.Now()
	ConsumeRequestStatusChanged(ctx, reader, rec, zap.NewNop())

	assert.Equal(t, []int64{3}, reader.committed)
	assert.Equal(t, 4, reader.fetches)
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
}
