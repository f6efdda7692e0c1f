package live_test

import (
	"errors"
	"testing"

	"bolpurmart/internal/pkg/live"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_PublishDeliversLatest(t *testing.T) {
	s := live.NewStream[int](nil)

	require.True(t, s.Publish(1))
	require.True(t, s.Publish(2))
	require.True(t, s.Publish(3))

	snap := <-s.Updates()
	require.NoError(t, snap.Err)
	assert.Equal(t, 3, snap.Value)

	select {
	case extra := <-s.Updates():
		t.Fatalf("unexpected extra snapshot %v", extra)
	default:
	}
}

func TestStream_FailDeliversError(t *testing.T) {
	s := live.NewStream[string](nil)
	boom := errors.New("query failed")

	require.True(t, s.Fail(boom))

	snap := <-s.Updates()
	require.ErrorIs(t, snap.Err, boom)
	assert.Empty(t, snap.Value)
	assert.False(t, s.IsClosed())
}

func TestStream_CloseExactlyOnce(t *testing.T) {
	released := 0
	s := live.NewStream[int](func() { released++ })

	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Close(), live.ErrStreamClosed)

	assert.Equal(t, 1, released)
	assert.True(t, s.IsClosed())

	select {
	case <-s.Done():
	default:
		t.Fatal("done channel must be closed")
	}
}

func TestStream_PublishAfterCloseIsDropped(t *testing.T) {
	s := live.NewStream[int](nil)
	require.NoError(t, s.Close())

	assert.False(t, s.Publish(7))
	assert.False(t, s.Fail(errors.New("late")))
}
