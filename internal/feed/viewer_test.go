package feed

import (
	"fmt"
	"testing"
	"time"

	"reelstgram-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChannel(postCount int) *models.Channel {
	ch := &models.Channel{
		Id:       1,
		UniqueId: "abc12345",
		Name:     "Test",
	}
	for i := 1; i <= postCount; i++ {
		ch.Posts = append(ch.Posts, models.Post{
			Id:  uint(i),
			Url: fmt.Sprintf("clip-%d.mp4", i),
		})
	}
	return ch
}

type viewRecorder struct {
	calls []string
}

func (r *viewRecorder) record(channelUniqueId string, postId uint) {
	r.calls = append(r.calls, fmt.Sprintf("%s-%d", channelUniqueId, postId))
}

func TestNewViewerResolvesTarget(t *testing.T) {
	t.Run("target post id found", func(t *testing.T) {
		v := NewViewer(testChannel(3), 2, nil)
		assert.Equal(t, StateOK, v.State())
		assert.Equal(t, 1, v.CurrentIndex())
	})

	t.Run("unknown post id falls back to first post", func(t *testing.T) {
		v := NewViewer(testChannel(3), 99, nil)
		assert.Equal(t, StateOK, v.State())
		assert.Equal(t, 0, v.CurrentIndex())
	})

	t.Run("missing channel", func(t *testing.T) {
		v := NewViewer(nil, 0, nil)
		assert.Equal(t, StateChannelNotFound, v.State())
		_, ok := v.Current()
		assert.False(t, ok)
	})

	t.Run("empty channel addressed at post 0 is empty, not not-found", func(t *testing.T) {
		v := NewViewer(testChannel(0), 0, nil)
		assert.Equal(t, StateEmpty, v.State())
	})

	t.Run("empty channel addressed at a real post id", func(t *testing.T) {
		v := NewViewer(testChannel(0), 3, nil)
		assert.Equal(t, StatePostNotFound, v.State())
	})
}

func TestAdvanceBounds(t *testing.T) {
	v := NewViewer(testChannel(2), 1, nil)

	// Backward from index 0 is a no-op: index and direction untouched.
	assert.False(t, v.Advance(-1))
	assert.Equal(t, 0, v.CurrentIndex())
	assert.Equal(t, 0, v.Direction())

	require.True(t, v.Advance(1))
	assert.Equal(t, 1, v.CurrentIndex())
	assert.Equal(t, 1, v.Direction())
	v.FinishTransition()

	// Forward past the last post is a no-op too.
	assert.False(t, v.Advance(1))
	assert.Equal(t, 1, v.CurrentIndex())
	assert.Equal(t, 1, v.Direction())
}

func TestAdvanceDroppedWhileInFlight(t *testing.T) {
	v := NewViewer(testChannel(3), 1, nil)

	require.True(t, v.Advance(1))
	assert.Equal(t, 1, v.CurrentIndex())

	// A second gesture during the transition is dropped, not queued.
	assert.False(t, v.Advance(1))
	assert.False(t, v.Advance(-1))
	assert.Equal(t, 1, v.CurrentIndex())

	v.FinishTransition()
	require.True(t, v.Advance(1))
	assert.Equal(t, 2, v.CurrentIndex())
}

func TestTransitionDeadlineUnwedgesViewer(t *testing.T) {
	v := NewViewer(testChannel(3), 1, nil)

	now := time.Now()
	v.now = func() time.Time { return now }

	require.True(t, v.Advance(1))
	assert.False(t, v.Advance(1))

	// The completion callback never arrives; once the deadline passes
	// the guard expires on its own.
	now = now.Add(transitionTimeout + time.Millisecond)
	require.True(t, v.Advance(1))
	assert.Equal(t, 2, v.CurrentIndex())
}

func TestViewedOncePerMountedSession(t *testing.T) {
	rec := &viewRecorder{}
	v := NewViewer(testChannel(2), 1, rec.record)

	// The initial mount views the first post.
	require.Equal(t, []string{"abc12345-1"}, rec.calls)

	require.True(t, v.Advance(1))
	v.FinishTransition()
	require.Equal(t, []string{"abc12345-1", "abc12345-2"}, rec.calls)

	// Coming back to an already-viewed post does not count again.
	require.True(t, v.Advance(-1))
	v.FinishTransition()
	require.True(t, v.Advance(1))
	v.FinishTransition()
	assert.Len(t, rec.calls, 2)

	// A remount starts a fresh session and the same post counts again.
	NewViewer(testChannel(2), 1, rec.record)
	assert.Len(t, rec.calls, 3)
}

func TestGestures(t *testing.T) {
	rec := &viewRecorder{}
	v := NewViewer(testChannel(3), 1, rec.record)

	// Under the threshold nothing happens.
	assert.False(t, v.Wheel(30))
	assert.False(t, v.Pan(-49.9))
	assert.Equal(t, 0, v.CurrentIndex())

	require.True(t, v.Wheel(80))
	assert.Equal(t, 1, v.CurrentIndex())

	// Both sources are dropped by the same in-flight precondition.
	assert.False(t, v.Pan(80))
	assert.False(t, v.Wheel(80))
	assert.Equal(t, 1, v.CurrentIndex())

	v.FinishTransition()
	require.True(t, v.Pan(-120))
	assert.Equal(t, 0, v.CurrentIndex())
	assert.Equal(t, -1, v.Direction())
}

func TestSubscribedViewerAggregates(t *testing.T) {
	a := testChannel(2)
	b := *testChannel(1)
	b.UniqueId = "def67890"
	b.Name = "Other"

	rec := &viewRecorder{}
	v := NewSubscribedViewer([]models.Channel{*a, b}, rec.record)

	require.Equal(t, StateOK, v.State())
	assert.Equal(t, 3, v.Len())
	require.Equal(t, []string{"abc12345-1"}, rec.calls)

	require.True(t, v.Advance(1))
	v.FinishTransition()
	require.True(t, v.Advance(1))
	v.FinishTransition()

	// Posts share display ids across channels, but view keys are scoped
	// per source channel.
	assert.Equal(t, []string{"abc12345-1", "abc12345-2", "def67890-1"}, rec.calls)

	entry, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, "Other", entry.ChannelName)
}

func TestSubscribedViewerEmpty(t *testing.T) {
	v := NewSubscribedViewer(nil, nil)
	assert.Equal(t, StateEmpty, v.State())
	_, ok := v.Current()
	assert.False(t, ok)
}
