package feed

import (
	"fmt"
	"time"

	"reelstgram-backend/internal/models"
)

// Viewer resolution states. Not-found conditions are renderable states,
// never errors or panics.
const (
	StateOK              = "ok"
	StateEmpty           = "empty"
	StatePostNotFound    = "post_not_found"
	StateChannelNotFound = "channel_not_found"
)

const (
	// GestureThreshold is the displacement a pan or wheel delta must
	// cross before it counts as a navigation gesture, in logical pixels.
	GestureThreshold = 50.0

	// TransitionDuration is how long the enter/exit animation runs.
	TransitionDuration = 400 * time.Millisecond

	// transitionTimeout bounds the in-flight guard. If the completion
	// callback never arrives (viewer torn down mid-animation), the guard
	// expires on its own instead of wedging the session.
	transitionTimeout = 3 * TransitionDuration
)

// ViewFunc is the externally-owned view-increment mutator.
type ViewFunc func(channelUniqueId string, postId uint)

// Entry is one feed position: a post plus the channel it came from, so
// aggregated feeds keep view keys scoped per source channel.
type Entry struct {
	ChannelUniqueId string      `json:"channelUniqueId"`
	ChannelName     string      `json:"channelName"`
	Post            models.Post `json:"post"`
}

// Viewer presents one post at a time from an ordered sequence and moves
// forward or backward on discrete gesture events. All methods are meant
// to be driven from a single goroutine, matching the event-driven
// single-threaded model of the reference clients.
type Viewer struct {
	state         string
	entries       []Entry
	currentIndex  int
	direction     int
	viewedKeys    map[string]struct{}
	transitioning bool
	inFlightUntil time.Time
	onView        ViewFunc
	now           func() time.Time
}

// NewViewer mounts a single-channel feed session at the post addressed
// by targetPostId. A nil channel resolves to channel-not-found; an empty
// channel addressed at post id 0 is the explicit "no posts yet" state,
// distinct from post-not-found; an unknown post id in a non-empty
// channel falls back to index 0. The view side effect for the initial
// position fires during the mount.
func NewViewer(channel *models.Channel, targetPostId uint, onView ViewFunc) *Viewer {
	v := &Viewer{
		viewedKeys: map[string]struct{}{},
		onView:     onView,
		now:        time.Now,
	}

	if channel == nil {
		v.state = StateChannelNotFound
		return v
	}
	if len(channel.Posts) == 0 {
		if targetPostId == 0 {
			v.state = StateEmpty
		} else {
			v.state = StatePostNotFound
		}
		return v
	}

	for _, post := range channel.Posts {
		v.entries = append(v.entries, Entry{
			ChannelUniqueId: channel.UniqueId,
			ChannelName:     channel.Name,
			Post:            post,
		})
	}

	v.state = StateOK
	v.currentIndex = 0
	for i, entry := range v.entries {
		if entry.Post.Id == targetPostId {
			v.currentIndex = i
			break
		}
	}
	v.markViewed()
	return v
}

// NewSubscribedViewer mounts an aggregated feed over the posts of the
// given channels, in channel order, starting at the first post.
func NewSubscribedViewer(subscribed []models.Channel, onView ViewFunc) *Viewer {
	v := &Viewer{
		viewedKeys: map[string]struct{}{},
		onView:     onView,
		now:        time.Now,
	}
	for _, ch := range subscribed {
		for _, post := range ch.Posts {
			v.entries = append(v.entries, Entry{
				ChannelUniqueId: ch.UniqueId,
				ChannelName:     ch.Name,
				Post:            post,
			})
		}
	}
	if len(v.entries) == 0 {
		v.state = StateEmpty
		return v
	}
	v.state = StateOK
	v.markViewed()
	return v
}

func (v *Viewer) State() string { return v.state }

func (v *Viewer) Len() int { return len(v.entries) }

func (v *Viewer) CurrentIndex() int { return v.currentIndex }

// Direction reports the last transition direction: -1 backward, 0 none
// yet, +1 forward. The presentation layer uses it to pick which side the
// incoming post slides in from.
func (v *Viewer) Direction() int { return v.direction }

// Current returns the entry under the cursor, or false when the viewer
// is in a non-presentable state.
func (v *Viewer) Current() (Entry, bool) {
	if v.state != StateOK {
		return Entry{}, false
	}
	return v.entries[v.currentIndex], true
}

// Advance moves the cursor by delta. Requests arriving while a
// transition is in flight are dropped, not queued; out-of-range requests
// are no-ops that leave index and direction unchanged. Returns whether
// the cursor moved.
func (v *Viewer) Advance(delta int) bool {
	if v.state != StateOK || delta == 0 {
		return false
	}
	if v.transitioning {
		if v.now().Before(v.inFlightUntil) {
			return false
		}
		// Completion callback went missing; the deadline re-arms us.
		v.transitioning = false
	}

	next := v.currentIndex + delta
	if next < 0 || next >= len(v.entries) {
		return false
	}

	if delta > 0 {
		v.direction = 1
	} else {
		v.direction = -1
	}
	v.currentIndex = next
	v.transitioning = true
	v.inFlightUntil = v.now().Add(transitionTimeout)
	v.markViewed()
	return true
}

// FinishTransition is the animation-complete callback; it re-enables
// gesture handling.
func (v *Viewer) FinishTransition() {
	v.transitioning = false
}

// Pan feeds a drag gesture's vertical displacement. Positive
// displacement (swipe up) advances, negative goes back; anything under
// the threshold is ignored.
func (v *Viewer) Pan(displacement float64) bool {
	return v.gesture(displacement)
}

// Wheel feeds a scroll delta. Same threshold and mapping as Pan; both
// sources funnel into Advance so the in-flight precondition applies
// uniformly regardless of input source.
func (v *Viewer) Wheel(delta float64) bool {
	return v.gesture(delta)
}

func (v *Viewer) gesture(delta float64) bool {
	switch {
	case delta > GestureThreshold:
		return v.Advance(1)
	case delta < -GestureThreshold:
		return v.Advance(-1)
	}
	return false
}

// markViewed fires the view-increment side effect at most once per
// (channel, post) pair for the lifetime of this viewer. The key set is
// never persisted: remounting the feed resets it and the same post
// counts again, which is the intended low-fidelity analytics behavior.
func (v *Viewer) markViewed() {
	entry := v.entries[v.currentIndex]
	key := fmt.Sprintf("%s-%d", entry.ChannelUniqueId, entry.Post.Id)
	if _, seen := v.viewedKeys[key]; seen {
		return
	}
	v.viewedKeys[key] = struct{}{}
	if v.onView != nil {
		v.onView(entry.ChannelUniqueId, entry.Post.Id)
	}
}
