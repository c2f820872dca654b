package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"reelstgram-backend/internal/channels"
	"reelstgram-backend/internal/feed"
	"reelstgram-backend/internal/models"

	"github.com/gofiber/fiber/v3"
)

// incrementView is the externally-owned view mutator handed to every
// feed session. Failures only cost a log line; the session's viewed-key
// bookkeeping is unaffected.
func incrementView(channelUniqueId string, postId uint) {
	if err := service.IncrementView(channelUniqueId, postId); err != nil {
		log.Printf("feed: failed to increment view for %s/%d: %v", channelUniqueId, postId, err)
	}
}

// OpenFeed mounts a feed session. Not-found conditions come back as
// renderable states in the body, never as exceptions: a missing channel
// is "channel_not_found", an empty channel addressed at post id 0 is
// "empty" and anything else unresolvable is "post_not_found". The view
// side effect for the initial position fires during the mount.
func OpenFeed(c fiber.Ctx) error {
	var data OpenFeedRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	var viewer *feed.Viewer
	if data.Subscribed {
		subscribed, err := service.SubscribedChannels(currentUser(c))
		if err != nil {
			return serviceError(c, err)
		}
		viewer = feed.NewSubscribedViewer(subscribed, incrementView)
	} else {
		var channel *models.Channel
		found, err := service.Get(data.ChannelUniqueId)
		if err == nil {
			channel = &found
		} else if !errors.Is(err, channels.ErrChannelNotFound) {
			return serviceError(c, err)
		}
		viewer = feed.NewViewer(channel, data.PostId, incrementView)

		if channel != nil {
			events.Log("link_click", map[string]any{
				"channelId":   channel.UniqueId,
				"channelName": channel.Name,
			})
		}
	}

	session := feeds.Open(viewer)
	return c.JSON(feedResponse(session))
}

// AdvanceFeed moves the session cursor by a discrete delta.
func AdvanceFeed(c fiber.Ctx) error {
	var data AdvanceFeedRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	session, err := feeds.Get(data.SessionId)
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(ErrorResponse{
			Message: "Feed session not found",
		})
	}

	session.Do(func(v *feed.Viewer) {
		v.Advance(data.Delta)
	})
	return c.JSON(feedResponse(session))
}

// FeedGesture feeds a raw pan displacement or wheel delta into the
// session. Both sources funnel into the same advance operation, so the
// single-in-flight-transition rule holds across sources.
func FeedGesture(c fiber.Ctx) error {
	var data GestureRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	session, err := feeds.Get(data.SessionId)
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(ErrorResponse{
			Message: "Feed session not found",
		})
	}

	session.Do(func(v *feed.Viewer) {
		switch data.Source {
		case "pan":
			v.Pan(data.Delta)
		default:
			v.Wheel(data.Delta)
		}
	})
	return c.JSON(feedResponse(session))
}

// FinishTransition is the animation-complete callback; it re-enables
// gesture handling for the session.
func FinishTransition(c fiber.Ctx) error {
	var data FeedSessionRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	session, err := feeds.Get(data.SessionId)
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(ErrorResponse{
			Message: "Feed session not found",
		})
	}

	session.Do(func(v *feed.Viewer) {
		v.FinishTransition()
	})
	return c.JSON(feedResponse(session))
}

// CloseFeed unmounts the session. Reopening the same posts later starts
// a fresh once-per-session view guard, so views count again.
func CloseFeed(c fiber.Ctx) error {
	var data FeedSessionRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	feeds.Close(data.SessionId)
	return c.JSON(MessageResponse{
		Message: "Feed session closed",
	})
}

func feedResponse(session *feed.Session) FeedResponse {
	var resp FeedResponse
	session.Do(func(v *feed.Viewer) {
		resp = FeedResponse{
			SessionId: session.Id,
			State:     v.State(),
			Index:     v.CurrentIndex(),
			Total:     v.Len(),
			Direction: v.Direction(),
		}
		if entry, ok := v.Current(); ok {
			resp.ChannelUniqueId = entry.ChannelUniqueId
			resp.ChannelName = entry.ChannelName
			resp.Post = postView(entry.Post)
		}
	})
	return resp
}
