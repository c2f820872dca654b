package models

import (
	"strings"
	"time"
)

const (
	PostTypeImage = "image"
	PostTypeVideo = "video"
)

type Channel struct {
	Id          uint     `json:"id"`
	UniqueId    string   `json:"uniqueId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Avatar      string   `json:"avatar"`
	OwnerId     string   `json:"ownerId"`
	Admins      []string `json:"admins"`
	Subscribers uint     `json:"subscribers"`
	Posts       []Post   `json:"posts"`
}

type Post struct {
	Id       uint      `json:"id"`
	Uid      string    `json:"uid"`
	Type     string    `json:"type"`
	Url      string    `json:"url"`
	Caption  string    `json:"caption"`
	Likes    uint      `json:"likes"`
	Views    uint      `json:"views"`
	Buttons  []Button  `json:"buttons"`
	Comments []Comment `json:"comments"`
}

type Button struct {
	Text string `json:"text"`
	Url  string `json:"url"`
}

type Comment struct {
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	UserId             string   `json:"userId"`
	Username           string   `json:"username"`
	Avatar             string   `json:"avatar"`
	SubscribedChannels []string `json:"subscribedChannels"`
}

type AnalyticsEvent struct {
	EventType string         `json:"eventType"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// PostTypeFor derives the media type from the asset URL. Only .mp4 counts
// as video; everything else, webm included, renders as image in the
// reference client.
func PostTypeFor(url string) string {
	if strings.HasSuffix(strings.ToLower(url), ".mp4") {
		return PostTypeVideo
	}
	return PostTypeImage
}

// Subscribed reports membership of a channel in the user's subscription set.
func (u *User) Subscribed(channelUniqueId string) bool {
	for _, id := range u.SubscribedChannels {
		if id == channelUniqueId {
			return true
		}
	}
	return false
}
