package controllers

import (
	"reelstgram-backend/internal/feed"
	"reelstgram-backend/internal/models"
)

type DataResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message" example:"Example"`
}

// UploadResponse and UploadError follow the upload collaborator
// contract: {url} on success, {error} on failure.
type UploadResponse struct {
	Url string `json:"url"`
}

type UploadError struct {
	Error string `json:"error" example:"No file uploaded"`
}

type CreateChannelRequest struct {
	Name        string `json:"name" example:"Daily Reels"`
	Description string `json:"description" example:"Short clips every day"`
}

type EditChannelRequest struct {
	ChannelUniqueId string   `json:"channelUniqueId" example:"f3a81c2d"`
	Description     string   `json:"description" example:"Short clips every day"`
	Avatar          string   `json:"avatar" example:"/uploads/avatar.png"`
	Admins          []string `json:"admins"`
}

type AddContentRequest struct {
	ChannelUniqueId string          `json:"channelUniqueId" example:"f3a81c2d"`
	Url             string          `json:"url" example:"/uploads/clip.mp4"`
	Caption         string          `json:"caption" example:"First clip"`
	Buttons         []models.Button `json:"buttons"`
}

type PostActionRequest struct {
	ChannelUniqueId string `json:"channelUniqueId" example:"f3a81c2d"`
	PostId          uint   `json:"postId" example:"1"`
}

type CommentRequest struct {
	ChannelUniqueId string `json:"channelUniqueId" example:"f3a81c2d"`
	PostId          uint   `json:"postId" example:"1"`
	Text            string `json:"text" example:"Nice one"`
}

type SubscriptionRequest struct {
	ChannelUniqueId string `json:"channelUniqueId" example:"f3a81c2d"`
}

type ProfileRequest struct {
	Username string `json:"username" example:"default-user"`
}

type OpenFeedRequest struct {
	ChannelUniqueId string `json:"channelUniqueId" example:"f3a81c2d"`
	PostId          uint   `json:"postId" example:"1"`
	Subscribed      bool   `json:"subscribed" example:"false"`
}

type AdvanceFeedRequest struct {
	SessionId string `json:"sessionId"`
	Delta     int    `json:"delta" example:"1"`
}

type GestureRequest struct {
	SessionId string  `json:"sessionId"`
	Source    string  `json:"source" example:"wheel"`
	Delta     float64 `json:"delta" example:"80"`
}

type FeedSessionRequest struct {
	SessionId string `json:"sessionId"`
}

// PostView is a post prepared for presentation: the caption comes with
// link spans and a 50-character preview for the expand affordance.
type PostView struct {
	Id               uint             `json:"id"`
	Uid              string           `json:"uid"`
	Type             string           `json:"type"`
	Url              string           `json:"url"`
	Caption          string           `json:"caption"`
	CaptionPreview   string           `json:"captionPreview"`
	CaptionTruncated bool             `json:"captionTruncated"`
	CaptionSegments  []feed.Segment   `json:"captionSegments"`
	Likes            uint             `json:"likes"`
	Views            uint             `json:"views"`
	Buttons          []models.Button  `json:"buttons"`
	Comments         []models.Comment `json:"comments"`
}

type FeedResponse struct {
	SessionId       string    `json:"sessionId"`
	State           string    `json:"state" example:"ok"`
	Index           int       `json:"index"`
	Total           int       `json:"total"`
	Direction       int       `json:"direction"`
	ChannelUniqueId string    `json:"channelUniqueId"`
	ChannelName     string    `json:"channelName"`
	Post            *PostView `json:"post,omitempty"`
}

type SubscriptionResponse struct {
	ChannelUniqueId string `json:"channelUniqueId"`
	Subscribed      bool   `json:"subscribed"`
	Subscribers     uint   `json:"subscribers"`
}

type ChannelResponse struct {
	models.Channel
	DescriptionSegments []feed.Segment `json:"descriptionSegments"`
	Subscribed          bool           `json:"subscribed"`
}
