package controllers

import (
	"encoding/json"

	"reelstgram-backend/internal/channels"
	"reelstgram-backend/internal/feed"
	"reelstgram-backend/internal/models"

	"github.com/gofiber/fiber/v3"
)

// AddContent appends a post to a channel after a successful upload. The
// caller must hold content-write privilege on the channel.
func AddContent(c fiber.Ctx) error {
	var data AddContentRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.ChannelUniqueId == "" || data.Url == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Missing required fields",
		})
	}

	channel, err := service.Get(data.ChannelUniqueId)
	if err != nil {
		return serviceError(c, err)
	}

	userId := currentUser(c)
	if channel.OwnerId != userId && !isAdmin(channel, userId) {
		c.Status(fiber.StatusForbidden)
		return c.JSON(ErrorResponse{
			Message: "You are not an admin of this channel",
		})
	}

	post, err := service.AddContent(data.ChannelUniqueId, channels.NewContent{
		Url:     data.Url,
		Caption: data.Caption,
		Buttons: data.Buttons,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(DataResponse[models.Post]{
		Data:    post,
		Message: "Content added successfully",
	})
}

// LikePost increments the like counter. Not idempotent: every call
// counts, matching the reference behavior.
func LikePost(c fiber.Ctx) error {
	var data PostActionRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.ChannelUniqueId == "" || data.PostId == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Missing required fields",
		})
	}

	if err := service.Like(data.ChannelUniqueId, data.PostId); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(MessageResponse{
		Message: "Like added",
	})
}

// AddComment appends a comment. Empty text is rejected without mutating
// anything.
func AddComment(c fiber.Ctx) error {
	var data CommentRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.ChannelUniqueId == "" || data.PostId == 0 {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Missing required fields",
		})
	}

	if err := service.AddComment(data.ChannelUniqueId, data.PostId, currentUser(c), data.Text); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(MessageResponse{
		Message: "Comment added",
	})
}

func postView(post models.Post) *PostView {
	preview, truncated := feed.TruncateCaption(post.Caption, feed.CaptionPreviewLimit)
	return &PostView{
		Id:               post.Id,
		Uid:              post.Uid,
		Type:             post.Type,
		Url:              post.Url,
		Caption:          post.Caption,
		CaptionPreview:   preview,
		CaptionTruncated: truncated,
		CaptionSegments:  feed.SplitLinks(post.Caption),
		Likes:            post.Likes,
		Views:            post.Views,
		Buttons:          post.Buttons,
		Comments:         post.Comments,
	}
}
