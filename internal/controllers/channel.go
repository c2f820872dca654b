package controllers

import (
	"encoding/json"

	"reelstgram-backend/internal/feed"
	"reelstgram-backend/internal/models"

	"github.com/gofiber/fiber/v3"
)

func CreateChannel(c fiber.Ctx) error {
	var data CreateChannelRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.Name == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Incorrect data",
		})
	}

	channel, err := service.Create(currentUser(c), data.Name, data.Description)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(DataResponse[models.Channel]{
		Data:    channel,
		Message: "Channel created successfully",
	})
}

func EditChannel(c fiber.Ctx) error {
	var data EditChannelRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.ChannelUniqueId == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Channel id is required",
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

	updated, err := service.UpdateSettings(data.ChannelUniqueId, data.Description, data.Avatar, data.Admins)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(DataResponse[models.Channel]{
		Data:    updated,
		Message: "Channel updated successfully",
	})
}

func GetChannels(c fiber.Ctx) error {
	list, err := service.List()
	if err != nil {
		return serviceError(c, err)
	}

	user, err := service.GetUser(currentUser(c))
	if err != nil {
		return serviceError(c, err)
	}

	result := make([]ChannelResponse, 0, len(list))
	for _, ch := range list {
		result = append(result, channelResponse(ch, &user))
	}

	return c.JSON(DataResponse[[]ChannelResponse]{
		Data: result,
	})
}

func GetChannel(c fiber.Ctx) error {
	uniqueId := c.Params("uniqueId")
	if uniqueId == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Channel id is required",
		})
	}

	channel, err := service.Get(uniqueId)
	if err != nil {
		return serviceError(c, err)
	}

	user, err := service.GetUser(currentUser(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(DataResponse[ChannelResponse]{
		Data: channelResponse(channel, &user),
	})
}

func ToggleSubscription(c fiber.Ctx) error {
	var data SubscriptionRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.ChannelUniqueId == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Channel id is required",
		})
	}

	userId := currentUser(c)
	subscribed, err := service.ToggleSubscription(userId, data.ChannelUniqueId)
	if err != nil {
		return serviceError(c, err)
	}

	channel, err := service.Get(data.ChannelUniqueId)
	if err != nil {
		return serviceError(c, err)
	}

	if subscribed {
		events.Log("subscribe", map[string]any{
			"channelId":   channel.UniqueId,
			"channelName": channel.Name,
			"userId":      userId,
		})
	}

	return c.JSON(DataResponse[SubscriptionResponse]{
		Data: SubscriptionResponse{
			ChannelUniqueId: channel.UniqueId,
			Subscribed:      subscribed,
			Subscribers:     channel.Subscribers,
		},
	})
}

func channelResponse(ch models.Channel, user *models.User) ChannelResponse {
	return ChannelResponse{
		Channel:             ch,
		DescriptionSegments: feed.SplitLinks(ch.Description),
		Subscribed:          user.Subscribed(ch.UniqueId),
	}
}

func isAdmin(ch models.Channel, userId string) bool {
	for _, admin := range ch.Admins {
		if admin == userId {
			return true
		}
	}
	return false
}
