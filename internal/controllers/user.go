package controllers

import (
	"encoding/json"

	"reelstgram-backend/internal/models"

	"github.com/gofiber/fiber/v3"
)

func GetProfile(c fiber.Ctx) error {
	user, err := service.GetUser(currentUser(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(DataResponse[models.User]{
		Data: user,
	})
}

func EditProfile(c fiber.Ctx) error {
	var data ProfileRequest

	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return err
	}

	if data.Username == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ErrorResponse{
			Message: "Username is required",
		})
	}

	user, err := service.UpdateUsername(currentUser(c), data.Username)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(DataResponse[models.User]{
		Data:    user,
		Message: "Profile updated successfully",
	})
}
