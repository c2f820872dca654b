package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"reelstgram-backend/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	maxMediaSize  = 5 * 1024 * 1024
	maxAvatarSize = 2 * 1024 * 1024
)

var mediaExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".mp4":  true,
	".webm": true,
}

var avatarExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

func GenerateUniqueFilename(filename string) string {
	ext := filepath.Ext(filename)
	return uuid.New().String() + ext
}

// UploadFileHandler accepts a multipart "file" field, validates it
// against the media allow-list and the 5MB ceiling, and stores it.
// Success returns {url}; validation and storage failures return {error}
// before anything is persisted.
func UploadFileHandler(c fiber.Ctx) error {
	return handleUpload(c, mediaExtensions, maxMediaSize,
		"Upload failed: only images (jpeg, jpg, png, gif) and videos (mp4, webm) are allowed")
}

// UploadAvatarHandler is the avatar-specific variant: images only, 2MB.
func UploadAvatarHandler(c fiber.Ctx) error {
	return handleUpload(c, avatarExtensions, maxAvatarSize,
		"Upload failed: only images (jpeg, jpg, png) are allowed for avatar")
}

func handleUpload(c fiber.Ctx, allowed map[string]bool, maxSize int64, typeError string) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(UploadError{
			Error: "No file uploaded",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return c.Status(fiber.StatusInternalServerError).JSON(UploadError{
			Error: typeError,
		})
	}
	if file.Size > maxSize {
		return c.Status(fiber.StatusInternalServerError).JSON(UploadError{
			Error: "Upload failed: file too large",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(UploadError{
			Error: "Upload failed: could not open file",
		})
	}
	defer src.Close()

	mimeType, err := detectContentType(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(UploadError{
			Error: "Upload failed: could not read file",
		})
	}

	filename := GenerateUniqueFilename(file.Filename)
	url, err := storage.UploadFile(c.Context(), filename, src, file.Size, mimeType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(UploadError{
			Error: "Upload failed: " + err.Error(),
		})
	}

	return c.JSON(UploadResponse{
		Url: url,
	})
}

// detectContentType sniffs the MIME type from the first 512 bytes and
// rewinds the file for the actual upload.
func detectContentType(src multipart.File) (string, error) {
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}
