package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/middleware"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/attachment"
)

const maxAttachmentSize = 20 * 1024 * 1024

type AttachmentHandler struct {
	attachmentService attachment.Service
}

func NewAttachmentHandler(attachmentService attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	if file.Size > maxAttachmentSize {
		return middleware.BadRequest("File size must be less than 20MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	att, err := h.attachmentService.Upload(c.Context(), requestID, identity, attachment.UploadInput{
		FileName: file.Filename,
		FileSize: file.Size,
		MimeType: mimeType,
		Reader:   fileReader,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(att)
}

func (h *AttachmentHandler) List(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	list, err := h.attachmentService.List(c.Context(), requestID, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": list})
}

func (h *AttachmentHandler) Get(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	attachmentID, err := parseUUIDParam(c, "attachmentId")
	if err != nil {
		return err
	}

	att, err := h.attachmentService.Get(c.Context(), requestID, attachmentID, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(att)
}
