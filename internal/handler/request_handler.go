package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/middleware"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/request"
)

type RequestHandler struct {
	requestService request.Service
	validate       *validator.Validate
}

func NewRequestHandler(requestService request.Service, validate *validator.Validate) *RequestHandler {
	return &RequestHandler{requestService: requestService, validate: validate}
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	var input domain.CreateRequestInput
	if err := parseBody(c, h.validate, &input); err != nil {
		return err
	}

	req, err := h.requestService.Create(c.Context(), identity.UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	var filter domain.RequestFilter
	if s := c.Query("status"); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			return err
		}
		filter.Status = &status
	}
	filter.ContentType = c.Query("content_type")

	result, err := h.requestService.List(c.Context(), identity, filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	req, err := h.requestService.GetByID(c.Context(), id, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) Transition(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.TransitionInput
	if err := parseBody(c, h.validate, &input); err != nil {
		return err
	}

	role, err := middleware.ActingRole(identity, input.Role)
	if err != nil {
		return err
	}

	req, err := h.requestService.Transition(c.Context(), id, identity.UserID, role, input.Status, input.Note)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) GetDetails(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	details, err := h.requestService.GetDetails(c.Context(), id, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(details)
}

func (h *RequestHandler) UpdateDetails(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateDetailsInput
	if err := parseBody(c, h.validate, &input); err != nil {
		return err
	}

	req, err := h.requestService.UpdateDetails(c.Context(), id, identity.UserID, input.Details)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) History(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	history, err := h.requestService.History(c.Context(), id, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": history})
}
