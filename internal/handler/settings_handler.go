package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/settings"
)

type SettingsHandler struct {
	settingsService settings.Service
	validate        *validator.Validate
}

func NewSettingsHandler(settingsService settings.Service, validate *validator.Validate) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, validate: validate}
}

func (h *SettingsHandler) List(c *fiber.Ctx) error {
	list, err := h.settingsService.List(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": list})
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var input domain.UpdateSettingInput
	if err := parseBody(c, h.validate, &input); err != nil {
		return err
	}

	setting, err := h.settingsService.Set(c.Context(), c.Params("key"), input.Value)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(setting)
}
