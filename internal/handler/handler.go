package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/middleware"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Request      *RequestHandler
	Notification *NotificationHandler
	Settings     *SettingsHandler
	ContentType  *ContentTypeHandler
	Attachment   *AttachmentHandler
}

func NewHandlers(services *service.Services, log *logrus.Logger) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth, services.Validate),
		Request:      NewRequestHandler(services.Request, services.Validate),
		Notification: NewNotificationHandler(services.Notification, services.Hub, log),
		Settings:     NewSettingsHandler(services.Settings, services.Validate),
		ContentType:  NewContentTypeHandler(services.Details),
		Attachment:   NewAttachmentHandler(services.Attachment),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}

// parseBody decodes the JSON body into input and runs its validate tags.
func parseBody(c *fiber.Ctx, validate *validator.Validate, input interface{}) error {
	if err := c.BodyParser(input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
