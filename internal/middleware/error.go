package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/auth"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

type domainMapping struct {
	target error
	status int
	code   string
}

var domainErrors = []domainMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrIllegalTransition, fiber.StatusConflict, "ILLEGAL_TRANSITION"},
	{domain.ErrConcurrentModification, fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
	{domain.ErrQuotaExceeded, fiber.StatusTooManyRequests, "QUOTA_EXCEEDED"},
	{domain.ErrInvalidDueDate, fiber.StatusBadRequest, "INVALID_DUE_DATE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "BAD_REQUEST"},
	{domain.ErrInvalidDetails, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
	{domain.ErrDetailsLocked, fiber.StatusUnprocessableEntity, "DETAILS_LOCKED"},
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrInvalidToken, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrUserInactive, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// NewErrorHandler maps domain errors onto HTTP statuses. Anything it does not
// recognise is logged and reported as a 500 without leaking the cause.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := "INTERNAL_ERROR"

		var fe *fiber.Error
		matched := false
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			errorCode = fiberCode(code)
			matched = true
		} else {
			for _, m := range domainErrors {
				if errors.Is(err, m.target) {
					code, errorCode, message = m.status, m.code, err.Error()
					matched = true
					break
				}
			}
		}

		traceID := uuid.New().String()[:8]
		if !matched {
			log.WithError(err).WithFields(logrus.Fields{
				"trace_id": traceID,
				"method":   c.Method(),
				"path":     c.Path(),
			}).Error("unhandled error")
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode,
			Message: message,
			TraceID: traceID,
		})
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "INTERNAL_ERROR"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
