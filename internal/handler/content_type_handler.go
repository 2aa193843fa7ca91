package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/pkg/i18n"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/detail"
)

type namedValue struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type ContentTypeHandler struct {
	registry *detail.Registry
}

func NewContentTypeHandler(registry *detail.Registry) *ContentTypeHandler {
	return &ContentTypeHandler{registry: registry}
}

func (h *ContentTypeHandler) List(c *fiber.Ctx) error {
	locale := requestLocale(c)

	keys := h.registry.Keys()
	out := make([]namedValue, 0, len(keys))
	for _, key := range keys {
		out = append(out, namedValue{Key: key, Name: i18n.Translate(locale, key)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": out})
}

func (h *ContentTypeHandler) Statuses(c *fiber.Ctx) error {
	locale := requestLocale(c)

	out := make([]fiber.Map, 0, int(domain.StatusCompleted)+1)
	for s := domain.StatusSubmitted; s <= domain.StatusCompleted; s++ {
		out = append(out, fiber.Map{
			"value": s,
			"key":   s.String(),
			"name":  i18n.Translate(locale, s.String()),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": out})
}

// requestLocale prefers ?lang= and falls back to the first Accept-Language tag.
func requestLocale(c *fiber.Ctx) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	header := c.Get(fiber.HeaderAcceptLanguage)
	if header == "" {
		return "en"
	}
	tag := strings.SplitN(header, ",", 2)[0]
	tag = strings.SplitN(tag, ";", 2)[0]
	return strings.ToLower(strings.SplitN(strings.TrimSpace(tag), "-", 2)[0])
}
