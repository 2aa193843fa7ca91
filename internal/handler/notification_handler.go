package handler

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/middleware"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/notification"
)

const streamKeepAlive = 25 * time.Second

// Subscriber opens the per-user push channel.
type Subscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub
}

type NotificationHandler struct {
	notifService notification.Service
	subscriber   Subscriber
	log          *logrus.Logger
}

func NewNotificationHandler(notifService notification.Service, subscriber Subscriber, log *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{notifService: notifService, subscriber: subscriber, log: log}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	unreadOnly := c.Query("unread_only") == "true"
	limit := c.QueryInt("limit", domain.DefaultNotificationLimit)

	list, err := h.notifService.ListForUser(c.Context(), userID, unreadOnly, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": list})
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkRead(c.Context(), notifID, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.notifService.MarkAllRead(c.Context(), middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Stream relays the caller's push channel as server-sent events. Each Redis
// message already carries the {"event","payload"} envelope.
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(context.Background())
	sub := h.subscriber.Subscribe(ctx, userID)
	log := h.log.WithField("user_id", userID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer sub.Close()

		messages := sub.Channel()
		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case msg, ok := <-messages:
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				log.WithError(err).Debug("notification stream closed")
				return
			}
		}
	}))

	return nil
}
