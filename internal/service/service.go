package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/config"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/attachment"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/auth"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/deadline"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/detail"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/email"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/notification"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/realtime"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/request"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/settings"
)

type Services struct {
	Auth         auth.Service
	Request      request.Service
	Notification notification.Service
	Settings     settings.Service
	Attachment   attachment.Service
	Details      *detail.Registry
	Hub          *realtime.Hub
	Deadline     *deadline.Sweep
	Validate     *validator.Validate
}

// Storage bundles the object store clients. Store handles uploads, Presigner
// signs download URLs for the public endpoint.
type Storage struct {
	Store     attachment.ObjectStore
	Presigner attachment.ObjectStore
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, storage Storage, cfg *config.Config, log *logrus.Logger) (*Services, error) {
	validate := validator.New()

	registry, err := detail.NewDefaultRegistry(repos.Detail, validate)
	if err != nil {
		return nil, fmt.Errorf("failed to build detail registry: %w", err)
	}

	hub := realtime.NewHub(redisClient)
	settingsService := settings.NewService(repos.Setting, repos.User, log)
	notificationService := notification.NewService(repos.Notification, hub, log)

	var emailService email.Service
	if cfg.EmailEnabled() {
		emailService = email.NewService(cfg)
	}

	requestService := request.NewService(
		repos.Transactor,
		repos.Request,
		repos.History,
		repos.Detail,
		repos.User,
		registry,
		notificationService,
		settingsService,
		log,
	)

	return &Services{
		Auth:         auth.NewService(repos.User, cfg),
		Request:      requestService,
		Notification: notificationService,
		Settings:     settingsService,
		Attachment:   attachment.NewService(repos.Attachment, repos.Request, storage.Store, storage.Presigner, cfg.MinIOBucket, log),
		Details:      registry,
		Hub:          hub,
		Deadline:     deadline.NewSweep(repos.Request, repos.User, settingsService, notificationService, emailService, log),
		Validate:     validate,
	}, nil
}
