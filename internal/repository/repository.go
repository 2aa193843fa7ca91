package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Transactor   Transactor
	User         UserRepository
	Request      RequestRepository
	Detail       DetailRepository
	History      HistoryRepository
	Notification NotificationRepository
	Setting      SettingRepository
	Attachment   AttachmentRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Transactor:   NewTransactor(db),
		User:         NewUserRepository(db),
		Request:      NewRequestRepository(db),
		Detail:       NewDetailRepository(db),
		History:      NewHistoryRepository(db),
		Notification: NewNotificationRepository(db),
		Setting:      NewSettingRepository(db),
		Attachment:   NewAttachmentRepository(db),
	}
}
