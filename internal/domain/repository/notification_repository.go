package repository

import (
	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByRecipient(db *gorm.DB, recipientID uuid.UUID) ([]entity.Notification, error)
	MarkRead(db *gorm.DB, id int64) error
}
