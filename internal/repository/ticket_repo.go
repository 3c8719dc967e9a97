package repository

import (
	"context"

	"github.com/confstay/booking-service/internal/models"
	"gorm.io/gorm"
)

type TicketRepository interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID uint) (*models.Ticket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// FindByEnrollmentID returns the enrollment's ticket with its type preloaded,
// since eligibility depends on the type's remote/hotel flags.
func (r *ticketRepository) FindByEnrollmentID(ctx context.Context, enrollmentID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("enrollment_id = ?", enrollmentID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
