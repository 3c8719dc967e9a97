package repository

import (
	"context"

	"github.com/confstay/booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*models.Booking, error)
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	UpdateRoom(ctx context.Context, bookingID, roomID uint) (*models.Booking, error)
	CountByRoomID(ctx context.Context, roomID uint) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// FindByUserID returns the user's booking with its room preloaded.
func (r *bookingRepository) FindByUserID(ctx context.Context, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) UpdateRoom(ctx context.Context, bookingID, roomID uint) (*models.Booking, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("room_id", roomID).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, bookingID)
}

func (r *bookingRepository) CountByRoomID(ctx context.Context, roomID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
