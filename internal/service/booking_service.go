package service

import (
	"context"
	"errors"
	"log"

	"github.com/confstay/booking-service/internal/models"
	"github.com/confstay/booking-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrCannotBook = errors.New("ticket does not grant a hotel booking")
	ErrRoomFull   = errors.New("room is at full capacity")
	ErrBadRequest = errors.New("bad request")
)

// EventPublisher emits booking lifecycle events for downstream services.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type BookingService interface {
	GetBooking(ctx context.Context, userID int) (*models.Booking, error)
	CreateBooking(ctx context.Context, userID, roomID int) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID, roomID, userID int) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo    repository.BookingRepository
	enrollmentRepo repository.EnrollmentRepository
	ticketRepo     repository.TicketRepository
	roomRepo       repository.RoomRepository
	publisher      EventPublisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	enrollmentRepo repository.EnrollmentRepository,
	ticketRepo repository.TicketRepository,
	roomRepo repository.RoomRepository,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		enrollmentRepo: enrollmentRepo,
		ticketRepo:     ticketRepo,
		roomRepo:       roomRepo,
		publisher:      publisher,
	}
}

func (s *bookingService) GetBooking(ctx context.Context, userID int) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByUserID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, roomID int) (*models.Booking, error) {
	// Invalid identifiers are reported the same as missing records.
	if userID < 1 || roomID < 1 {
		return nil, ErrNotFound
	}

	if err := s.checkEligibility(ctx, uint(userID)); err != nil {
		return nil, err
	}
	if _, err := s.checkAvailability(ctx, uint(roomID)); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID: uint(userID),
		RoomID: uint(roomID),
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish("booking.created", booking)
	return booking, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID, roomID, userID int) (*models.Booking, error) {
	if bookingID < 1 || roomID < 1 {
		return nil, ErrNotFound
	}

	if err := s.checkEligibility(ctx, uint(userID)); err != nil {
		return nil, err
	}

	// The target room's count includes the caller's own booking when the
	// room is unchanged, and no check binds bookingID to userID.
	if _, err := s.checkAvailability(ctx, uint(roomID)); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.UpdateRoom(ctx, uint(bookingID), uint(roomID))
	if err != nil {
		return nil, err
	}

	s.publish("booking.updated", booking)
	return booking, nil
}

// checkEligibility verifies the user has an enrollment and a paid,
// in-person, hotel-inclusive ticket.
func (s *bookingService) checkEligibility(ctx context.Context, userID uint) error {
	enrollment, err := s.enrollmentRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	ticket, err := s.ticketRepo.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCannotBook
		}
		return err
	}

	if ticket.Status == models.TicketStatusReserved ||
		ticket.TicketType == nil ||
		ticket.TicketType.IsRemote ||
		!ticket.TicketType.IncludesHotel {
		return ErrCannotBook
	}
	return nil
}

// checkAvailability loads the room and compares current occupancy against
// capacity. The count and any subsequent write run as separate statements
// with no shared transaction, so two concurrent requests can both pass
// this check for a room's last free slot.
func (s *bookingService) checkAvailability(ctx context.Context, roomID uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	count, err := s.bookingRepo.CountByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if count >= int64(room.Capacity) {
		return nil, ErrRoomFull
	}
	return room, nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	payload := map[string]uint{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
		"room_id":    booking.RoomID,
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[BookingService] failed to publish %s for booking %d: %v", routingKey, booking.ID, err)
	}
}
