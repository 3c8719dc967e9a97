package dto

import (
	"time"

	"github.com/confstay/booking-service/internal/models"
)

// RoomResponse uses the wire field names of the original platform API,
// which existing clients depend on.
type RoomResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	HotelID   uint      `json:"hotelId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GetBookingResponse struct {
	ID   uint         `json:"id"`
	Room RoomResponse `json:"Room"`
}

type BookingIDResponse struct {
	BookingID uint `json:"bookingId"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToGetBookingResponse(b *models.Booking) GetBookingResponse {
	resp := GetBookingResponse{ID: b.ID}
	if b.Room != nil {
		resp.Room = RoomResponse{
			ID:        b.Room.ID,
			Name:      b.Room.Name,
			Capacity:  b.Room.Capacity,
			HotelID:   b.Room.HotelID,
			CreatedAt: b.Room.CreatedAt,
			UpdatedAt: b.Room.UpdatedAt,
		}
	}
	return resp
}
