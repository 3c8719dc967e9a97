package dto

type BookRoomRequest struct {
	RoomID int `json:"roomId"`
}
