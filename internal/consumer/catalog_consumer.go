package consumer

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/confstay/booking-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogConsumer keeps the local hotel/room read model in sync with the
// catalog events published by the hotel service.
type CatalogConsumer struct {
	db *gorm.DB
}

func NewCatalogConsumer(db *gorm.DB) *CatalogConsumer {
	return &CatalogConsumer{db: db}
}

func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		log.Println("[CatalogConsumer] channel closed, stopping consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(msg amqp.Delivery) {
	switch {
	case strings.HasPrefix(msg.RoutingKey, "hotel."):
		cc.upsertHotel(msg)
	case strings.HasPrefix(msg.RoutingKey, "room."):
		cc.upsertRoom(msg)
	default:
		log.Printf("[CatalogConsumer] unexpected routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
	}
}

func (cc *CatalogConsumer) upsertHotel(msg amqp.Delivery) {
	var hotel models.Hotel
	if err := json.Unmarshal(msg.Body, &hotel); err != nil {
		log.Printf("[CatalogConsumer] failed to unmarshal hotel: %v", err)
		msg.Nack(false, false)
		return
	}

	result := cc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "image", "updated_at"}),
	}).Create(&hotel)

	if result.Error != nil {
		log.Printf("[CatalogConsumer] failed to upsert hotel %d: %v", hotel.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[CatalogConsumer] synced hotel %d: %s", hotel.ID, hotel.Name)
	msg.Ack(false)
}

func (cc *CatalogConsumer) upsertRoom(msg amqp.Delivery) {
	var room models.Room
	if err := json.Unmarshal(msg.Body, &room); err != nil {
		log.Printf("[CatalogConsumer] failed to unmarshal room: %v", err)
		msg.Nack(false, false)
		return
	}

	result := cc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "capacity", "hotel_id", "updated_at"}),
	}).Create(&room)

	if result.Error != nil {
		log.Printf("[CatalogConsumer] failed to upsert room %d: %v", room.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[CatalogConsumer] synced room %d: %s (capacity %d)", room.ID, room.Name, room.Capacity)
	msg.Ack(false)
}
