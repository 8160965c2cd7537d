// Package consumer turns domain events from the marketplace exchange into
// persisted notification records and best-effort realtime pushes. Messages
// are acked only after the rows are written; a failed write nacks with
// requeue so a crash can't silently drop a notification.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stayfindz/backend/internal/events"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/realtime"
	"github.com/stayfindz/backend/internal/repository"
)

// Pusher is the slice of the realtime hub the consumer needs.
type Pusher interface {
	SendToUser(userID uint, msg realtime.Message) bool
}

type NotificationConsumer struct {
	repo repository.NotificationRepository
	hub  Pusher
}

func NewNotificationConsumer(repo repository.NotificationRepository, hub Pusher) *NotificationConsumer {
	return &NotificationConsumer{repo: repo, hub: hub}
}

// Start listens for deliveries until the channel closes.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var err error
	switch msg.RoutingKey {
	case events.BookingCreated:
		err = nc.handleBookingCreated(msg.Body)
	case events.BookingUpdated:
		err = nc.handleBookingUpdated(msg.Body)
	case events.ListingUpdated:
		err = nc.handleListingUpdated(msg.Body)
	default:
		log.Printf("[NotificationConsumer] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
		return
	}

	if err != nil {
		log.Printf("[NotificationConsumer] %s failed: %v", msg.RoutingKey, err)
		msg.Nack(false, true) // requeue
		return
	}
	msg.Ack(false)
}

func (nc *NotificationConsumer) handleBookingCreated(body []byte) error {
	var evt events.BookingEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("unmarshal booking event: %w", err)
	}

	ctx := context.Background()
	guestNote := &models.Notification{
		UserID:    evt.GuestID,
		Type:      "booking",
		Title:     "Booking requested",
		Message:   fmt.Sprintf("Your booking request for %q is pending host approval", evt.ListingTitle),
		Priority:  models.PriorityNormal,
		RelatedID: evt.BookingID,
	}
	hostNote := &models.Notification{
		UserID:    evt.HostID,
		Type:      "booking",
		Title:     "New booking request",
		Message:   fmt.Sprintf("You have a new booking request for %q", evt.ListingTitle),
		Priority:  models.PriorityHigh,
		RelatedID: evt.BookingID,
	}
	if err := nc.repo.Create(ctx, guestNote); err != nil {
		return err
	}
	if err := nc.repo.Create(ctx, hostNote); err != nil {
		return err
	}

	nc.push(evt.HostID, realtime.TypeNewBooking, map[string]any{
		"booking_id": evt.BookingID,
		"listing_id": evt.ListingID,
		"status":     evt.NewStatus,
	})
	return nil
}

func (nc *NotificationConsumer) handleBookingUpdated(body []byte) error {
	var evt events.BookingEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("unmarshal booking event: %w", err)
	}

	ctx := context.Background()
	change := fmt.Sprintf("Booking for %q changed from %s to %s", evt.ListingTitle, evt.OldStatus, evt.NewStatus)

	for _, userID := range []uint{evt.GuestID, evt.HostID} {
		note := &models.Notification{
			UserID:    userID,
			Type:      "booking",
			Title:     fmt.Sprintf("Booking %s", evt.NewStatus),
			Message:   change,
			Priority:  models.PriorityNormal,
			RelatedID: evt.BookingID,
		}
		if err := nc.repo.Create(ctx, note); err != nil {
			return err
		}
	}

	if evt.NewStatus == models.StatusApproved || evt.NewStatus == models.StatusRejected {
		nc.push(evt.GuestID, realtime.TypeBookingUpdated, map[string]any{
			"booking_id": evt.BookingID,
			"status":     evt.NewStatus,
		})
	}
	return nil
}

func (nc *NotificationConsumer) handleListingUpdated(body []byte) error {
	var evt events.ListingEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("unmarshal listing event: %w", err)
	}

	note := &models.Notification{
		UserID:    evt.HostID,
		Type:      "listing",
		Title:     fmt.Sprintf("Listing %s", evt.NewStatus),
		Message:   fmt.Sprintf("Your listing %q is now %s", evt.Title, evt.NewStatus),
		Priority:  models.PriorityNormal,
		RelatedID: evt.ListingID,
	}
	if err := nc.repo.Create(context.Background(), note); err != nil {
		return err
	}

	nc.push(evt.HostID, realtime.TypeNotification, note)
	return nil
}

func (nc *NotificationConsumer) push(userID uint, msgType string, data any) {
	if nc.hub == nil {
		return
	}
	nc.hub.SendToUser(userID, realtime.NewMessage(msgType, data))
}
