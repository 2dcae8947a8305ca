// Package notify announces created offers to external systems. Delivery is
// best effort: callers log a returned error and carry on.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/labomak/dashboard/internal/config"
	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/infrastructure/messaging"
)

// EventOfferCreated is the event name carried in every notification.
const EventOfferCreated = "teklif.olusturuldu"

// OfferCreated is the JSON body delivered for a new offer, line items included.
type OfferCreated struct {
	Event  string       `json:"event"`
	SentAt time.Time    `json:"gonderim_zamani"`
	Offer  entity.Offer `json:"teklif"`
}

// NewOfferCreated wraps offer in the notification envelope.
func NewOfferCreated(offer entity.Offer) OfferCreated {
	return OfferCreated{Event: EventOfferCreated, SentAt: time.Now(), Offer: offer}
}

// Notifier delivers one notification. Implementations do not retry.
type Notifier interface {
	NotifyOfferCreated(ctx context.Context, event OfferCreated) error
}

// Noop drops every notification.
type Noop struct{}

func (Noop) NotifyOfferCreated(context.Context, OfferCreated) error { return nil }

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyOfferCreated(ctx context.Context, event OfferCreated) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyOfferCreated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AMQPNotifier publishes the event to a RabbitMQ queue.
type AMQPNotifier struct {
	publisher  messaging.Publisher
	routingKey string
}

func NewAMQPNotifier(publisher messaging.Publisher, routingKey string) *AMQPNotifier {
	return &AMQPNotifier{publisher: publisher, routingKey: routingKey}
}

func (n *AMQPNotifier) NotifyOfferCreated(ctx context.Context, event OfferCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("amqp notifier: %w", err)
	}
	if err := n.publisher.Publish(ctx, n.routingKey, body); err != nil {
		return fmt.Errorf("amqp notifier: %w", err)
	}
	return nil
}

// New builds the notifier selected by NOTIFIER_DRIVER. publisher may be nil
// when the driver does not need AMQP; an amqp driver without a publisher
// degrades to the webhook alone.
func New(cfg config.NotifierConfig, publisher messaging.Publisher, routingKey string) Notifier {
	webhook := func() Notifier { return NewWebhookNotifier(cfg.WebhookURL, cfg.WebhookTimeout) }
	amqp := func() Notifier {
		if publisher == nil {
			return nil
		}
		return NewAMQPNotifier(publisher, routingKey)
	}

	switch cfg.Driver {
	case "none", "":
		return Noop{}
	case "amqp":
		if n := amqp(); n != nil {
			return n
		}
		log.Println("[notify] amqp driver selected without a broker connection, using webhook")
		return webhook()
	case "both":
		if n := amqp(); n != nil {
			return Multi{webhook(), n}
		}
		return webhook()
	default:
		return webhook()
	}
}
