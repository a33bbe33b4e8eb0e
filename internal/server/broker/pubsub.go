package broker

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// PubSub is the in-process topic broker.
type PubSub interface {
	message.Publisher
	message.Subscriber
}

// NewPubSub returns a non-persistent GoChannel: a publish to a topic nobody
// subscribes to is dropped. Publish returns only after every subscriber has
// acked, so sequential publishes reach each subscriber in order.
// Subscribers must ack before doing slow work with a message.
func NewPubSub(l *slog.Logger) PubSub {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            64,
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NewSlogLogger(l))
}
