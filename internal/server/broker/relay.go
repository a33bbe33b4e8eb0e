// Package broker serves the catalog over STOMP on a WebSocket. Clients SEND
// to /app destinations and receive results by subscribing to topics that an
// in-process watermill broker fans out.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/bookapi"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
)

const AppPrefix = "/app"

// Topics.
const (
	TopicBooks     = "/topic/books"
	TopicBook      = "/topic/book"
	TopicBooksList = "/topic/books/list"
)

// Application destinations.
const (
	DestCreate = AppPrefix + "/book/create"
	DestUpdate = AppPrefix + "/book/update"
	DestDelete = AppPrefix + "/book/delete"
	DestGet    = AppPrefix + "/book/get"
	DestGetAll = AppPrefix + "/book/getAll"
)

type payload struct {
	ID              json.RawMessage `json:"id"`
	Title           *string         `json:"title"`
	Price           *float64        `json:"price"`
	Author          *string         `json:"author"`
	PublicationDate *string         `json:"publicationDate"`
}

func (p payload) fields() (services.BookFields, error) {
	return bookapi.Input{
		Title:           p.Title,
		Price:           p.Price,
		Author:          p.Author,
		PublicationDate: p.PublicationDate,
	}.Fields(bookapi.ClearDateWhenAbsent)
}

func (p payload) id() (int64, error) {
	text := strings.TrimSpace(string(p.ID))
	if text == "" || text == "null" {
		return 0, fmt.Errorf("id is required: %w", common.ErrorInvalidID)
	}
	var s string
	if json.Unmarshal(p.ID, &s) == nil {
		text = s
	}
	return bookapi.ParseID(text)
}

type route struct {
	action string
	topic  string
	handle func(ctx context.Context, p payload) (bookapi.Envelope, error)
}

// Relay turns application messages into service calls and publishes the
// outcome. It never answers the sender directly.
type Relay struct {
	books     *services.BookService
	publisher message.Publisher
	logger    logging.Logger
	metrics   *metrics.Recorder
	routes    map[string]route
}

func NewRelay(l logging.Logger, bs *services.BookService, pub message.Publisher, m *metrics.Recorder) *Relay {
	r := &Relay{books: bs, publisher: pub, logger: l, metrics: m}
	r.routes = map[string]route{
		DestCreate: {action: bookapi.ActionCreate, topic: TopicBooks, handle: r.create},
		DestUpdate: {action: bookapi.ActionUpdate, topic: TopicBooks, handle: r.update},
		DestDelete: {action: bookapi.ActionDelete, topic: TopicBooks, handle: r.delete},
		DestGet:    {action: bookapi.ActionGet, topic: TopicBook, handle: r.get},
	}
	return r
}

// Handle processes one SEND. The only error it returns is
// common.ErrorUnknownOperation for a destination it does not serve; every
// other failure is published as a success:false envelope.
func (r *Relay) Handle(ctx context.Context, destination string, body []byte) error {

	if destination == DestGetAll {
		err := r.getAll(ctx)
		r.metrics.Observe("stomp", "getAll", err)
		return nil
	}

	rt, ok := r.routes[destination]
	if !ok {
		r.metrics.Observe("stomp", "unknown", common.ErrorUnknownOperation)
		return fmt.Errorf("%s: %w", destination, common.ErrorUnknownOperation)
	}
	op := strings.TrimPrefix(destination, AppPrefix+"/book/")

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		err = fmt.Errorf("%v: %w", err, common.ErrorValidation)
		r.metrics.Observe("stomp", op, err)
		r.publish(ctx, rt.topic, bookapi.Failure(rt.action, "Error processing request: "+err.Error()))
		return nil
	}

	env, err := rt.handle(ctx, p)
	r.metrics.Observe("stomp", op, err)
	if err != nil {
		env = r.describe(ctx, rt.action, err)
	}
	r.publish(ctx, rt.topic, env)
	return nil
}

func (r *Relay) describe(ctx context.Context, action string, err error) bookapi.Envelope {
	var nf bookapi.NotFoundError
	switch {
	case errors.As(err, &nf):
		return bookapi.Failure(action, nf.Error())
	case errors.Is(err, common.ErrorInvalidID):
		return bookapi.Failure(action, "Invalid book id")
	case errors.Is(err, common.ErrorValidation):
		return bookapi.Failure(action, "Error processing request: "+err.Error())
	default:
		r.logger.Error(ctx, "Message handling failed", "action", action, "error", err)
		return bookapi.Failure(action, "Error processing request: internal error")
	}
}

// publish is fire-and-forget: a failed publish is logged, never returned.
func (r *Relay) publish(ctx context.Context, topic string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		r.logger.Error(ctx, "Encoding broadcast failed", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := r.publisher.Publish(topic, msg); err != nil {
		r.logger.Error(ctx, "Broadcast failed", "topic", topic, "error", err)
	}
}

func (r *Relay) create(ctx context.Context, p payload) (bookapi.Envelope, error) {
	fields, err := p.fields()
	if err != nil {
		return bookapi.Envelope{}, err
	}
	b, err := r.books.Create(ctx, fields)
	if err != nil {
		return bookapi.Envelope{}, err
	}
	return bookapi.Envelope{Action: bookapi.ActionCreate, View: bookapi.ViewOf(b), Success: true, Message: common.MsgBookCreated}, nil
}

func (r *Relay) update(ctx context.Context, p payload) (bookapi.Envelope, error) {
	id, err := p.id()
	if err != nil {
		return bookapi.Envelope{}, err
	}
	fields, err := p.fields()
	if err != nil {
		return bookapi.Envelope{}, err
	}
	b, err := r.books.Update(ctx, id, fields)
	if err != nil {
		return bookapi.Envelope{}, bookapi.Lookup(id, err)
	}
	return bookapi.Envelope{Action: bookapi.ActionUpdate, View: bookapi.ViewOf(b), Success: true, Message: common.MsgBookUpdated}, nil
}

func (r *Relay) delete(ctx context.Context, p payload) (bookapi.Envelope, error) {
	id, err := p.id()
	if err != nil {
		return bookapi.Envelope{}, err
	}
	ok, err := r.books.Delete(ctx, id)
	if err != nil {
		return bookapi.Envelope{}, err
	}
	if !ok {
		return bookapi.Envelope{}, bookapi.NotFoundError{ID: id}
	}
	return bookapi.Envelope{Action: bookapi.ActionDelete, View: bookapi.View{ID: &id}, Success: true, Message: common.MsgBookDeleted}, nil
}

func (r *Relay) get(ctx context.Context, p payload) (bookapi.Envelope, error) {
	id, err := p.id()
	if err != nil {
		return bookapi.Envelope{}, err
	}
	b, err := r.books.Get(ctx, id)
	if err != nil {
		return bookapi.Envelope{}, bookapi.Lookup(id, err)
	}
	return bookapi.Envelope{Action: bookapi.ActionGet, View: bookapi.ViewOf(b), Success: true}, nil
}

// getAll publishes a summary to the shared topic and the records themselves
// to the list topic.
func (r *Relay) getAll(ctx context.Context) error {
	list, err := r.books.List(ctx)
	if err != nil {
		r.publish(ctx, TopicBooks, r.describe(ctx, bookapi.ActionGetAll, err))
		return err
	}
	r.publish(ctx, TopicBooks, bookapi.Envelope{
		Action:  bookapi.ActionGetAll,
		Success: true,
		Message: bookapi.FoundMessage(len(list)),
	})
	r.publish(ctx, TopicBooksList, bookapi.ViewsOf(list))
	return nil
}
