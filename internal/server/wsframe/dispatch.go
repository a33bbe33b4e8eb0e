// Package wsframe serves the catalog over a plain WebSocket: each inbound
// JSON text frame is one request and gets exactly one JSON reply on the same
// connection.
package wsframe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/bookapi"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
)

type request struct {
	Action          *string         `json:"action"`
	ID              json.RawMessage `json:"id"`
	Title           *string         `json:"title"`
	Price           *float64        `json:"price"`
	Author          *string         `json:"author"`
	PublicationDate *string         `json:"publicationDate"`
}

type Dispatcher struct {
	books   *services.BookService
	logger  logging.Logger
	metrics *metrics.Recorder
}

func NewDispatcher(l logging.Logger, bs *services.BookService, m *metrics.Recorder) *Dispatcher {
	return &Dispatcher{books: bs, logger: l, metrics: m}
}

// Dispatch turns one inbound frame into its reply. It never fails: every
// error becomes a success:false envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, frame []byte) any {

	var req request
	if err := json.Unmarshal(frame, &req); err != nil {
		d.metrics.Observe("wsframe", "unknown", fmt.Errorf("%v: %w", err, common.ErrorValidation))
		return bookapi.Failure(bookapi.ActionError, "Error processing request: "+err.Error())
	}
	if req.Action == nil || strings.TrimSpace(*req.Action) == "" {
		d.metrics.Observe("wsframe", "unknown", common.ErrorValidation)
		return bookapi.Failure(bookapi.ActionError, "Error processing request: missing action")
	}

	action := strings.ToUpper(strings.TrimSpace(*req.Action))

	var (
		reply any
		err   error
	)
	switch action {
	case bookapi.ActionCreate:
		reply, err = d.create(ctx, req)
	case bookapi.ActionGet:
		reply, err = d.get(ctx, req)
	case bookapi.ActionGetAll:
		reply, err = d.getAll(ctx)
	case bookapi.ActionUpdate:
		reply, err = d.update(ctx, req)
	case bookapi.ActionDelete:
		reply, err = d.delete(ctx, req)
	default:
		d.metrics.Observe("wsframe", "unknown", common.ErrorUnknownOperation)
		return bookapi.Failure(bookapi.ActionError, "Unknown action: "+*req.Action)
	}

	d.metrics.Observe("wsframe", strings.ToLower(action), err)
	if err != nil {
		return d.describe(ctx, action, err)
	}
	return reply
}

func (d *Dispatcher) describe(ctx context.Context, action string, err error) bookapi.Envelope {
	var nf bookapi.NotFoundError
	switch {
	case errors.As(err, &nf):
		return bookapi.Failure(action, nf.Error())
	case errors.Is(err, common.ErrorInvalidID):
		return bookapi.Failure(action, "Invalid book id")
	case errors.Is(err, common.ErrorValidation):
		return bookapi.Failure(action, "Error processing request: "+err.Error())
	default:
		d.logger.Error(ctx, "Frame handling failed", "action", action, "error", err)
		return bookapi.Failure(action, "Error processing request: internal error")
	}
}

// parseID accepts a JSON number or a numeric string.
func parseID(raw json.RawMessage) (int64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, fmt.Errorf("id is required: %w", common.ErrorInvalidID)
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%s: %w", text, common.ErrorInvalidID)
		}
		text = s
	}
	return bookapi.ParseID(text)
}

func (req request) fields() (services.BookFields, error) {
	return bookapi.Input{
		Title:           req.Title,
		Price:           req.Price,
		Author:          req.Author,
		PublicationDate: req.PublicationDate,
	}.Fields(bookapi.ClearDateWhenAbsent)
}

func (d *Dispatcher) create(ctx context.Context, req request) (any, error) {
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	b, err := d.books.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return bookapi.Envelope{Action: bookapi.ActionCreate, View: bookapi.ViewOf(b), Success: true, Message: common.MsgBookCreated}, nil
}

func (d *Dispatcher) get(ctx context.Context, req request) (any, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	b, err := d.books.Get(ctx, id)
	if err != nil {
		return nil, bookapi.Lookup(id, err)
	}
	return bookapi.Envelope{Action: bookapi.ActionGet, View: bookapi.ViewOf(b), Success: true}, nil
}

func (d *Dispatcher) getAll(ctx context.Context) (any, error) {
	list, err := d.books.List(ctx)
	if err != nil {
		return nil, err
	}
	out := bookapi.ListEnvelope{
		Action:  bookapi.ActionGetAll,
		Success: true,
		Message: bookapi.FoundMessage(len(list)),
		Books:   make([]bookapi.Envelope, 0, len(list)),
		Count:   len(list),
	}
	for _, v := range bookapi.ViewsOf(list) {
		out.Books = append(out.Books, bookapi.Envelope{Action: bookapi.ActionBook, View: v, Success: true})
	}
	return out, nil
}

func (d *Dispatcher) update(ctx context.Context, req request) (any, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	b, err := d.books.Update(ctx, id, fields)
	if err != nil {
		return nil, bookapi.Lookup(id, err)
	}
	return bookapi.Envelope{Action: bookapi.ActionUpdate, View: bookapi.ViewOf(b), Success: true, Message: common.MsgBookUpdated}, nil
}

func (d *Dispatcher) delete(ctx context.Context, req request) (any, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	ok, err := d.books.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, bookapi.NotFoundError{ID: id}
	}
	return bookapi.Envelope{Action: bookapi.ActionDelete, View: bookapi.View{ID: &id}, Success: true, Message: common.MsgBookDeleted}, nil
}
