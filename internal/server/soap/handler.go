// Package soap serves the catalog and client lookups as SOAP 1.1 document
// exchange on a single endpoint. The first child of the Body, qualified by
// namespace, selects the operation.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/bookapi"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
)

const maxBodyBytes = 1 << 20

type operation func(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error)

type Handler struct {
	books   *services.BookService
	clients *services.ClientDirectory
	logger  logging.Logger
	metrics *metrics.Recorder
	ops     map[xml.Name]operation
}

func NewHandler(l logging.Logger, bs *services.BookService, cd *services.ClientDirectory, m *metrics.Recorder) *Handler {
	h := &Handler{
		books:   bs,
		clients: cd,
		logger:  l.With("module", "soap"),
		metrics: m,
	}
	h.ops = map[xml.Name]operation{
		{Space: BooksNS, Local: "createBookRequest"}:  h.createBook,
		{Space: BooksNS, Local: "updateBookRequest"}:  h.updateBook,
		{Space: BooksNS, Local: "deleteBookRequest"}:  h.deleteBook,
		{Space: BooksNS, Local: "getBookRequest"}:     h.getBook,
		{Space: BooksNS, Local: "getAllBooksRequest"}: h.getAllBooks,
		{Space: BanqueNS, Local: "getSoldeRequest"}:   h.getSolde,
		{Space: BanqueNS, Local: "getRoleRequest"}:    h.getRole,
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	d := xml.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	start, err := findPayload(d)
	if err != nil {
		h.metrics.Observe("soap", "unknown", err)
		h.writeFault(ctx, w, faultClient, "Malformed SOAP request: "+err.Error())
		return
	}

	name := start.Name.Local
	op, ok := h.ops[start.Name]
	if !ok {
		qualified := fmt.Sprintf("{%s}%s", start.Name.Space, name)
		h.metrics.Observe("soap", "unknown", common.ErrorUnknownOperation)
		h.logger.Warn(ctx, "Unknown SOAP operation", "element", qualified)
		h.writeFault(ctx, w, faultClient, "No endpoint mapping found for "+qualified)
		return
	}

	h.logger.Debug(ctx, "SOAP request", "operation", name)

	resp, err := op(ctx, d, start)
	h.metrics.Observe("soap", name, err)
	if err != nil {
		code, msg := h.describe(ctx, name, err)
		h.writeFault(ctx, w, code, msg)
		return
	}

	h.writeEnvelope(ctx, w, http.StatusOK, resp)
}

// findPayload walks to the first element inside Envelope/Body. The decoder
// keeps namespace bindings declared on ancestors, so prefixes resolve.
func findPayload(d *xml.Decoder) (*xml.StartElement, error) {
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("no request element in Body")
			}
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch depth {
			case 0:
				if t.Name.Space != EnvelopeNS || t.Name.Local != "Envelope" {
					return nil, fmt.Errorf("unexpected root element %q", t.Name.Local)
				}
			case 1:
				if t.Name.Space != EnvelopeNS {
					return nil, fmt.Errorf("unexpected element %q", t.Name.Local)
				}
				if t.Name.Local == "Header" {
					if err := d.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				if t.Name.Local != "Body" {
					return nil, fmt.Errorf("unexpected element %q", t.Name.Local)
				}
			case 2:
				start := t.Copy()
				return &start, nil
			}
			depth++
		case xml.EndElement:
			depth--
			if depth < 2 {
				return nil, errors.New("no request element in Body")
			}
		}
	}
}

func (h *Handler) describe(ctx context.Context, op string, err error) (string, string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		var nf bookapi.NotFoundError
		if errors.As(err, &nf) {
			return faultClient, nf.Error()
		}
		return faultClient, "Book not found"
	case errors.Is(err, common.ErrorInvalidID):
		return faultClient, "Invalid book id"
	case errors.Is(err, common.ErrorValidation):
		return faultClient, err.Error()
	case errors.As(err, new(*xml.SyntaxError)), errors.As(err, new(*strconv.NumError)):
		return faultClient, "Malformed SOAP request: " + err.Error()
	default:
		h.logger.Error(ctx, "SOAP operation failed", "operation", op, "error", err)
		return faultServer, "Internal error"
	}
}

func (h *Handler) writeFault(ctx context.Context, w http.ResponseWriter, code, msg string) {
	h.writeEnvelope(ctx, w, http.StatusInternalServerError, fault{Code: code, String: msg})
}

func (h *Handler) writeEnvelope(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<soap:Envelope xmlns:soap="` + EnvelopeNS + `"><soap:Body>`)
	if err := xml.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error(ctx, "SOAP response encoding failed", "error", err)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(xml.Header)
		buf.WriteString(`<soap:Envelope xmlns:soap="` + EnvelopeNS + `"><soap:Body>`)
		buf.WriteString(`<soap:Fault><faultcode>soap:Server</faultcode><faultstring>Internal error</faultstring></soap:Fault>`)
	}
	buf.WriteString(`</soap:Body></soap:Envelope>`)

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// --- operations ---

func (in bookInput) toInput() (bookapi.Input, error) {
	out := bookapi.Input{
		Title:           blankAsNil(in.Title),
		Author:          blankAsNil(in.Author),
		PublicationDate: blankAsNil(in.PublicationDate),
	}
	if p := blankAsNil(in.Price); p != nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(*p), 64)
		if err != nil {
			return bookapi.Input{}, fmt.Errorf("price %q: %w", *p, common.ErrorValidation)
		}
		out.Price = &v
	}
	return out, nil
}

// Empty elements are how document clients say "no value".
func blankAsNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func (h *Handler) createBook(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error) {
	var req createBookRequest
	if err := d.DecodeElement(&req, start); err != nil {
		return nil, err
	}

	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	fields, err := in.Fields(bookapi.ClearDateWhenAbsent)
	if err != nil {
		return nil, err
	}

	b, err := h.books.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	h.logger.Info(ctx, "Book created", "id", *b.ID)
	return createBookResponse{Book: toXML(bookapi.ViewOf(b))}, nil
}

func (h *Handler) updateBook(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error) {
	var req updateBookRequest
	if err := d.DecodeElement(&req, start); err != nil {
		return nil, err
	}

	id, err := bookapi.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	fields, err := in.Fields(bookapi.KeepDateWhenAbsent)
	if err != nil {
		return nil, err
	}

	b, err := h.books.Update(ctx, id, fields)
	if err != nil {
		return nil, bookapi.Lookup(id, err)
	}

	h.logger.Info(ctx, "Book updated", "id", id)
	return updateBookResponse{Book: toXML(bookapi.ViewOf(b))}, nil
}

func (h *Handler) deleteBook(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error) {
	var req idRequest
	if err := d.DecodeElement(&req, start); err != nil {
		return nil, err
	}

	id, err := bookapi.ParseID(req.ID)
	if err != nil {
		return nil, err
	}

	ok, err := h.books.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, bookapi.NotFoundError{ID: id}
	}

	h.logger.Info(ctx, "Book deleted", "id", id)
	return deleteBookResponse{Success: true, Message: common.MsgBookDeleted}, nil
}

func (h *Handler) getBook(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error) {
	var req idRequest
	if err := d.DecodeElement(&req, start); err != nil {
		return nil, err
	}

	id, err := bookapi.ParseID(req.ID)
	if err != nil {
		return nil, err
	}

	b, err := h.books.Get(ctx, id)
	if err != nil {
		return nil, bookapi.Lookup(id, err)
	}

	return getBookResponse{Book: toXML(bookapi.ViewOf(b))}, nil
}

func (h *Handler) getAllBooks(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error) {
	if err := d.Skip(); err != nil {
		return nil, err
	}

	list, err := h.books.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := getAllBooksResponse{Books: make([]*bookXML, 0, len(list)), Count: len(list)}
	for _, v := range bookapi.ViewsOf(list) {
		resp.Books = append(resp.Books, toXML(v))
	}
	return resp, nil
}

func (h *Handler) getSolde(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error) {
	var req phoneRequest
	if err := d.DecodeElement(&req, start); err != nil {
		return nil, err
	}
	return soldeResponse{Solde: h.clients.Balance(req.Tel)}, nil
}

func (h *Handler) getRole(ctx context.Context, d *xml.Decoder, start *xml.StartElement) (any, error) {
	var req phoneRequest
	if err := d.DecodeElement(&req, start); err != nil {
		return nil, err
	}
	return roleResponse{Role: h.clients.Role(req.Tel)}, nil
}
