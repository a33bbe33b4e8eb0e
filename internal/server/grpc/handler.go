package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/bookhub/internal/common"
	pb "github.com/dmitrijs2005/bookhub/internal/proto"
	"github.com/dmitrijs2005/bookhub/internal/server/bookapi"
	"github.com/dmitrijs2005/bookhub/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) GetBook(ctx context.Context, req *pb.GetBookRequest) (*pb.Book, error) {

	b, err := s.books.Get(ctx, req.Id)
	if err != nil {
		return nil, s.toStatus(ctx, bookapi.Lookup(req.Id, err))
	}

	return toProto(b), nil
}

func (s *GRPCServer) GetAllBooks(ctx context.Context, req *pb.GetAllBooksRequest) (*pb.GetAllBooksResponse, error) {

	list, err := s.books.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.GetAllBooksResponse{Books: make([]*pb.Book, 0, len(list))}
	for _, b := range list {
		resp.Books = append(resp.Books, toProto(b))
	}
	return resp, nil
}

func (s *GRPCServer) CreateBook(ctx context.Context, req *pb.CreateBookRequest) (*pb.Book, error) {

	fields, err := input(req.Title, req.Price, req.Author, req.PublicationDate).Fields(bookapi.ClearDateWhenAbsent)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	b, err := s.books.Create(ctx, fields)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Book created", "id", *b.ID)
	return toProto(b), nil
}

func (s *GRPCServer) UpdateBook(ctx context.Context, req *pb.UpdateBookRequest) (*pb.Book, error) {

	fields, err := input(req.Title, req.Price, req.Author, req.PublicationDate).Fields(bookapi.ClearDateWhenAbsent)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	b, err := s.books.Update(ctx, req.Id, fields)
	if err != nil {
		return nil, s.toStatus(ctx, bookapi.Lookup(req.Id, err))
	}

	s.logger.Info(ctx, "Book updated", "id", req.Id)
	return toProto(b), nil
}

func (s *GRPCServer) DeleteBook(ctx context.Context, req *pb.DeleteBookRequest) (*pb.DeleteBookResponse, error) {

	ok, err := s.books.Delete(ctx, req.Id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if !ok {
		return nil, s.toStatus(ctx, bookapi.NotFoundError{ID: req.Id})
	}

	s.logger.Info(ctx, "Book deleted", "id", req.Id)
	return &pb.DeleteBookResponse{Success: true, Message: common.MsgBookDeleted}, nil
}

func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}

// input maps proto3 scalars, where "" cannot be told from unset, onto the
// canonical input. Price has no such ambiguity worth resolving: 0 is kept.
func input(title string, price float64, author, date string) bookapi.Input {
	return bookapi.Input{
		Title:           blank(title),
		Price:           &price,
		Author:          blank(author),
		PublicationDate: blank(date),
	}
}

func blank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// toProto flattens absent fields to zero values.
func toProto(b *models.Book) *pb.Book {
	out := &pb.Book{}
	if b.ID != nil {
		out.Id = *b.ID
	}
	if b.Title != nil {
		out.Title = *b.Title
	}
	if b.Price != nil {
		out.Price = *b.Price
	}
	if b.Author != nil {
		out.Author = *b.Author
	}
	if d := bookapi.FormatDate(b.PublicationDate); d != nil {
		out.PublicationDate = *d
	}
	return out
}
