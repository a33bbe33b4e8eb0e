// Package proto holds the bookhub.BookService contract generated from
// book_service.proto.
package proto

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative book_service.proto
