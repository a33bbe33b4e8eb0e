package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/bookhub/internal/logging"
	pb "github.com/dmitrijs2005/bookhub/internal/proto"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

type GRPCServer struct {
	pb.UnimplementedBookServiceServer
	address string
	books   *services.BookService
	logger  logging.Logger
	metrics *metrics.Recorder
}

func NewGRPCServer(a string, l logging.Logger, bs *services.BookService, m *metrics.Recorder) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		books:   bs,
		metrics: m,
	}
}

// NewServer builds the grpc.Server with the interceptors, the book service
// and server reflection registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.metricsInterceptor),
	)
	pb.RegisterBookServiceServer(srv, s)
	reflection.Register(srv)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
