package grpc

import (
	"context"
	"path"
	"runtime/debug"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// recoveryInterceptor turns a handler panic into codes.Internal so the call
// still gets exactly one response.
func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {

	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "Handler panic", "method", info.FullMethod, "panic", p, "stack", string(debug.Stack()))
			resp, err = nil, status.Error(codes.Internal, "internal error")
		}
	}()

	return handler(ctx, req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	resp, err := handler(ctx, req)

	s.metrics.Observe("grpc", path.Base(info.FullMethod), statusOutcome(err))
	return resp, err
}

type outcomeError struct{ code codes.Code }

func (e outcomeError) Error() string { return e.code.String() }

func (e outcomeError) Is(target error) bool {
	switch e.code {
	case codes.NotFound:
		return target == common.ErrorNotFound
	case codes.InvalidArgument:
		return target == common.ErrorValidation
	case codes.Unimplemented:
		return target == common.ErrorUnknownOperation
	default:
		return false
	}
}

// statusOutcome rebuilds a sentinel-matching error from a status so that
// metrics label gRPC calls like every other adapter.
func statusOutcome(err error) error {
	if err == nil {
		return nil
	}
	return outcomeError{code: status.Code(err)}
}
