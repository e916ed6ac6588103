package grpc

import (
	"errors"

	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// sessionMetadataKey — ключ метаданных с идентификатором сессии.
const sessionMetadataKey = "x-session-id"

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrNoValidItems):
		return status.Error(codes.FailedPrecondition, presenter.NoValidItems)
	case errors.Is(err, e.ErrOrderNotFound):
		return status.Error(codes.NotFound, "Order not found.")
	case errors.Is(err, e.ErrProductNotFound):
		return status.Error(codes.NotFound, "Product not found.")
	case errors.Is(err, e.ErrMissingFields):
		return status.Error(codes.InvalidArgument, "Required fields are missing.")
	case errors.Is(err, e.ErrNoItems):
		return status.Error(codes.InvalidArgument, "No items provided.")
	case errors.Is(err, e.ErrInvalidPrice):
		return status.Error(codes.InvalidArgument, "Price must be a non-negative number.")
	case errors.Is(err, e.ErrStoreWrite):
		return status.Error(codes.Unavailable, "Failed to place order: the order was not saved.")
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

func sessionFromContext(md metadata.MD) string {
	if vals := md.Get(sessionMetadataKey); len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	return ""
}
