// Package api provides the gRPC service implementation for the
// parameter store.
package api

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/solatis/paramkeeper/internal/core/config"
	"github.com/solatis/paramkeeper/internal/core/store"
	"github.com/solatis/paramkeeper/internal/types"
	"github.com/solatis/paramkeeper/internal/wire"
)

// ParamStoreService implements wire.ParamStoreServer.
// Thin orchestration layer delegating to the store package.
type ParamStoreService struct {
	store *store.Store
	cfg   *config.ServiceConfig
}

// NewParamStoreService creates the service instance with dependencies.
func NewParamStoreService(st *store.Store, cfg *config.ServiceConfig) (*ParamStoreService, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	return &ParamStoreService{store: st, cfg: cfg}, nil
}

// GetSet returns the stored parameter set with the requested name.
func (s *ParamStoreService) GetSet(ctx context.Context, req *wire.GetSetRequest) (*wire.GetSetResponse, error) {
	if req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "set name must not be empty")
	}

	set, err := s.store.LoadSet(ctx, req.Name)
	if err != nil {
		if errors.Is(err, types.ErrSetNotFound) {
			return nil, status.Errorf(codes.NotFound, "set %q not found", req.Name)
		}
		return nil, status.Errorf(codes.Unavailable, "failed to load set: %v", err)
	}

	return &wire.GetSetResponse{Name: req.Name, Set: set}, nil
}

// PutSet stores (or replaces) a named parameter set.
// Decode already re-validated every entry, so only the size cap is
// checked here.
func (s *ParamStoreService) PutSet(ctx context.Context, req *wire.PutSetRequest) (*wire.PutSetResponse, error) {
	if req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "set name must not be empty")
	}
	if req.Set == nil {
		return nil, status.Error(codes.InvalidArgument, "set must not be empty")
	}
	if req.Set.Len() > s.cfg.MaxSetParams {
		return nil, status.Errorf(codes.InvalidArgument, "set exceeds %d parameters", s.cfg.MaxSetParams)
	}

	id, err := s.store.SaveSet(ctx, req.Name, req.Set)
	if err != nil {
		if errors.Is(err, types.ErrInvalidValue) {
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		}
		return nil, status.Errorf(codes.Unavailable, "failed to save set: %v", err)
	}

	return &wire.PutSetResponse{SetID: string(id)}, nil
}

// ListSets returns all stored set names, ordered by name.
func (s *ParamStoreService) ListSets(ctx context.Context, req *wire.ListSetsRequest) (*wire.ListSetsResponse, error) {
	infos, err := s.store.ListSets(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to list sets: %v", err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}

	return &wire.ListSetsResponse{Names: names}, nil
}
