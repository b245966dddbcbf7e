package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cinemate/internal/recommend"
	"cinemate/internal/storage"
	"cinemate/internal/tmdb"
	"cinemate/pkg/config"
)

type Service struct {
	cfg         *config.Config
	catalog     *tmdb.Client
	recommender *recommend.Service

	sinkOnce sync.Once
	sink     storage.Sink
	sinkErr  error
	openSink func(ctx context.Context, location string) (storage.Sink, error)
	now      func() time.Time
}

type ServiceOptions struct {
	Config      *config.Config
	Catalog     *tmdb.Client
	Recommender *recommend.Service
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:         opts.Config,
		catalog:     opts.Catalog,
		recommender: opts.Recommender,
		openSink:    storage.Open,
		now:         time.Now,
	}
}

func (s *Service) Config() *config.Config {
	return s.cfg
}

func (s *Service) Catalog() *tmdb.Client {
	return s.catalog
}

func (s *Service) Recommender() *recommend.Service {
	return s.recommender
}

// Storage opens the configured output location on first use.
func (s *Service) Storage(ctx context.Context) (storage.Sink, error) {
	s.sinkOnce.Do(func() {
		s.sink, s.sinkErr = s.openSink(ctx, s.cfg.Output.Location)
	})
	return s.sink, s.sinkErr
}

// SaveResult writes v as indented JSON under a timestamped name and returns where it went.
func (s *Service) SaveResult(ctx context.Context, kind, query string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s result: %w", kind, err)
	}

	sink, err := s.Storage(ctx)
	if err != nil {
		return "", fmt.Errorf("open storage: %w", err)
	}

	location, err := sink.Save(ctx, storage.ResultName(kind, query, s.now()), data)
	if err != nil {
		return "", fmt.Errorf("save %s result: %w", kind, err)
	}

	slog.Debug("Saved result", "kind", kind, "location", location)
	return location, nil
}

func (s *Service) SavedResults(ctx context.Context) ([]string, error) {
	sink, err := s.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return sink.List(ctx)
}

func (s *Service) Close() error {
	if s.sink == nil {
		return nil
	}
	return s.sink.Close()
}
