package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TGartman/SSC/config"
	"github.com/TGartman/SSC/internal/entity"
	"github.com/TGartman/SSC/internal/pkg/composer"
	"github.com/TGartman/SSC/internal/pkg/graph"
	"github.com/TGartman/SSC/internal/pkg/kafka"
)

type PostService interface {
	Compose(ctx context.Context, req *entity.ComposeRequest) (*entity.ComposeResponse, error)
	Batch(ctx context.Context, req *entity.BatchRequest) ([]entity.BatchOutcome, error)
	ListImages(ctx context.Context, req *entity.ListRequest) ([]entity.ImageInfo, error)
}

type postService struct {
	client   graph.Client
	producer kafka.Producer
	app      config.AppConfig
	topic    string
	brands   map[string]config.BrandConfig

	// injectable for tests; the batch loop sleeps between items
	sleep func(time.Duration)
}

func NewPostService(client graph.Client, producer kafka.Producer, cfg *config.Config) PostService {
	brands := make(map[string]config.BrandConfig, len(cfg.Brands))
	for _, b := range cfg.Brands {
		brands[strings.ToLower(b.Name)] = b
	}
	return &postService{
		client:   client,
		producer: producer,
		app:      cfg.App,
		topic:    cfg.Kafka.Topic,
		brands:   brands,
		sleep:    time.Sleep,
	}
}

func (s *postService) brand(name string) (config.BrandConfig, error) {
	if name == "" {
		return config.BrandConfig{}, fmt.Errorf("%w: brand is required", entity.ErrBadRequest)
	}
	b, ok := s.brands[strings.ToLower(name)]
	if !ok {
		return config.BrandConfig{}, fmt.Errorf("%w: unknown brand %q", entity.ErrBadRequest, name)
	}
	return b, nil
}

func (s *postService) preset(format string) (entity.CanvasPreset, error) {
	if format == "" {
		return entity.CanvasPreset{}, fmt.Errorf("%w: format is required", entity.ErrBadRequest)
	}
	p, ok := entity.PresetByName(format)
	if !ok {
		return entity.CanvasPreset{}, fmt.Errorf("%w: unknown format %q, supported: %s",
			entity.ErrBadRequest, format, strings.Join(entity.PresetNames(), ", "))
	}
	return p, nil
}

// style merges the configured defaults with per-request overrides. Range and
// enum validation happens in the composer.
func (s *postService) style(o *entity.StyleOverrides) composer.Style {
	st := composer.DefaultStyle()
	st.SafePaddingPx = s.app.SafePaddingPx
	st.LogoMaxWidthPct = s.app.LogoMaxWidthPct
	if o == nil {
		return st
	}
	if o.SafePaddingPx != nil {
		st.SafePaddingPx = *o.SafePaddingPx
	}
	if o.LogoMaxWidthPct != nil {
		st.LogoMaxWidthPct = *o.LogoMaxWidthPct
	}
	if o.LogoPlacement != "" {
		st.LogoPlacement = composer.Placement(o.LogoPlacement)
	}
	if o.TextAlign != "" {
		st.TextAlign = composer.Align(o.TextAlign)
	}
	return st
}
