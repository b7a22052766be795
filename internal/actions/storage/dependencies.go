package storage

import (
	"context"

	"github.com/starcluster/starcluster/internal/config"
	"github.com/starcluster/starcluster/internal/domain"
)

type Deps struct {
	// config
	LoadConfig func() (*config.Config, error)

	// object storage, opened with the loaded account settings
	Storage func(context.Context, *config.Config) (domain.ObjectStorage, error)

	// io
	Log     domain.Logger
	Printf  func(string, ...any) (int, error)
	Println func(...any) (int, error)
}

func (d Deps) open(ctx context.Context) (*config.Config, domain.ObjectStorage, error) {
	cfg, err := d.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := d.Storage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}
