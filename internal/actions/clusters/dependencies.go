package clusters

import (
	"context"
	"time"

	"github.com/starcluster/starcluster/internal/config"
	"github.com/starcluster/starcluster/internal/domain"
)

type Deps struct {
	// config
	LoadConfig func() (*config.Config, error)

	// cluster registry
	Registry func(context.Context) (domain.ClusterRegistry, error)

	// io
	Log     domain.Logger
	Printf  func(string, ...any) (int, error)
	Println func(...any) (int, error)

	// misc
	Now func() time.Time
}
