// Package app wires process settings, logging, output and the lazily opened
// collaborators every action reaches through its dependencies.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/starcluster/starcluster/internal/cloud"
	"github.com/starcluster/starcluster/internal/config"
	"github.com/starcluster/starcluster/internal/dispatchers"
	"github.com/starcluster/starcluster/internal/domain"
	"github.com/starcluster/starcluster/internal/log"
	"github.com/starcluster/starcluster/internal/paths"
	"github.com/starcluster/starcluster/internal/store"
	"github.com/starcluster/starcluster/internal/ui"
	"github.com/starcluster/starcluster/internal/ui/style"
)

// EnvPrefix prefixes every environment variable a setting is read from.
const EnvPrefix = "STARCLUSTER"

// Version is set at build time.
var Version = "dev"

// Options configures the application factory.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	DefaultConfigPath string
	DBPath            string
	LogPath           string
}

// DefaultOptions returns the options used by the starcluster binary.
func DefaultOptions() Options {
	cfgPath, err := paths.ConfigFilePath()
	if err != nil {
		cfgPath = ".starclustercfg"
	}
	return Options{
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
		DefaultConfigPath: cfgPath,
		DBPath:            paths.DBPath(),
		LogPath:           paths.LogFilePath(),
	}
}

// Application holds everything shared by one invocation.
type Application struct {
	Settings     *viper.Viper
	Logger       domain.Logger
	Output       *ui.Writer
	InvocationID string

	opts    Options
	console *log.Logger

	mu       sync.Mutex
	registry domain.ClusterRegistry
}

// New creates an Application. Settings come from STARCLUSTER_* environment
// variables until Configure applies the global flags.
func New(opts Options) *Application {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range domain.SettingKeys {
		v.SetDefault(key.Name, key.Default)
	}
	v.SetDefault("config", opts.DefaultConfigPath)

	console := log.New(opts.Stderr, log.LevelInfo)
	a := &Application{
		Settings:     v,
		Logger:       console,
		InvocationID: uuid.NewString(),
		opts:         opts,
		console:      console,
	}

	if v.GetBool("enable_log") && opts.LogPath != "" {
		if file, err := log.Open(opts.LogPath, log.ParseLevel(v.GetString("log_level"))); err == nil {
			a.Logger = log.Tee{console, file}
		}
	}

	a.Output = ui.NewWriterTo(opts.Stdout, ui.WithPagerCommand(v.GetString("pager")))
	style.Init(v.GetBool("color") && a.Output.IsTerminal())
	return a
}

// Configure applies the parsed global options. Flags given on the command
// line take precedence over the environment.
func (a *Application) Configure(global *dispatchers.Options) {
	for _, key := range global.Keys() {
		if global.Changed(key) {
			a.Settings.Set(key, global.Get(key))
		}
	}
	if a.Settings.GetBool("debug") {
		a.console.SetLevel(log.LevelDebug)
	}
	a.Logger.Debug("invocation %s, config %s", a.InvocationID, a.ConfigPath())
}

// ConfigPath returns the cluster configuration file in effect.
func (a *Application) ConfigPath() string {
	return a.Settings.GetString("config")
}

// LoadConfig loads the cluster configuration. When the default file is
// missing a starter file is written there first.
func (a *Application) LoadConfig() (*config.Config, error) {
	path := a.ConfigPath()
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrConfigNotFound) || path != a.opts.DefaultConfigPath {
		return nil, err
	}

	if werr := config.WriteTemplate(path); werr != nil {
		return nil, fmt.Errorf("%w (writing a starter config failed: %v)", err, werr)
	}
	a.Logger.Info("Wrote a starter config to %s", path)
	return nil, fmt.Errorf("%w: fill in %s and rerun", err, path)
}

// Registry opens the local cluster registry on first use.
func (a *Application) Registry(ctx context.Context) (domain.ClusterRegistry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.registry != nil {
		return a.registry, nil
	}
	s, err := store.New(ctx, a.opts.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open cluster registry: %w", err)
	}
	a.Logger.Debug("opened cluster registry %s", s.Path())
	a.registry = s
	return s, nil
}

// Storage connects to object storage with the account settings of cfg.
func (a *Application) Storage(ctx context.Context, cfg *config.Config) (domain.ObjectStorage, error) {
	return cloud.NewStorage(ctx, cloud.Settings{
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Region:          cfg.AWS.Region,
		Endpoint:        cfg.AWS.Endpoint,
	})
}

// Close releases the registry and the log file.
func (a *Application) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	if a.registry != nil {
		errs = append(errs, a.registry.Close())
		a.registry = nil
	}
	if a.Logger != nil {
		errs = append(errs, a.Logger.Close())
	}
	return errors.Join(errs...)
}
