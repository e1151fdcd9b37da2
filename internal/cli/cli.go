// Package cli implements the urbanai command-line interface.
//
// This package provides commands for building scene artifacts from the city
// geometry service, viewing them interactively in the terminal, serving the
// scene API over HTTP, and managing the local cache and session. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - scene: Fetch geometry and write the composed scene artifact
//   - view: Explore a building's scene interactively in the terminal
//   - serve: Run the HTTP scene API
//   - login/logout/whoami: Manage the geometry service session
//   - cache: Manage the local response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/buildinfo"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/cache"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/config"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/httputil"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations/auth"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations/buildings"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations/citydb"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/pipeline"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/session"
)

const appName = "urbanai"

// cliSessionID is the stable ID under which the CLI session is persisted.
const cliSessionID = "cli"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "UrbanAI renders city building scenes in the terminal",
		Long:         `UrbanAI fetches building geometry from the city geometry service, normalizes it for rendering, and composes categorized scene layers you can explore in the terminal or serve over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/urbanai/config.toml)")

	root.AddCommand(c.sceneCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.loginCommand())
	root.AddCommand(c.logoutCommand())
	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newRunner assembles a pipeline runner from the loaded config.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.Framing = c.cfg.FramingDuration()

	provider, err := c.newAuthProvider(ctx)
	if err != nil {
		return nil, err
	}
	token := provider.Token

	runner.Geometry = citydb.NewClient(c.cfg.Services.GeometryURL, nil, token)
	if c.cfg.Services.BuildingsURL != "" {
		runner.Buildings = buildings.NewClient(c.cfg.Services.BuildingsURL, nil, token)
	}
	return runner, nil
}

// newAuthProvider selects the credential source: a static token when one is
// configured, otherwise the persisted session.
func (c *CLI) newAuthProvider(ctx context.Context) (auth.Provider, error) {
	if c.cfg.Auth.Token != "" {
		return auth.NewStaticProvider(c.cfg.Auth.Token), nil
	}
	store, err := c.sessionStore()
	if err != nil {
		return nil, err
	}
	return auth.NewSessionProvider(ctx, auth.SessionConfig{
		TokenURL:  c.cfg.Auth.TokenURL,
		ClientID:  c.cfg.Auth.ClientID,
		Username:  c.cfg.Auth.Username,
		Password:  os.Getenv("URBANAI_PASSWORD"),
		SessionID: cliSessionID,
	}, store)
}

func (c *CLI) sessionStore() (session.Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(filepath.Join(dir, "sessions"))
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		// Redis may still be coming up when the CLI starts; bounded
		// linear retry, then fail.
		var store cache.Cache
		err := httputil.RetryLinear(ctx, 3, time.Second, func() error {
			var err error
			store, err = cache.NewRedisCacheURL(ctx, c.cfg.Cache.RedisURL)
			if err != nil {
				return &httputil.RetryableError{Err: err}
			}
			return nil
		})
		return store, err
	default:
		dir := c.cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/urbanai/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory (~/.config/urbanai/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
