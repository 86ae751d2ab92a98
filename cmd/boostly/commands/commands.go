package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/boostly/boostly/internal/config"
	"github.com/boostly/boostly/internal/conventions"
	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug       bool
	NoLog       bool
	NoColor     bool
	LoggerType  string
	DBPath      string
	ConfigPath  string
	APIURL      string
	APIToken    string
	UserID      string
	FakeBackend bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	dataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	app.Flag("db-path", "Path to the SQLite sessions database file.").Envar("BOOSTLY_DB_PATH").Default(conventions.SessionsDBPath(dataDir)).StringVar(&c.DBPath)
	app.Flag("config", "Path to the client configuration file.").Envar("BOOSTLY_CONFIG").Default(conventions.ConfigPath(dataDir)).StringVar(&c.ConfigPath)

	app.Flag("api-url", "Base URL of the marketplace API.").Envar("BOOSTLY_API_URL").StringVar(&c.APIURL)
	app.Flag("api-token", "Marketplace API bearer token.").Envar("BOOSTLY_API_TOKEN").StringVar(&c.APIToken)
	app.Flag("user-id", "Current user id, used for ownership checks and claims.").Envar("BOOSTLY_USER_ID").StringVar(&c.UserID)
	app.Flag("fake-backend", "Use an in-memory fake backend instead of the real API.").BoolVar(&c.FakeBackend)

	return c
}

// ResolveConfig fills API settings that were not set by flags or env vars
// from the configuration file. A missing file is not an error.
func (c *RootCommand) ResolveConfig(ctx context.Context) error {
	repo := config.NewYAMLRepository(os.DirFS(filepath.Dir(c.ConfigPath)))
	cfg, err := repo.GetConfig(ctx, filepath.Base(c.ConfigPath))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("could not load config file: %w", err)
	}

	if c.APIURL == "" {
		c.APIURL = cfg.APIURL
	}
	if c.APIToken == "" {
		c.APIToken = cfg.APIToken
	}
	if c.UserID == "" {
		c.UserID = cfg.UserID
	}

	return nil
}
