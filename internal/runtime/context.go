// Package runtime provides application runtime context for Plantcare.
package runtime

import (
	"context"
	"io"
	"log/slog"

	"github.com/manav03panchal/plantcare/internal/config"
	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/logging"
	"github.com/manav03panchal/plantcare/internal/output"
	"github.com/manav03panchal/plantcare/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	DB        *storage.DB
	SessionDB *storage.DB
	Formatter *output.Formatter

	// Repositories
	Store   *storage.ReportStore
	Prefs   *storage.PrefsRepo
	Session *storage.SessionRepo

	Presenter  output.ViewPresenter
	Controller *controller.Controller

	// Debug mode
	Debug bool

	reqCtx    context.Context
	logCloser io.Closer
}

// Options configures the runtime context.
type Options struct {
	// ConfigFile overrides the config file location.
	ConfigFile string
	// InMemory forces in-memory storage regardless of configuration.
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	// UI marks a long-lived terminal UI session: logs go to the rotating
	// log file instead of stderr, and unsaved changes are kept in memory.
	UI bool
	// Confirmer answers delete prompts. Defaults to always yes.
	Confirmer controller.Confirmer
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.ConfigFile})
	if err != nil {
		return nil, err
	}
	if opts.InMemory {
		cfg.Storage.Path = config.InMemory
	}

	c := &Context{Config: cfg, Debug: opts.Debug}
	if err := c.initLogging(opts); err != nil {
		return nil, err
	}
	c.reqCtx = logging.NewRequestContext(context.Background())

	inMemory := config.IsInMemory(cfg.Storage.Path)
	db, err := storage.Open(storage.Options{
		Path:     cfg.Storage.Path,
		InMemory: inMemory,
	})
	if err != nil {
		c.closeLog()
		return nil, err
	}
	c.DB = db
	if c.SessionDB, err = openSession(cfg.Storage.SessionPath, inMemory); err != nil {
		c.Close()
		return nil, err
	}

	if inMemory {
		c.Store = storage.NewReportStore(db)
	} else {
		c.Store = storage.NewReportStoreForDB(db, cfg.Storage.MinFreeSpace)
	}
	c.Prefs = storage.NewPrefsRepo(db)
	c.Session = storage.NewSessionRepo(c.SessionDB)

	// Create formatter
	c.Formatter = output.NewFormatter()
	c.Formatter.Format = opts.Format
	c.Formatter.ColorMode = opts.ColorMode

	c.Presenter = output.NewPresenter(c.Formatter)
	c.Controller = controller.New(controller.Options{
		Store:       c.Store,
		Prefs:       c.Prefs,
		Session:     c.Session,
		Presenter:   c.Presenter,
		Confirmer:   opts.Confirmer,
		KeepUnsaved: opts.UI,
	})
	c.Controller.Init()

	logging.DebugContext(c.reqCtx, "runtime ready",
		"storage", cfg.Storage.Path, logging.KeyCount, c.Store.Len())
	return c, nil
}

// openSession opens the session database. Without a usable runtime
// directory, session values live only as long as the process.
func openSession(path string, inMemory bool) (*storage.DB, error) {
	if !inMemory && path != "" && !config.IsInMemory(path) {
		db, err := storage.Open(storage.Options{Path: path})
		if err == nil {
			return db, nil
		}
		logging.Warn("session store unavailable, using memory", logging.KeyError, err)
	}
	return storage.Open(storage.Options{InMemory: true})
}

func (c *Context) initLogging(opts Options) error {
	cfg := logging.DefaultConfig()
	if opts.Debug {
		cfg = logging.DebugConfig()
	}

	if opts.UI && c.Config.Log.File != "" {
		w, err := logging.OpenFile(logging.FileOptions{
			Path:       c.Config.Log.File,
			MaxSizeMB:  c.Config.Log.MaxSizeMB,
			MaxBackups: c.Config.Log.MaxBackups,
			MaxAgeDays: c.Config.Log.MaxAgeDays,
		})
		if err != nil {
			return err
		}
		cfg.Output = w
		cfg.JSON = true
		if !opts.Debug {
			cfg.Level = slog.LevelInfo
		}
		c.logCloser = w
	}

	logging.Init(cfg)
	return nil
}

func (c *Context) closeLog() {
	if c.logCloser != nil {
		c.logCloser.Close()
		c.logCloser = nil
		logging.Init(logging.DefaultConfig())
	}
}

// RequestContext returns the context carrying this run's request id.
func (c *Context) RequestContext() context.Context {
	return c.reqCtx
}

// Dispatch sends a command to the controller under the request context.
func (c *Context) Dispatch(cmd controller.Command) error {
	return c.Controller.Dispatch(c.reqCtx, cmd)
}

// Flush writes any output the presenter buffered.
func (c *Context) Flush() error {
	return c.Presenter.Flush()
}

// Close closes the runtime context.
func (c *Context) Close() error {
	var firstErr error
	if c.SessionDB != nil {
		if err := c.SessionDB.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closeLog()
	return firstErr
}

// CLIFormatter returns a CLI formatter in the current theme.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	f := output.NewCLIFormatter(c.Formatter)
	f.SetDark(c.Controller.Dark())
	return f
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}
