// Package cmd implements the fin command line application.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/internal/config"
	"github.com/etnz/wealth/internal/logging"
	"github.com/etnz/wealth/session"
	"github.com/etnz/wealth/store"
	"github.com/etnz/wealth/store/filestore"
	"github.com/etnz/wealth/store/memstore"
	"github.com/etnz/wealth/store/mongostore"
	"github.com/etnz/wealth/store/neo4jstore"
	"github.com/etnz/wealth/store/sqlitestore"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&showCmd{}, "record")
	c.Register(&summaryCmd{}, "record")
	c.Register(&cashFlowCmd{}, "record")
	c.Register(&adviceContextCmd{}, "record")

	c.Register(&importCmd{}, "import")
	c.Register(&sheetCmd{}, "import")
	c.Register(&schemaCmd{}, "import")

	c.Register(&profileCmd{}, "session")
	c.Register(&clearCmd{}, "session")
	c.Register(&serveCmd{}, "session")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeBackend = flag.String("store", "", "Store backend: memory, file, sqlite, mongo or neo4j. Defaults to $WEALTH_STORE or file.")
var storePath = flag.String("store-path", "", "Directory of the file and sqlite stores. Defaults to $WEALTH_STORE_PATH or .wealth.")

// stdout receives the command output.
var stdout io.Writer = os.Stdout

// sqliteFile is the database file of the sqlite store, in the store path.
const sqliteFile = "wealth.db"

// loadConfig reads the environment and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if *storeBackend != "" {
		if err := config.ValidateBackend(*storeBackend); err != nil {
			return config.Config{}, err
		}
		cfg.Store.Backend = *storeBackend
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	return cfg, nil
}

// openStore opens the store backend selected in cfg.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memstore.New(), nil
	case config.BackendFile:
		return filestore.New(cfg.Store.Path), nil
	case config.BackendSQLite:
		return sqlitestore.New(filepath.Join(cfg.Store.Path, sqliteFile))
	case config.BackendMongo:
		return mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case config.BackendNeo4j:
		return neo4jstore.Connect(ctx, neo4jstore.Options{
			URI:      cfg.Graph.URI,
			Database: cfg.Graph.Database,
			Username: cfg.Graph.Username,
			Password: cfg.Graph.Password,
		})
	default:
		return nil, config.ValidateBackend(cfg.Store.Backend)
	}
}

// app is what a command needs to work on the active record.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   store.Store
	session *session.Session
}

// openApp loads the configuration, opens the store and selects the active
// record. Extra session options are applied last.
func openApp(ctx context.Context, opts ...session.Option) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	logger := logging.Setup(cfg.Logging)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not open %s store: %w", cfg.Store.Backend, err)
	}

	opts = append([]session.Option{session.WithKey(cfg.Store.Key), session.WithLogger(logger)}, opts...)
	s, err := session.Open(ctx, st, wealth.DefaultBundle(), opts...)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, store: st, session: s}, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store failed", "error", err)
	}
}

// withApp opens the app, runs f and closes the app. Errors are printed.
func withApp(ctx context.Context, f func(*app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	return f(a)
}

// printMarkdown renders md for the terminal. The raw markdown is printed when
// it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// printJSON writes v as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
