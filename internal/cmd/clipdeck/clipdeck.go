// Package clipdeck parses CLI configuration and dispatches the project
// management subcommands against a local project store.
package clipdeck

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/louisbranch/clipdeck/internal/format"
	entrypoint "github.com/louisbranch/clipdeck/internal/platform/cmd"
	"github.com/louisbranch/clipdeck/internal/project/domain"
	"github.com/louisbranch/clipdeck/internal/session"
	"github.com/louisbranch/clipdeck/internal/storage"
	boltstore "github.com/louisbranch/clipdeck/internal/storage/bbolt"
	sqlitestore "github.com/louisbranch/clipdeck/internal/storage/sqlite"
)

// Storage backends selectable through CLIPDECK_BACKEND.
const (
	BackendBolt   = "bbolt"
	BackendSQLite = "sqlite"
)

// Config holds clipdeck command configuration.
type Config struct {
	DataDir string `env:"CLIPDECK_DATA_DIR" envDefault:"."`
	Backend string `env:"CLIPDECK_BACKEND" envDefault:"bbolt"`
	Sort    string `env:"CLIPDECK_SORT" envDefault:"updated-desc"`
}

// ParseConfig parses environment and flags into Config. Remaining
// positional arguments form the subcommand and its operands.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, nil, err
	}
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the project store")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend (bbolt or sqlite)")
	fs.StringVar(&cfg.Sort, "sort", cfg.Sort, "listing order (name|duration|created|updated, -asc or -desc)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// Run opens the configured store and executes one subcommand:
//
//	list                 print saved projects
//	create <name>        create a project
//	show <id>            print one project's timeline summary
//	rename <id> <name>   rename a project
//	delete <id>...       delete projects
func Run(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand (list, create, show, rename, delete)")
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceClipdeck, func(ctx context.Context) error {
		s := session.New(store)
		defer s.Close()

		switch args[0] {
		case "list":
			return runList(ctx, s, cfg, out)
		case "create":
			return runCreate(ctx, s, args[1:], out)
		case "show":
			return runShow(ctx, s, args[1:], out)
		case "rename":
			return runRename(ctx, s, args[1:], out)
		case "delete":
			return runDelete(ctx, s, args[1:], out)
		default:
			return fmt.Errorf("unknown subcommand %q", args[0])
		}
	})
}

func openStore(cfg Config) (storage.ProjectStore, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendBolt:
		store, err := boltstore.Open(filepath.Join(cfg.DataDir, "clipdeck.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("open bbolt store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	case BackendSQLite:
		store, err := sqlitestore.Open(filepath.Join(cfg.DataDir, "clipdeck.sqlite"))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func runList(ctx context.Context, s *session.Session, cfg Config, out io.Writer) error {
	if err := s.Projects.LoadAllProjectsMetadata(ctx); err != nil {
		return err
	}

	entries := s.Projects.FilteredAndSortedProjects("", domain.SortOption(cfg.Sort))
	if len(entries) == 0 {
		fmt.Fprintln(out, "no projects")
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %s  %s  updated %s\n",
			entry.ID, entry.Name, format.Duration(entry.Duration),
			entry.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runCreate(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: create <name>")
	}

	projectID, err := s.Projects.CreateNewProject(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, projectID)
	return nil
}

func runShow(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}

	if err := s.Projects.LoadProject(ctx, args[0]); err != nil {
		return err
	}
	project, ok := s.Projects.ActiveProject()
	if !ok {
		return fmt.Errorf("project %q did not activate", args[0])
	}

	fmt.Fprintf(out, "%s (%s)\n", project.Metadata.Name, project.Metadata.ID)
	fmt.Fprintf(out, "duration %s, %d scene(s)\n", format.Duration(project.Duration()), len(project.Scenes))
	for _, sc := range project.Scenes {
		marker := " "
		if sc.ID == project.CurrentSceneID {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s (%s): %d track(s), %s\n",
			marker, sc.Name, sc.ID, len(sc.Tracks), format.Duration(sc.Duration()))
		for _, track := range sc.Tracks {
			fmt.Fprintf(out, "    %-8s %s: %d element(s)\n", track.Type, track.Name, len(track.Elements))
		}
	}
	return nil
}

func runRename(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rename <id> <name>")
	}

	if err := s.Projects.RenameProject(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(out, "renamed %s\n", args[0])
	return nil
}

func runDelete(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: delete <id>...")
	}

	if err := s.Projects.DeleteProjects(ctx, args); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %d project(s)\n", len(args))
	return nil
}
