package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/match-analyzer/internal/platform/dburl"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

type command struct {
	args string
	min  int
	exec func(m migrator, args []string, out io.Writer, logger *logging.Logger) error
}

var commands = map[string]command{
	"up":      {exec: cmdUp},
	"down":    {args: "[steps]", exec: cmdDown},
	"version": {exec: cmdVersion},
	"force":   {args: "<version>", min: 1, exec: cmdForce},
	"goto":    {args: "<version>", min: 1, exec: cmdGoto},
}

type usageError struct{ reason string }

func (e usageError) Error() string { return e.reason }

func main() {
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Service: "match-analyzer-migration"})
	err := run(os.Args[1:], os.Getenv, os.Stdout, logger)
	_ = logger.Sync()

	var usage usageError
	switch {
	case err == nil:
	case errors.As(err, &usage):
		fmt.Fprintln(os.Stderr, usage.reason)
		printUsage(os.Stderr, filepath.Base(os.Args[0]))
		os.Exit(2)
	default:
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, out io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return usageError{reason: "missing command"}
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))
	cmd, ok := commands[name]
	if !ok {
		return usageError{reason: fmt.Sprintf("unknown command %q", name)}
	}
	if len(args)-1 < cmd.min {
		return usageError{reason: fmt.Sprintf("%s requires %s", name, cmd.args)}
	}

	target, err := resolveTarget(getenv("DB_URL"), envBool(getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))
	if err != nil {
		return err
	}
	dir, err := migrationsDir(getenv)
	if err != nil {
		return err
	}
	source := "file://" + filepath.ToSlash(filepath.Join(dir, string(target.Dialect)))

	m, err := migrate.New(source, target.MigrateURL())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer closeMigrator(m, logger)

	logger = logger.With("dialect", string(target.Dialect), "command", name)
	return cmd.exec(m, args[1:], out, logger)
}

func resolveTarget(raw string, disableBinary bool) (dburl.Target, error) {
	if strings.TrimSpace(raw) == "" {
		return dburl.Target{}, errors.New("DB_URL is required")
	}
	target, err := dburl.Parse(raw, disableBinary)
	if err != nil {
		return dburl.Target{}, err
	}
	if target.Dialect == dburl.DialectMemory {
		return dburl.Target{}, errors.New("DB_URL=memory has no schema to migrate")
	}
	return target, nil
}

func cmdUp(m migrator, _ []string, _ io.Writer, logger *logging.Logger) error {
	if err := settled(m.Up(), logger); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func cmdDown(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || n <= 0 {
			return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
		}
		steps = n
	}
	if err := settled(m.Steps(-steps), logger); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func cmdVersion(m migrator, _ []string, out io.Writer, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Fprintln(out, "version: none")
		fmt.Fprintln(out, "dirty: false")
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	return nil
}

func cmdForce(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	version, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || version < 0 {
		return fmt.Errorf("force version must be a non-negative integer, got %q", args[0])
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced migration version", "version", version)
	return nil
}

func cmdGoto(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	version, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 0)
	if err != nil {
		return fmt.Errorf("goto version must be a non-negative integer, got %q", args[0])
	}
	if err := settled(m.Migrate(uint(version)), logger); err != nil {
		return err
	}
	logger.Info("migrated to version", "version", version)
	return nil
}

// settled treats "nothing to do" as success.
func settled(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m migrator, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		logger.Warn("close migrator", "error", err)
	}
}

// migrationsDir picks the first existing directory among MIGRATIONS_DIR and
// the default locations.
func migrationsDir(getenv func(string) string) (string, error) {
	candidates := append([]string{strings.TrimSpace(getenv("MIGRATIONS_DIR"))}, defaultMigrationDirs...)
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migrations directory not found in %v", candidates)
}

func envBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err == nil {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "on":
		return true
	}
	return false
}

func printUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "usage: %s <command> [args]\n\ncommands:\n", name)
	for _, c := range []string{"up", "down", "version", "force", "goto"} {
		fmt.Fprintf(w, "  %-8s %s\n", c, commands[c].args)
	}
	fmt.Fprintln(w, "\nDB_URL selects the dialect: postgres://... or sqlite://path/to/file.db")
	fmt.Fprintln(w, "MIGRATIONS_DIR overrides the migrations root")
}
