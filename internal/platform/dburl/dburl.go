// Package dburl resolves DB_URL into a database/sql driver, DSN and the
// matching golang-migrate URL.
package dburl

import (
	"errors"
	"net/url"
	"strings"
)

// Memory selects the in-process repository.
const Memory = "memory"

type Dialect string

const (
	DialectMemory   Dialect = "memory"
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var (
	ErrEmpty       = errors.New("db url cannot be empty")
	ErrNoSQLiteDSN = errors.New("sqlite db url has no path")
)

const binaryResultParam = "disable_prepared_binary_result"

// Target is a resolved DB_URL.
type Target struct {
	Dialect Dialect
	Driver  string
	DSN     string
	Name    string
}

// Parse accepts "memory", sqlite://, sqlite3:// and file: DSNs for SQLite,
// and treats everything else as a Postgres URL or keyword DSN. With
// disableBinary set, Postgres URLs get disable_prepared_binary_result=yes
// unless they already carry the parameter.
func Parse(raw string, disableBinary bool) (Target, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)

	switch {
	case raw == "":
		return Target{}, ErrEmpty
	case lower == Memory:
		return Target{Dialect: DialectMemory, Name: Memory}, nil
	case isSQLite(lower):
		dsn := sqliteDSN(raw)
		if dsn == "" {
			return Target{}, ErrNoSQLiteDSN
		}
		return Target{Dialect: DialectSQLite, Driver: "sqlite", DSN: dsn, Name: sqliteName(dsn)}, nil
	}

	dsn := raw
	if disableBinary {
		dsn = withBinaryResultDisabled(raw)
	}
	return Target{Dialect: DialectPostgres, Driver: "postgres", DSN: dsn, Name: postgresName(dsn)}, nil
}

// MigrateURL is the database URL golang-migrate expects for t.
func (t Target) MigrateURL() string {
	if t.Dialect != DialectSQLite {
		return t.DSN
	}
	return "sqlite://" + strings.TrimPrefix(strings.TrimPrefix(t.DSN, "file:"), "//")
}

func isSQLite(lower string) bool {
	for _, prefix := range []string{"sqlite://", "sqlite3://", "file:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func sqliteDSN(raw string) string {
	if strings.HasPrefix(strings.ToLower(raw), "file:") {
		return raw
	}
	_, rest, _ := strings.Cut(raw, "://")
	return strings.TrimSpace(rest)
}

// sqliteName is the file's base name without extension or query.
func sqliteName(dsn string) string {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	for _, ext := range []string{".db", ".sqlite"} {
		path = strings.TrimSuffix(path, ext)
	}
	if path == "" || path == ":memory:" {
		return "sqlite"
	}
	return path
}

func withBinaryResultDisabled(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if q.Get(binaryResultParam) != "" {
		return raw
	}
	q.Set(binaryResultParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// postgresName reads the database name from a URL path or a dbname=
// keyword.
func postgresName(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		if name := strings.Trim(u.Path, "/ "); name != "" {
			return name
		}
	}
	for _, field := range strings.Fields(dsn) {
		if v, ok := strings.CutPrefix(field, "dbname="); ok {
			if name := strings.Trim(v, `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}
