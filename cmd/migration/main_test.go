package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/match-analyzer/internal/platform/dburl"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type migratorMock struct {
	mock.Mock
}

func (m *migratorMock) Up() error            { return m.Called().Error(0) }
func (m *migratorMock) Steps(n int) error    { return m.Called(n).Error(0) }
func (m *migratorMock) Migrate(v uint) error { return m.Called(v).Error(0) }
func (m *migratorMock) Force(v int) error    { return m.Called(v).Error(0) }

func (m *migratorMock) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *migratorMock) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func TestResolveTarget(t *testing.T) {
	got, err := resolveTarget("sqlite3:///var/lib/cache.db", false)
	require.NoError(t, err)
	assert.Equal(t, dburl.DialectSQLite, got.Dialect)
	assert.Equal(t, "sqlite:///var/lib/cache.db", got.MigrateURL())

	got, err = resolveTarget("postgres://u:p@db:5432/match_analyzer", true)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/match_analyzer?disable_prepared_binary_result=yes", got.MigrateURL())

	_, err = resolveTarget("memory", false)
	assert.ErrorContains(t, err, "no schema")
	_, err = resolveTarget(" ", false)
	assert.ErrorContains(t, err, "DB_URL is required")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "missing command"},
		{"unknown", []string{"sideways"}, `unknown command "sideways"`},
		{"force without version", []string{"force"}, "force requires <version>"},
		{"goto without version", []string{"GOTO"}, "goto requires <version>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := run(tc.args, func(string) string { return "" }, &bytes.Buffer{}, logging.NewNop())

			var usage usageError
			require.ErrorAs(t, err, &usage)
			assert.Equal(t, tc.want, usage.reason)
		})
	}
}

func TestRun_RejectsMemoryURL(t *testing.T) {
	env := map[string]string{"DB_URL": "memory"}
	err := run([]string{"up"}, func(k string) string { return env[k] }, &bytes.Buffer{}, logging.NewNop())
	assert.ErrorContains(t, err, "no schema")
}

func TestCmdUp_NoChangeIsSuccess(t *testing.T) {
	m := new(migratorMock)
	m.On("Up").Return(migrate.ErrNoChange).Once()

	require.NoError(t, cmdUp(m, nil, nil, logging.NewNop()))
	m.AssertExpectations(t)
}

func TestCmdDown(t *testing.T) {
	m := new(migratorMock)
	m.On("Steps", -1).Return(nil).Once()
	m.On("Steps", -3).Return(nil).Once()

	require.NoError(t, cmdDown(m, nil, nil, logging.NewNop()))
	require.NoError(t, cmdDown(m, []string{"3"}, nil, logging.NewNop()))
	assert.Error(t, cmdDown(m, []string{"0"}, nil, logging.NewNop()))
	assert.Error(t, cmdDown(m, []string{"x"}, nil, logging.NewNop()))
	m.AssertExpectations(t)
}

func TestCmdVersion(t *testing.T) {
	m := new(migratorMock)
	m.On("Version").Return(uint(1761900000), true, nil).Once()
	m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()

	var out bytes.Buffer
	require.NoError(t, cmdVersion(m, nil, &out, logging.NewNop()))
	assert.Equal(t, "version: 1761900000\ndirty: true\n", out.String())

	out.Reset()
	require.NoError(t, cmdVersion(m, nil, &out, logging.NewNop()))
	assert.Equal(t, "version: none\ndirty: false\n", out.String())
	m.AssertExpectations(t)
}

func TestCmdForceAndGoto(t *testing.T) {
	m := new(migratorMock)
	m.On("Force", 1761900000).Return(nil).Once()
	m.On("Migrate", uint(42)).Return(errors.New("dirty database")).Once()

	require.NoError(t, cmdForce(m, []string{"1761900000"}, nil, logging.NewNop()))
	assert.Error(t, cmdForce(m, []string{"-1"}, nil, logging.NewNop()))
	assert.ErrorContains(t, cmdGoto(m, []string{"42"}, nil, logging.NewNop()), "dirty database")
	assert.Error(t, cmdGoto(m, []string{"-42"}, nil, logging.NewNop()))
	m.AssertExpectations(t)
}

func TestCloseMigrator_JoinsErrors(t *testing.T) {
	m := new(migratorMock)
	m.On("Close").Return(errors.New("source"), nil).Once()

	closeMigrator(m, logging.NewNop())
	m.AssertExpectations(t)
}

func TestMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := migrationsDir(func(k string) string {
		if k == "MIGRATIONS_DIR" {
			return dir
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " on ", "t"} {
		assert.True(t, envBool(v), v)
	}
	for _, v := range []string{"", "0", "false", "nope"} {
		assert.False(t, envBool(v), v)
	}
}
