package sqlite

import (
	"context"
	"io"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"moneytracker/internal/infrastructure/migration"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	storage, err := New(context.Background(), Options{
		Path:          filepath.Join(t.TempDir(), "data", "moneytracker.db"),
		Driver:        migration.DriverSQLite,
		MigrationMode: migration.ModeAdditive,
	}, testLogger())
	require.NoError(t, err)

	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneytracker.db")
	opts := Options{Path: path, MigrationMode: migration.ModeAdditive}

	storage, err := New(context.Background(), opts, testLogger())
	require.NoError(t, err)

	users := NewUserRepository(storage, testLogger())
	_, err = users.Create(context.Background(), "alice", []byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, storage.Close())

	storage, err = New(context.Background(), opts, testLogger())
	require.NoError(t, err)
	defer storage.Close()

	u, err := NewUserRepository(storage, testLogger()).FindByName(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, u.EncryptedPassword)
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		path   string
		query  url.Values
	}{
		{
			name:   "modernc",
			driver: migration.DriverSQLite,
			path:   "/tmp/x.db",
			query:  url.Values{"_pragma": {"busy_timeout(5000)", "journal_mode(WAL)"}},
		},
		{
			name:   "mattn",
			driver: migration.DriverSQLite3,
			path:   "/tmp/x.db",
			query:  url.Values{"_busy_timeout": {"5000"}, "_journal_mode": {"WAL"}},
		},
		{
			name:   "special characters",
			driver: migration.DriverSQLite,
			path:   "/tmp/what?#now.db",
			query:  url.Values{"_pragma": {"busy_timeout(5000)", "journal_mode(WAL)"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(DSN(tt.driver, tt.path))
			require.NoError(t, err)
			assert.Equal(t, "file", u.Scheme)
			assert.Equal(t, tt.path, u.Path)
			assert.Equal(t, tt.query, u.Query())
		})
	}
}

func TestNew_PathWithSpecialCharacters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "what?#now", "money tracker.db")

	storage, err := New(ctx, Options{Path: path}, testLogger())
	require.NoError(t, err)
	_, err = NewUserRepository(storage, testLogger()).Create(ctx, "alice", []byte{1})
	require.NoError(t, err)
	require.NoError(t, storage.Close())

	assert.FileExists(t, path)
}
