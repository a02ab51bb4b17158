package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vkuznecovs/minutekeeper/internal/client/client"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/repomanager"
	"github.com/vkuznecovs/minutekeeper/internal/models"

	_ "modernc.org/sqlite"
)

// setupServices opens an in-memory database with the real migrations applied.
func setupServices(t *testing.T) (*sql.DB, repomanager.Manager) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, repomanager.NewSQLiteManager()
}

func pendingItems(t *testing.T, db *sql.DB, repos repomanager.Manager) []models.SyncItem {
	t.Helper()
	items, err := repos.Queue(db).GetPending(context.Background())
	require.NoError(t, err)
	return items
}
