// Package repomanager hands out repositories bound to an arbitrary dbx.DBTX,
// which is how services compose several repositories inside one transaction
// (cascade deletes, mutation + outbox entry).
package repomanager

import (
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/analyses"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/categories"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/meetings"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/metadata"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/recordings"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/stakeholders"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/syncqueue"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/tasks"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/transcripts"
	"github.com/vkuznecovs/minutekeeper/internal/dbx"
)

// Manager builds repositories over the given handle, which is either the
// shared *sql.DB or a transaction.
type Manager interface {
	Meetings(db dbx.DBTX) meetings.Repository
	Stakeholders(db dbx.DBTX) stakeholders.Repository
	Categories(db dbx.DBTX) categories.Repository
	Transcripts(db dbx.DBTX) transcripts.Repository
	Analyses(db dbx.DBTX) analyses.Repository
	Recordings(db dbx.DBTX) recordings.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Queue(db dbx.DBTX) syncqueue.Repository
	Metadata(db dbx.DBTX) metadata.Repository
}

// SQLiteManager is the production Manager over the local SQLite database.
type SQLiteManager struct{}

func NewSQLiteManager() *SQLiteManager { return &SQLiteManager{} }

func (SQLiteManager) Meetings(db dbx.DBTX) meetings.Repository {
	return meetings.NewSQLiteRepository(db)
}

func (SQLiteManager) Stakeholders(db dbx.DBTX) stakeholders.Repository {
	return stakeholders.NewSQLiteRepository(db)
}

func (SQLiteManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewSQLiteRepository(db)
}

func (SQLiteManager) Transcripts(db dbx.DBTX) transcripts.Repository {
	return transcripts.NewSQLiteRepository(db)
}

func (SQLiteManager) Analyses(db dbx.DBTX) analyses.Repository {
	return analyses.NewSQLiteRepository(db)
}

func (SQLiteManager) Recordings(db dbx.DBTX) recordings.Repository {
	return recordings.NewSQLiteRepository(db)
}

func (SQLiteManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewSQLiteRepository(db)
}

func (SQLiteManager) Queue(db dbx.DBTX) syncqueue.Repository {
	return syncqueue.NewSQLiteRepository(db)
}

func (SQLiteManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}
