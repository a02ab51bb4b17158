package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/filex"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
	"github.com/vkuznecovs/minutekeeper/internal/wire"
)

// exportToFile writes a snapshot to path. An empty path falls back to a
// timestamped file under the local exports directory.
func (a *App) exportToFile(ctx context.Context, path string) {
	snap, err := a.backup.Export(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	if path == "" {
		dir, err := filex.EnsureSubDir("exports")
		if err != nil {
			log.Println(err.Error())
			return
		}
		path = filepath.Join(dir, fmt.Sprintf("minutekeeper-%s.json", time.Now().UTC().Format("20060102-150405")))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Println(err.Error())
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Exported to", path)
}

func (a *App) importFromFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Println(err.Error())
		return
	}
	a.importSnapshot(ctx, data)
}

func (a *App) uploadBackup(ctx context.Context) {
	snap, err := a.backup.Export(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		log.Println(err.Error())
		return
	}

	key, err := a.s3.Upload(ctx, data)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Uploaded backup", key)
}

func (a *App) restoreBackup(ctx context.Context) {
	key, err := a.s3.LatestKey(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		fmt.Println("No backups in the bucket")
		return
	}
	if err != nil {
		log.Println(err.Error())
		return
	}

	data, err := a.s3.Download(ctx, key)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Println("Restoring from", key)
	a.importSnapshot(ctx, data)
}

func (a *App) importSnapshot(ctx context.Context, data []byte) {
	if err := a.backup.ValidateSnapshot(data); err != nil {
		log.Println(err.Error())
		return
	}

	var snap wire.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Println(err.Error())
		return
	}

	result, err := a.backup.Import(ctx, &snap)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Imported %d, skipped %d\n", result.Imported, result.Skipped)
}
