package cli

import (
	"context"
	"fmt"
	"log"
	"time"
)

func (a *App) pushChanges(ctx context.Context) {
	stats, err := a.sync.PushChanges(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Synced %d, failed %d\n", stats.Synced, stats.Failed)
}

func (a *App) pullData(ctx context.Context) {
	result, err := a.sync.PullData(ctx, nil)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Imported %d, skipped %d\n", result.Imported, result.Skipped)
}

func (a *App) pushAllData(ctx context.Context) {
	stats, err := a.sync.PushAllData(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Re-sent %d, failed %d\n", stats.Synced, stats.Failed)
}

func (a *App) showStatus(ctx context.Context) {
	status, err := a.sync.Status(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Println("Pending changes:", status.PendingCount)
	if status.LastSyncAt != nil {
		fmt.Println("Last sync:", status.LastSyncAt.Format(time.RFC3339))
	} else {
		fmt.Println("Last sync: never")
	}
	if status.Relay == nil {
		fmt.Println("Relay: unreachable")
		return
	}
	for kind, count := range status.Relay.Counts {
		fmt.Printf("Relay %s: %d\n", kind, count)
	}
}
