package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vkuznecovs/minutekeeper/internal/client/backupstore"
	"github.com/vkuznecovs/minutekeeper/internal/client/client"
	"github.com/vkuznecovs/minutekeeper/internal/client/config"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/repomanager"
	"github.com/vkuznecovs/minutekeeper/internal/client/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config       *config.Config
	meetings     services.MeetingService
	stakeholders services.StakeholderService
	categories   services.CategoryService
	transcripts  services.TranscriptService
	analyses     services.AnalysisService
	recordings   services.RecordingService
	tasks        services.TaskService
	sync         services.SyncService
	backup       services.BackupService
	s3           *backupstore.S3Store
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	repos := repomanager.NewSQLiteManager()
	relay := client.NewRelayClient(c.RelayAddr, c.RelayToken, c.HTTPTimeout)

	backup := services.NewBackupService(db, repos)

	return &App{
		config:       c,
		meetings:     services.NewMeetingService(db, repos),
		stakeholders: services.NewStakeholderService(db, repos),
		categories:   services.NewCategoryService(db, repos),
		transcripts:  services.NewTranscriptService(db, repos),
		analyses:     services.NewAnalysisService(db, repos),
		recordings:   services.NewRecordingService(db, repos),
		tasks:        services.NewTaskService(db, repos),
		sync:         services.NewSyncService(db, repos, relay, backup),
		backup:       backup,
		s3: backupstore.NewS3Store(backupstore.Options{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		}),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to MinuteKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("mk> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Meetings: add, list, show <id>, search <text>, trash, delete <id>, restore <id>, purge <id>")
			fmt.Println("Notes:    addtranscript <id>, addanalysis <id>, addaudio <id>, audio <id>")
			fmt.Println("Contacts: addperson, people, addcategory, categories")
			fmt.Println("Tasks:    addtask, tasks, done <id>")
			fmt.Println("Sync:     sync, pull, resync, status")
			fmt.Println("Backup:   export [file], import <file>, backup, restorebackup")
			fmt.Println("Other:    exit")

		case "add":
			a.addMeeting(ctx)
		case "list":
			a.listMeetings(ctx)
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage: show <id>")
				continue
			}
			a.showMeeting(ctx, args[0])
		case "search":
			if len(args) == 0 {
				fmt.Println("Usage: search <text>")
				continue
			}
			a.searchMeetings(ctx, strings.Join(args, " "))
		case "trash":
			a.listTrash(ctx)
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.deleteMeeting(ctx, args[0])
		case "restore":
			if len(args) == 0 {
				fmt.Println("Usage: restore <id>")
				continue
			}
			a.restoreMeeting(ctx, args[0])
		case "purge":
			if len(args) == 0 {
				fmt.Println("Usage: purge <id>")
				continue
			}
			a.purgeMeeting(ctx, args[0])

		case "addtranscript":
			if len(args) == 0 {
				fmt.Println("Usage: addtranscript <meetingId>")
				continue
			}
			a.addTranscript(ctx, args[0])
		case "addanalysis":
			if len(args) == 0 {
				fmt.Println("Usage: addanalysis <meetingId>")
				continue
			}
			a.addAnalysis(ctx, args[0])
		case "addaudio":
			if len(args) == 0 {
				fmt.Println("Usage: addaudio <meetingId>")
				continue
			}
			a.addRecording(ctx, args[0])
		case "audio":
			if len(args) == 0 {
				fmt.Println("Usage: audio <meetingId>")
				continue
			}
			a.listRecordings(ctx, args[0])

		case "addperson":
			a.addStakeholder(ctx)
		case "people":
			a.listStakeholders(ctx)
		case "addcategory":
			a.addCategory(ctx)
		case "categories":
			a.listCategories(ctx)

		case "addtask":
			a.addTask(ctx)
		case "tasks":
			a.listTasks(ctx)
		case "done":
			if len(args) == 0 {
				fmt.Println("Usage: done <id>")
				continue
			}
			a.completeTask(ctx, args[0])

		case "sync":
			a.pushChanges(ctx)
		case "pull":
			a.pullData(ctx)
		case "resync":
			a.pushAllData(ctx)
		case "status":
			a.showStatus(ctx)

		case "export":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			a.exportToFile(ctx, path)
		case "import":
			if len(args) == 0 {
				fmt.Println("Usage: import <file>")
				continue
			}
			a.importFromFile(ctx, args[0])
		case "backup":
			a.uploadBackup(ctx)
		case "restorebackup":
			a.restoreBackup(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
