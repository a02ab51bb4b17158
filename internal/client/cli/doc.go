// Package cli implements the interactive MinuteKeeper command loop.
//
// The loop reads one command per line and dispatches to the services layer:
//
//	Meetings:
//	  - add            — create a meeting (interactive prompts)
//	  - list           — list active meetings
//	  - show <id>      — print one meeting with its transcript and analysis
//	  - search <text>  — case-insensitive substring search
//	  - trash          — list soft-deleted meetings
//	  - delete <id>    — move a meeting to trash
//	  - restore <id>   — bring a meeting back from trash
//	  - purge <id>     — permanently delete a meeting and its attachments
//
//	Attachments:
//	  - addtranscript <id> / addanalysis <id>
//	  - addaudio <id> / audio <id>   — local-only recordings
//
//	Contacts:
//	  - addperson / people        — stakeholders
//	  - addcategory / categories  — stakeholder categories
//
//	Tasks (local only):
//	  - addtask / tasks / done <id>
//
//	Sync & backup:
//	  - sync           — push pending changes to the relay
//	  - pull           — pull a snapshot from the relay and merge it
//	  - resync         — re-send every row ignoring the queue
//	  - status         — queue depth, last sync time, relay counts
//	  - export [file] / import <file>  (export defaults to ./exports/)
//	  - backup / restorebackup    — snapshot to/from the S3 bucket
//
// Command handlers log their own errors and never stop the loop.
package cli
