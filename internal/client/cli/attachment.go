package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/vkuznecovs/minutekeeper/internal/client/services"
)

func (a *App) addTranscript(ctx context.Context, meetingID string) {
	content, err := GetMultiline(a.reader, "Transcript text", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	id, err := a.transcripts.Create(ctx, services.TranscriptInput{
		MeetingID: meetingID,
		Content:   content,
	})
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Created transcript", id)
}

func (a *App) addAnalysis(ctx context.Context, meetingID string) {
	summary, err := GetMultiline(a.reader, "Summary", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	actionItems, err := GetMultiline(a.reader, "Action items", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	id, err := a.analyses.Create(ctx, services.AnalysisInput{
		MeetingID:   meetingID,
		Summary:     summary,
		ActionItems: actionItems,
	})
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Created analysis", id)
}

func (a *App) addRecording(ctx context.Context, meetingID string) {
	path, err := GetSimpleText(a.reader, "Audio file path", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	durRaw, err := GetSimpleText(a.reader, "Duration in seconds (optional)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	duration := 0
	if durRaw != "" {
		duration, err = strconv.Atoi(durRaw)
		if err != nil {
			log.Println("invalid duration:", durRaw)
			return
		}
	}

	id, err := a.recordings.Create(ctx, services.RecordingInput{
		MeetingID:   meetingID,
		Path:        path,
		DurationSec: duration,
	})
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Created recording", id)
}

func (a *App) listRecordings(ctx context.Context, meetingID string) {
	items, err := a.recordings.GetByMeetingID(ctx, meetingID)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, r := range items {
		fmt.Printf("%s  %s  %ds\n", r.ID, r.Path, r.DurationSec)
	}
}
