package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vkuznecovs/minutekeeper/internal/client/services"
	"github.com/vkuznecovs/minutekeeper/internal/models"
)

func (a *App) addMeeting(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Meeting title", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	date, err := GetSimpleText(a.reader, "Date (e.g. 2026-08-29)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	location, err := GetSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	notes, err := GetMultiline(a.reader, "Notes", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	id, err := a.meetings.Create(ctx, services.MeetingInput{
		Title:    title,
		Date:     date,
		Location: location,
		Notes:    notes,
	})
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Created meeting", id)
}

func (a *App) listMeetings(ctx context.Context) {
	items, err := a.meetings.GetAll(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	printMeetings(items)
}

func (a *App) showMeeting(ctx context.Context, id string) {
	m, err := a.meetings.GetByID(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Printf("%s  %s\n", m.ID, m.Title)
	if m.Date != "" {
		fmt.Println("Date:", m.Date)
	}
	if m.Location != "" {
		fmt.Println("Location:", m.Location)
	}
	if m.Notes != "" {
		fmt.Println("Notes:\n" + m.Notes)
	}

	transcripts, err := a.transcripts.GetByMeetingID(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return
	}
	for _, t := range transcripts {
		fmt.Println("--- transcript ---")
		fmt.Println(t.Content)
	}

	analyses, err := a.analyses.GetByMeetingID(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return
	}
	for _, an := range analyses {
		fmt.Println("--- analysis ---")
		fmt.Println(an.Summary)
		if an.ActionItems != "" {
			fmt.Println("Action items:", an.ActionItems)
		}
	}
}

func (a *App) searchMeetings(ctx context.Context, q string) {
	items, err := a.meetings.Search(ctx, q)
	if err != nil {
		log.Println(err.Error())
		return
	}
	printMeetings(items)
}

func (a *App) listTrash(ctx context.Context) {
	items, err := a.meetings.GetDeleted(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	printMeetings(items)
}

func (a *App) deleteMeeting(ctx context.Context, id string) {
	if err := a.meetings.SoftDelete(ctx, id); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Moved to trash:", id)
}

func (a *App) restoreMeeting(ctx context.Context, id string) {
	if err := a.meetings.Restore(ctx, id); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Restored:", id)
}

func (a *App) purgeMeeting(ctx context.Context, id string) {
	if err := a.meetings.PermanentDelete(ctx, id); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Permanently deleted:", id)
}

func printMeetings(items []models.Meeting) {
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, m := range items {
		fmt.Printf("%s  %-10s  %s\n", m.ID, m.Date, m.Title)
	}
}
