package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vkuznecovs/minutekeeper/internal/client/services"
)

func (a *App) addTask(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Task title", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	due, err := GetSimpleText(a.reader, "Due date (optional)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	id, err := a.tasks.Create(ctx, services.TaskInput{Title: title, DueDate: due})
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Created task", id)
}

func (a *App) listTasks(ctx context.Context) {
	items, err := a.tasks.GetAll(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, t := range items {
		mark := " "
		if t.Done {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Title)
	}
}

func (a *App) completeTask(ctx context.Context, id string) {
	done := true
	if err := a.tasks.Update(ctx, id, services.TaskUpdate{Done: &done}); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Done:", id)
}
