package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vkuznecovs/minutekeeper/internal/client/services"
	"github.com/vkuznecovs/minutekeeper/internal/models"
)

func (a *App) addStakeholder(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	role, err := GetSimpleText(a.reader, "Role", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	company, err := GetSimpleText(a.reader, "Company", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	id, err := a.stakeholders.Create(ctx, services.StakeholderInput{
		Name:    name,
		Role:    role,
		Company: company,
		Email:   email,
	})
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Created stakeholder", id)
}

func (a *App) listStakeholders(ctx context.Context) {
	items, err := a.stakeholders.GetAll(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, s := range items {
		fmt.Printf("%s  %-20s  %s\n", s.ID, s.Name, s.Company)
	}
}

func (a *App) addCategory(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Category name", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	color, err := GetSimpleText(a.reader, fmt.Sprintf("Color (one of %v)", models.CategoryColors), os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	id, err := a.categories.Create(ctx, services.CategoryInput{Name: name, Color: color})
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Created category", id)
}

func (a *App) listCategories(ctx context.Context) {
	items, err := a.categories.GetAll(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, c := range items {
		fmt.Printf("%s  %-8s  %s\n", c.ID, c.Color, c.Name)
	}
}
