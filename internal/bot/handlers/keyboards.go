package handlers

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
)

func languageKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "🇺🇿 O'zbekcha", CallbackData: "lang_uz"},
				{Text: "🇷🇺 Русский", CallbackData: "lang_ru"},
			},
		},
	}
}

func mainMenuKeyboard(t *texts.Table) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: t.Suggestion, CallbackData: "menu_suggestion"}},
			{{Text: t.Complaint, CallbackData: "menu_complaint"}},
		},
	}
}

func courseKeyboard(t *texts.Table) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(t.Courses))
	for i, label := range t.Courses {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: label, CallbackData: fmt.Sprintf("course_%d", i)},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// directionKeyboard renders one page of direction buttons plus paging
// controls. Pages are clamped to the catalog.
func directionKeyboard(t *texts.Table, page int) *models.InlineKeyboardMarkup {
	if page < 0 {
		page = 0
	}
	if page >= len(texts.DirectionPages) {
		page = len(texts.DirectionPages) - 1
	}

	var rows [][]models.InlineKeyboardButton
	for _, key := range texts.DirectionPages[page] {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: t.Directions[key], CallbackData: "dir_" + key},
		})
	}

	var nav []models.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, models.InlineKeyboardButton{
			Text: t.PrevPage, CallbackData: fmt.Sprintf("dir_page_%d", page-1),
		})
	}
	if page < len(texts.DirectionPages)-1 {
		nav = append(nav, models.InlineKeyboardButton{
			Text: t.NextPage, CallbackData: fmt.Sprintf("dir_page_%d", page+1),
		})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func categoryKeyboard(t *texts.Table) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(texts.CategoryOrder)+1)
	for _, key := range texts.CategoryOrder {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: t.Categories[key], CallbackData: "cat_" + key},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: t.Back, CallbackData: "back_to_menu"},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func backKeyboard(t *texts.Table) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: t.Back, CallbackData: "back_to_menu"}},
		},
	}
}
