package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color
	HeaderText tcell.Color

	// Month grid
	CalendarDayText         tcell.Color
	CalendarDayBg           tcell.Color
	CalendarInactiveDayText tcell.Color
	CalendarInactiveDayBg   tcell.Color
	CalendarTodayText       tcell.Color
	CalendarSelectedText    tcell.Color
	CalendarSelectedBg      tcell.Color
	CalendarIndicator       tcell.Color

	// Day view
	EventText       tcell.Color
	EventSelectedBg tcell.Color
	EventHourMark   tcell.Color
	EventNowLine    tcell.Color
	// Lane colors are blended between these two
	LaneFirst tcell.Color
	LaneLast  tcell.Color

	// Event form popup
	FormBorder tcell.Color
	FormLabel  tcell.Color
	FormText   tcell.Color
	FormCursor tcell.Color
	FormError  tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchResultCount tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusModeBg  tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color

	// Backup diff preview
	DiffAdded    tcell.Color
	DiffDeleted  tcell.Color
	DiffModified tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	t := &Theme{Name: "default"}
	for _, c := range t.Colors.fields() {
		*c = tcell.ColorDefault
	}
	return t
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background: tcell.ColorDefault,
			HeaderText: HexToColor("#bb9af7"), // Magenta

			CalendarDayText:         HexToColor("#c0caf5"), // Light gray-blue
			CalendarDayBg:           HexToColor("#1f2335"),
			CalendarInactiveDayText: HexToColor("#565f89"), // Comment gray
			CalendarInactiveDayBg:   HexToColor("#1a1b26"),
			CalendarTodayText:       HexToColor("#ff9e64"), // Orange
			CalendarSelectedText:    HexToColor("#1a1b26"),
			CalendarSelectedBg:      HexToColor("#7aa2f7"), // Blue
			CalendarIndicator:       HexToColor("#9ece6a"), // Green

			EventText:       HexToColor("#1a1b26"),
			EventSelectedBg: HexToColor("#c0caf5"),
			EventHourMark:   HexToColor("#565f89"),
			EventNowLine:    HexToColor("#f7768e"), // Red
			LaneFirst:       HexToColor("#7aa2f7"), // Blue
			LaneLast:        HexToColor("#bb9af7"), // Magenta

			FormBorder: HexToColor("#7dcfff"), // Cyan
			FormLabel:  HexToColor("#bb9af7"),
			FormText:   HexToColor("#c0caf5"),
			FormCursor: HexToColor("#7aa2f7"),
			FormError:  HexToColor("#f7768e"),

			SearchLabel:       HexToColor("#bb9af7"),
			SearchText:        HexToColor("#c0caf5"),
			SearchResultCount: HexToColor("#9ece6a"),

			CommandPrompt: HexToColor("#bb9af7"),
			CommandText:   HexToColor("#c0caf5"),
			CommandCursor: HexToColor("#7aa2f7"),

			HelpBackground: HexToColor("#1a1b26"),
			HelpBorder:     HexToColor("#7dcfff"),
			HelpTitle:      HexToColor("#bb9af7"),
			HelpContent:    HexToColor("#c0caf5"),

			StatusMode:    HexToColor("#1a1b26"),
			StatusModeBg:  HexToColor("#bb9af7"),
			StatusMessage: HexToColor("#9ece6a"),
			StatusError:   HexToColor("#f7768e"),

			DiffAdded:    HexToColor("#9ece6a"),
			DiffDeleted:  HexToColor("#f7768e"),
			DiffModified: HexToColor("#e0af68"), // Yellow
		},
	}
}

// fields maps the TOML key of every color to its field
func (c *Colors) fields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"background":                 &c.Background,
		"header_text":                &c.HeaderText,
		"calendar_day_text":          &c.CalendarDayText,
		"calendar_day_bg":            &c.CalendarDayBg,
		"calendar_inactive_day_text": &c.CalendarInactiveDayText,
		"calendar_inactive_day_bg":   &c.CalendarInactiveDayBg,
		"calendar_today_text":        &c.CalendarTodayText,
		"calendar_selected_text":     &c.CalendarSelectedText,
		"calendar_selected_bg":       &c.CalendarSelectedBg,
		"calendar_indicator":         &c.CalendarIndicator,
		"event_text":                 &c.EventText,
		"event_selected_bg":          &c.EventSelectedBg,
		"event_hour_mark":            &c.EventHourMark,
		"event_now_line":             &c.EventNowLine,
		"lane_first":                 &c.LaneFirst,
		"lane_last":                  &c.LaneLast,
		"form_border":                &c.FormBorder,
		"form_label":                 &c.FormLabel,
		"form_text":                  &c.FormText,
		"form_cursor":                &c.FormCursor,
		"form_error":                 &c.FormError,
		"search_label":               &c.SearchLabel,
		"search_text":                &c.SearchText,
		"search_result_count":        &c.SearchResultCount,
		"command_prompt":             &c.CommandPrompt,
		"command_text":               &c.CommandText,
		"command_cursor":             &c.CommandCursor,
		"help_background":            &c.HelpBackground,
		"help_border":                &c.HelpBorder,
		"help_title":                 &c.HelpTitle,
		"help_content":               &c.HelpContent,
		"status_mode":                &c.StatusMode,
		"status_mode_bg":             &c.StatusModeBg,
		"status_message":             &c.StatusMessage,
		"status_error":               &c.StatusError,
		"diff_added":                 &c.DiffAdded,
		"diff_deleted":               &c.DiffDeleted,
		"diff_modified":              &c.DiffModified,
	}
}
