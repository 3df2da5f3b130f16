package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/model"
)

const (
	calendarCellWidth = 4
	calendarRowHeight = 2

	// CalendarWidth and CalendarHeight are the size of the month panel
	CalendarWidth  = 4 + 7*calendarCellWidth
	CalendarHeight = 6 + 6*calendarRowHeight
)

// CalendarWidget shows a month grid and tracks the selected date
type CalendarWidget struct {
	currentMonth time.Time
	selectedDate time.Time
	marked       map[string]bool
	weekStart    int // 0=Sunday, 1=Monday, etc.

	// Now returns the current time; replaced in tests
	Now func() time.Time

	// Bounds of the last render, for mouse handling
	box Rect
}

// NewCalendarWidget creates a new calendar widget showing today
func NewCalendarWidget() *CalendarWidget {
	w := &CalendarWidget{
		marked:    make(map[string]bool),
		weekStart: 1,
		Now:       time.Now,
	}
	w.Today()
	return w
}

// SetWeekStart sets the day the week starts on (0=Sunday, 1=Monday, ..., 6=Saturday)
func (w *CalendarWidget) SetWeekStart(day int) {
	if day < 0 || day > 6 {
		return
	}
	w.weekStart = day
}

// GetWeekStart returns the day the week starts on
func (w *CalendarWidget) GetWeekStart() int {
	return w.weekStart
}

// SelectedDate returns midnight of the selected day
func (w *CalendarWidget) SelectedDate() time.Time {
	return model.DayStart(w.selectedDate)
}

// CurrentMonth returns the first day of the displayed month
func (w *CalendarWidget) CurrentMonth() time.Time {
	return firstOfMonth(w.currentMonth)
}

// SetSelectedDate selects a date and shows its month
func (w *CalendarWidget) SetSelectedDate(d time.Time) {
	w.selectedDate = model.DayStart(d)
	w.currentMonth = firstOfMonth(d)
}

// Today selects the current date
func (w *CalendarWidget) Today() {
	w.SetSelectedDate(w.Now())
}

// SetMarkedDates sets the days that get an event indicator
func (w *CalendarWidget) SetMarkedDates(days []time.Time) {
	w.marked = make(map[string]bool, len(days))
	for _, d := range days {
		w.marked[d.Format(model.DateFormat)] = true
	}
}

// IsMarked reports whether the day has an event indicator
func (w *CalendarWidget) IsMarked(d time.Time) bool {
	return w.marked[d.Format(model.DateFormat)]
}

// MoveDays moves the selected date and keeps its month in view
func (w *CalendarWidget) MoveDays(days int) {
	w.SetSelectedDate(w.selectedDate.AddDate(0, 0, days))
}

// MoveMonths moves the displayed month and keeps the selected day number
// where possible
func (w *CalendarWidget) MoveMonths(months int) {
	month := firstOfMonth(w.currentMonth).AddDate(0, months, 0)
	day := min(w.selectedDate.Day(), daysIn(month))
	w.SetSelectedDate(time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, month.Location()))
}

// HandleKeyEvent processes keyboard navigation and reports whether the key
// was used
func (w *CalendarWidget) HandleKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		w.MoveDays(-1)
		return true
	case tcell.KeyRight:
		w.MoveDays(1)
		return true
	case tcell.KeyUp:
		w.MoveDays(-7)
		return true
	case tcell.KeyDown:
		w.MoveDays(7)
		return true
	case tcell.KeyPgUp:
		w.MoveMonths(-1)
		return true
	case tcell.KeyPgDn:
		w.MoveMonths(1)
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'h':
		w.MoveDays(-1)
	case 'l':
		w.MoveDays(1)
	case 'j':
		w.MoveDays(7)
	case 'k':
		w.MoveDays(-7)
	case 'H': // Previous year
		w.MoveMonths(-12)
	case 'L': // Next year
		w.MoveMonths(12)
	case 'J': // Next month
		w.MoveMonths(1)
	case 'K': // Previous month
		w.MoveMonths(-1)
	case 't':
		w.Today()
	default:
		return false
	}
	return true
}

// HandleMouseEvent processes a click and reports whether it changed the
// selection or month
func (w *CalendarWidget) HandleMouseEvent(x, y int) bool {
	if !w.box.Contains(x, y) {
		return false
	}

	// Navigation arrows: << < Month YYYY > >>
	if y == w.box.Y+1 {
		switch {
		case x >= w.box.X+2 && x < w.box.X+4:
			w.MoveMonths(-12)
			return true
		case x == w.box.X+5:
			w.MoveMonths(-1)
			return true
		case x == w.box.X+w.box.W-6:
			w.MoveMonths(1)
			return true
		case x >= w.box.X+w.box.W-4 && x < w.box.X+w.box.W-2:
			w.MoveMonths(12)
			return true
		}
	}

	if date := w.GetDateAtPosition(x, y); date != nil {
		w.SetSelectedDate(*date)
		return true
	}

	return false
}

// startColumn returns the grid column of the first day of the month
func (w *CalendarWidget) startColumn() int {
	dayOfWeek := int(firstOfMonth(w.currentMonth).Weekday())
	return (dayOfWeek - w.weekStart + 7) % 7
}

// GetDateAtPosition returns the date at the given screen coordinates, or nil
func (w *CalendarWidget) GetDateAtPosition(x, y int) *time.Time {
	startX := w.box.X + 2
	startY := w.box.Y + 5

	if x < startX || x >= startX+7*calendarCellWidth || y < startY || y >= startY+6*calendarRowHeight {
		return nil
	}

	col := (x - startX) / calendarCellWidth
	row := (y - startY) / calendarRowHeight

	first := firstOfMonth(w.currentMonth)
	dayNum := row*7 + col - w.startColumn() + 1
	if dayNum < 1 || dayNum > daysIn(first) {
		return nil
	}

	date := time.Date(first.Year(), first.Month(), dayNum, 0, 0, 0, 0, first.Location())
	return &date
}

// Render draws the month panel with its top-left corner at (x, y)
func (w *CalendarWidget) Render(screen *Screen, x, y int) {
	w.box = Rect{X: x, Y: y, W: CalendarWidth, H: CalendarHeight}

	borderStyle := screen.CalendarDayStyle()
	screen.Fill(w.box, ' ', screen.BackgroundStyle())
	screen.DrawBox(w.box, borderStyle)

	w.drawTitle(screen, borderStyle)
	w.drawWeekdayHeaders(screen, borderStyle)
	w.drawCalendarGrid(screen)
}

func (w *CalendarWidget) drawTitle(screen *Screen, style tcell.Style) {
	y := w.box.Y + 1

	screen.DrawString(w.box.X+2, y, "<<", style)
	screen.SetCell(w.box.X+5, y, '<', style)

	title := w.currentMonth.Format("January 2006")
	titleX := w.box.X + (w.box.W-len(title))/2
	screen.DrawString(titleX, y, title, screen.HeaderStyle())

	screen.SetCell(w.box.X+w.box.W-6, y, '>', style)
	screen.DrawString(w.box.X+w.box.W-4, y, ">>", style)
}

func (w *CalendarWidget) drawWeekdayHeaders(screen *Screen, style tcell.Style) {
	allWeekdays := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	startX := w.box.X + 2
	y := w.box.Y + 3

	for i := range 7 {
		day := allWeekdays[(i+w.weekStart)%7]
		screen.DrawString(startX+i*calendarCellWidth+1, y, day, style.Bold(true))
	}
}

func (w *CalendarWidget) drawCalendarGrid(screen *Screen) {
	first := firstOfMonth(w.currentMonth)
	last := daysIn(first)

	startX := w.box.X + 2
	startY := w.box.Y + 5
	startCol := w.startColumn()

	dayStyle := screen.CalendarDayStyle()
	inactiveDayStyle := screen.CalendarInactiveDayStyle()
	selectedStyle := screen.CalendarSelectedStyle()
	todayStyle := screen.CalendarTodayStyle()
	indicatorStyle := screen.CalendarDayIndicatorStyle()

	today := w.Now()

	for cell := range 42 {
		col, row := cell%7, cell/7
		x := startX + col*calendarCellWidth
		y := startY + row*calendarRowHeight

		dayNum := cell - startCol + 1
		if dayNum < 1 || dayNum > last {
			screen.Fill(Rect{X: x, Y: y, W: calendarCellWidth, H: 1}, ' ', inactiveDayStyle)
			continue
		}

		date := time.Date(first.Year(), first.Month(), dayNum, 0, 0, 0, 0, first.Location())
		selected := model.SameDay(date, w.selectedDate)

		style := dayStyle
		switch {
		case selected:
			style = selectedStyle
		case model.SameDay(date, today):
			style = todayStyle
		}

		screen.Fill(Rect{X: x, Y: y, W: calendarCellWidth, H: 1}, ' ', style)
		screen.DrawString(x, y, fmt.Sprintf("%3d", dayNum), style)

		if w.IsMarked(date) {
			dotStyle := indicatorStyle
			if selected {
				dotStyle = selectedStyle
			}
			screen.SetCell(x+3, y, '●', dotStyle)
		}
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func daysIn(month time.Time) int {
	return firstOfMonth(month).AddDate(0, 1, -1).Day()
}
