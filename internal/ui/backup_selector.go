package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/diff"
	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/storage"
)

// BackupSelectorWidget lists backups newest first with a preview of what
// restoring the selected one would change
type BackupSelectorWidget struct {
	visible       bool
	backups       []storage.BackupMetadata
	selectedIndex int
	scrollOffset  int
	listHeight    int

	current  []model.Event
	callback func(backup storage.BackupMetadata)
	onCancel func()

	// Diff preview state
	diffResults      map[int]*diff.DiffResult
	diffErrors       map[int]error
	diffLines        []diff.DiffLine
	diffScrollOffset int
}

// NewBackupSelectorWidget creates a new backup selector widget
func NewBackupSelectorWidget() *BackupSelectorWidget {
	return &BackupSelectorWidget{
		diffResults: make(map[int]*diff.DiffResult),
		diffErrors:  make(map[int]error),
	}
}

// Show opens the selector. backups are expected oldest first, as returned
// by BackupManager.List; current holds the events in the store right now.
func (bs *BackupSelectorWidget) Show(backups []storage.BackupMetadata, current []model.Event, callback func(storage.BackupMetadata), onCancel func()) {
	if len(backups) == 0 {
		return
	}

	bs.backups = backups
	bs.current = current
	bs.callback = callback
	bs.onCancel = onCancel
	bs.selectedIndex = 0
	bs.scrollOffset = 0
	bs.diffScrollOffset = 0
	bs.diffResults = make(map[int]*diff.DiffResult)
	bs.diffErrors = make(map[int]error)
	bs.visible = true

	// Every line shows a change count, so compute all diffs up front
	for i := range bs.backups {
		bs.loadDiff(i)
	}
	bs.updateDiffPreview()
}

// Hide closes the backup selector
func (bs *BackupSelectorWidget) Hide() {
	bs.visible = false
}

// IsVisible returns whether the widget is currently visible
func (bs *BackupSelectorWidget) IsVisible() bool {
	return bs.visible
}

// Selected returns the backup under the cursor
func (bs *BackupSelectorWidget) Selected() (storage.BackupMetadata, bool) {
	if !bs.visible || bs.selectedIndex < 0 || bs.selectedIndex >= len(bs.backups) {
		return storage.BackupMetadata{}, false
	}
	return bs.backups[bs.actualIndex(bs.selectedIndex)], true
}

// DiffLines returns the preview lines for the selected backup
func (bs *BackupSelectorWidget) DiffLines() []diff.DiffLine {
	return bs.diffLines
}

// actualIndex maps a display row (newest first) to an index in backups
func (bs *BackupSelectorWidget) actualIndex(displayIdx int) int {
	return len(bs.backups) - 1 - displayIdx
}

func (bs *BackupSelectorWidget) loadDiff(actualIdx int) {
	events, err := bs.backups[actualIdx].Events()
	if err != nil {
		bs.diffErrors[actualIdx] = err
		return
	}
	bs.diffResults[actualIdx] = diff.ComputeDiff(bs.current, events)
}

func (bs *BackupSelectorWidget) updateDiffPreview() {
	bs.diffScrollOffset = 0
	actualIdx := bs.actualIndex(bs.selectedIndex)
	if err, ok := bs.diffErrors[actualIdx]; ok {
		bs.diffLines = []diff.DiffLine{{Type: diff.DiffTypeDeletedSection, Content: err.Error()}}
		return
	}
	if result, ok := bs.diffResults[actualIdx]; ok {
		bs.diffLines = diff.BuildDiffLines(result)
		return
	}
	bs.diffLines = nil
}

// HandleKeyEvent handles navigation, restore and cancel keys
func (bs *BackupSelectorWidget) HandleKeyEvent(ev *tcell.EventKey) {
	if !bs.visible || len(bs.backups) == 0 {
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		bs.Hide()
		if bs.onCancel != nil {
			bs.onCancel()
		}
	case tcell.KeyUp, tcell.KeyCtrlK:
		bs.move(-1)
	case tcell.KeyDown, tcell.KeyCtrlJ:
		bs.move(1)
	case tcell.KeyHome:
		bs.move(-len(bs.backups))
	case tcell.KeyEnd:
		bs.move(len(bs.backups))
	case tcell.KeyPgUp:
		bs.diffScrollOffset = max(0, bs.diffScrollOffset-max(1, bs.listHeight/2))
	case tcell.KeyPgDn:
		bs.diffScrollOffset = min(max(0, len(bs.diffLines)-1), bs.diffScrollOffset+max(1, bs.listHeight/2))
	case tcell.KeyEnter:
		backup, ok := bs.Selected()
		if !ok {
			return
		}
		bs.Hide()
		if bs.callback != nil {
			bs.callback(backup)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'j':
			bs.move(1)
		case 'k':
			bs.move(-1)
		case 'g':
			bs.move(-len(bs.backups))
		case 'G':
			bs.move(len(bs.backups))
		case 'q':
			bs.Hide()
			if bs.onCancel != nil {
				bs.onCancel()
			}
		}
	}
}

func (bs *BackupSelectorWidget) move(delta int) {
	next := max(0, min(bs.selectedIndex+delta, len(bs.backups)-1))
	if next == bs.selectedIndex {
		return
	}
	bs.selectedIndex = next
	bs.ensureVisible()
	bs.updateDiffPreview()
}

func (bs *BackupSelectorWidget) ensureVisible() {
	if bs.selectedIndex < bs.scrollOffset {
		bs.scrollOffset = bs.selectedIndex
	}
	if bs.listHeight > 0 && bs.selectedIndex >= bs.scrollOffset+bs.listHeight {
		bs.scrollOffset = bs.selectedIndex - bs.listHeight + 1
	}
}

// Render draws the backup list on the left and the diff preview on the
// right
func (bs *BackupSelectorWidget) Render(screen *Screen) {
	if !bs.visible || len(bs.backups) == 0 {
		return
	}

	width, height := screen.Size()
	boxHeight := height - 2
	leftWidth := width / 2
	rightWidth := width - leftWidth
	if leftWidth < 20 || rightWidth < 20 || boxHeight < 5 {
		return
	}

	left := Rect{X: 0, Y: 1, W: leftWidth, H: boxHeight}
	right := Rect{X: leftWidth, Y: 1, W: rightWidth, H: boxHeight}
	bs.listHeight = boxHeight - 3

	bs.renderLeftPanel(screen, left)
	bs.renderRightPanel(screen, right)
}

func (bs *BackupSelectorWidget) renderLeftPanel(screen *Screen, r Rect) {
	style := screen.HelpStyle()
	screen.Fill(r, ' ', style)
	screen.DrawBox(r, screen.HelpBorderStyle())
	screen.DrawStringLimited(r.X+2, r.Y, fmt.Sprintf(" Backups (%d) ", len(bs.backups)), r.W-4, screen.HelpTitleStyle())

	inner := Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 3}
	end := min(len(bs.backups), bs.scrollOffset+inner.H)
	for displayIdx := bs.scrollOffset; displayIdx < end; displayIdx++ {
		y := inner.Y + displayIdx - bs.scrollOffset
		bs.renderBackupLine(screen, inner.X, y, inner.W, displayIdx)
	}

	screen.DrawStringLimited(r.X+1, r.Y+r.H-2, " j/k: select  Enter: restore  Esc: cancel", r.W-2, style)
}

// renderBackupLine draws "> 2023-07-18 09:00:00  +1 ~2 -3"
func (bs *BackupSelectorWidget) renderBackupLine(screen *Screen, x, y, width, displayIdx int) {
	actualIdx := bs.actualIndex(displayIdx)
	backup := bs.backups[actualIdx]

	style := screen.HelpStyle()
	prefix := "  "
	if displayIdx == bs.selectedIndex {
		style = screen.EventSelectedStyle()
		prefix = "> "
	}
	screen.Fill(Rect{X: x, Y: y, W: width, H: 1}, ' ', style)
	col := x + screen.DrawStringLimited(x, y, prefix+backup.Timestamp.Format("2006-01-02 15:04:05"), width, style)

	if _, failed := bs.diffErrors[actualIdx]; failed {
		screen.DrawStringLimited(col, y, "  unreadable", x+width-col, style)
		return
	}
	result, ok := bs.diffResults[actualIdx]
	if !ok {
		return
	}
	if result.IsEmpty() {
		screen.DrawStringLimited(col, y, "  =", x+width-col, style)
		return
	}

	_, bg, _ := style.Decompose()
	stats := []struct {
		mark  string
		n     int
		style tcell.Style
	}{
		{"+", len(result.NewEvents), screen.DiffAddedStyle().Background(bg)},
		{"~", len(result.ModifiedEvents), screen.DiffModifiedStyle().Background(bg)},
		{"-", len(result.DeletedEvents), screen.DiffDeletedStyle().Background(bg)},
	}
	col++
	for _, s := range stats {
		if s.n == 0 || col >= x+width {
			continue
		}
		col += screen.DrawStringLimited(col, y, fmt.Sprintf(" %s%d", s.mark, s.n), x+width-col, s.style)
	}
}

func (bs *BackupSelectorWidget) renderRightPanel(screen *Screen, r Rect) {
	style := screen.HelpStyle()
	screen.Fill(r, ' ', style)
	screen.DrawBox(r, screen.HelpBorderStyle())

	title := " Restoring changes "
	if backup, ok := bs.Selected(); ok {
		title = fmt.Sprintf(" Restoring %s changes ", backup.Timestamp.Format("2006-01-02 15:04:05"))
	}
	screen.DrawStringLimited(r.X+2, r.Y, title, r.W-4, screen.HelpTitleStyle())

	inner := Rect{X: r.X + 2, Y: r.Y + 1, W: r.W - 4, H: r.H - 3}
	lines := bs.diffLines[min(bs.diffScrollOffset, len(bs.diffLines)):]
	for i, line := range lines {
		if i >= inner.H {
			break
		}
		text := strings.Repeat("  ", line.Indent) + line.Content
		screen.DrawStringLimited(inner.X, inner.Y+i, text, inner.W, bs.styleForLineType(screen, line.Type))
	}

	screen.DrawStringLimited(r.X+1, r.Y+r.H-2, " PgUp/PgDn: scroll", r.W-2, style)
}

func (bs *BackupSelectorWidget) styleForLineType(screen *Screen, lineType diff.DiffLineType) tcell.Style {
	switch lineType {
	case diff.DiffTypeNewSection, diff.DiffTypeNewEvent:
		return screen.DiffAddedStyle()
	case diff.DiffTypeDeletedSection, diff.DiffTypeDeletedEvent:
		return screen.DiffDeletedStyle()
	case diff.DiffTypeModifiedSection, diff.DiffTypeModifiedEvent:
		return screen.DiffModifiedStyle()
	case diff.DiffTypeSummary, diff.DiffTypeHeader:
		return screen.HelpTitleStyle()
	default:
		return screen.HelpStyle()
	}
}
