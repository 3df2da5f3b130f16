package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/config"
	"github.com/pstuifzand/rayday/internal/history"
	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/socket"
	"github.com/pstuifzand/rayday/internal/storage"
	"github.com/pstuifzand/rayday/internal/theme"
	"github.com/pstuifzand/rayday/internal/ui"
)

// Mode is the input mode of the calendar
type Mode int

const (
	NormalMode Mode = iota
	SelectMode
	InsertMode
	SearchMode
)

func (m Mode) String() string {
	switch m {
	case SelectMode:
		return "SELECT"
	case InsertMode:
		return "INSERT"
	case SearchMode:
		return "SEARCH"
	default:
		return "NORMAL"
	}
}

// statusDuration is how long a status message stays on the status line
const statusDuration = 3 * time.Second

// Options configures a new App
type Options struct {
	Config *config.Config
	Store  storage.Store
	// Backups is nil when the store keeps no backups
	Backups *storage.BackupManager
	// History persists command and search history; nil keeps it in memory
	History *history.Manager
	Version string
}

// App is the main application controller
type App struct {
	screen         *ui.Screen
	cfg            *config.Config
	store          storage.Store
	backups        *storage.BackupManager
	calendar       *ui.CalendarWidget
	dayView        *ui.EventView
	form           *ui.EventForm
	search         *ui.Search
	command        *ui.CommandMode
	help           *ui.HelpScreen
	messages       *ui.MessageLogger
	splash         *ui.SplashScreen
	backupSelector *ui.BackupSelectorWidget
	socketServer   *socket.Server

	keybindings       []KeyBinding
	selectKeybindings []KeyBinding

	statusMsg   string
	statusError bool
	statusTime  time.Time
	mode        Mode
	quit        bool
	debugMode   bool

	// now returns the current time; replaced in tests
	now func() time.Time
}

// NewApp creates an App drawing on the terminal
func NewApp(opts Options) (*App, error) {
	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(opts.Config.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	screen.EnableMouse()

	a, err := NewAppWithScreen(screen, opts)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return a, nil
}

// NewAppWithScreen creates an App drawing on screen
func NewAppWithScreen(screen *ui.Screen, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("no configuration")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("no event store")
	}

	a := &App{
		screen:         screen,
		cfg:            cfg,
		store:          opts.Store,
		backups:        opts.Backups,
		calendar:       ui.NewCalendarWidget(),
		dayView:        ui.NewEventView(cfg.DayStartHour, cfg.DayEndHour),
		form:           ui.NewEventForm(),
		help:           ui.NewHelpScreen(),
		messages:       ui.NewMessageLogger(100),
		splash:         ui.NewSplashScreen(opts.Version),
		backupSelector: ui.NewBackupSelectorWidget(),
		mode:           NormalMode,
		now:            time.Now,
	}

	if opts.History != nil {
		a.command = ui.NewCommandModeWithHistory(":", opts.History, "command.toml")
		a.search = ui.NewSearchWithHistory(opts.History)
	} else {
		a.command = ui.NewCommandMode(":")
		a.search = ui.NewSearch()
	}

	a.calendar.Now = func() time.Time { return a.now() }
	a.calendar.SetWeekStart(cfg.WeekStart)
	a.keybindings = a.InitializeKeybindings()
	a.selectKeybindings = a.InitializeSelectKeybindings()
	a.help.SetSections(a.helpSections())

	a.refreshDay()
	if all, err := a.store.All(); err == nil && len(all) == 0 {
		a.splash.Show()
	}

	return a, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	server, err := socket.NewServer(os.Getpid())
	if err != nil {
		// The calendar works without live updates
		log.Printf("Failed to start socket server: %v", err)
	} else {
		a.socketServer = server
		server.Start()
		defer server.Stop()
	}

	// Create a channel for events
	eventChan := make(chan tcell.Event)

	// Start event polling goroutine
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	var socketMessages <-chan socket.Message
	if a.socketServer != nil {
		socketMessages = a.socketServer.Messages()
	}

	// Create a ticker for rendering and the clock
	ticker := time.NewTicker(50 * time.Millisecond) // ~20 FPS
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
		case msg := <-socketMessages:
			a.handleSocketMessage(msg)
		case <-ticker.C:
			a.render()
		}
	}

	return nil
}

// Close closes the screen
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// Mode returns the current input mode
func (a *App) Mode() Mode {
	return a.mode
}

// SetStatus shows msg on the status line and records it in :messages
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusError = false
	a.statusTime = a.now()
	a.messages.AddMessage(msg, false)
}

// SetError shows an error on the status line
func (a *App) SetError(msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	log.Print(msg)
	a.statusMsg = msg
	a.statusError = true
	a.statusTime = a.now()
	a.messages.AddMessage(msg, true)
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// layout returns the rectangle of the day view
func (a *App) dayRect() ui.Rect {
	width, height := a.screen.Size()
	x := ui.CalendarWidth + 1
	return ui.Rect{X: x, Y: 0, W: max(0, width-x), H: max(0, height-1)}
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()

	if a.splash.IsVisible() {
		a.splash.Render(a.screen)
		a.screen.Show()
		return
	}

	a.calendar.Render(a.screen, 0, 0)
	a.dayView.Render(a.screen, a.dayRect(), a.now())

	a.form.Render(a.screen)

	switch {
	case a.command.IsActive():
		a.command.Render(a.screen, height-1)
	case a.search.IsActive():
		a.search.Render(a.screen, height-1)
	default:
		a.renderStatusLine(width, height-1)
	}

	a.messages.Render(a.screen)
	a.backupSelector.Render(a.screen)
	a.help.Render(a.screen)

	a.screen.Show()
}

// renderStatusLine draws " MODE  message" on the left and the selected
// date on the right
func (a *App) renderStatusLine(width, y int) {
	x := a.screen.DrawString(0, y, " "+a.mode.String()+" ", a.screen.StatusModeStyle())

	if a.statusMsg != "" && a.now().Sub(a.statusTime) <= statusDuration {
		style := a.screen.StatusMessageStyle()
		if a.statusError {
			style = a.screen.StatusErrorStyle()
		}
		a.screen.DrawStringLimited(x+1, y, a.statusMsg, width-x-14, style)
	}

	right := a.calendar.SelectedDate().Format(model.DateFormat) + " "
	if a.search.HasResults() && !a.search.IsActive() {
		right = fmt.Sprintf("[%d/%d] %s", a.search.GetCurrentMatchNumber(), a.search.GetMatchCount(), right)
	}
	a.screen.DrawString(width-ui.StringWidth(right), y, right, a.screen.StatusMessageStyle())
}

// handleRawEvent routes input to the topmost visible layer
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return
	case *tcell.EventMouse:
		a.handleMouse(ev)
		return
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.debugMode {
		log.Printf("Key: %v | Rune: %q | Modifiers: %v | Mode: %s", ev.Key(), ev.Rune(), ev.Modifiers(), a.mode)
	}

	// Any key dismisses the splash screen
	if a.splash.IsVisible() {
		a.splash.Hide()
		return
	}

	if a.help.IsVisible() {
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Rune() == '?', ev.Rune() == 'q':
			a.help.Toggle()
		case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
			a.help.Scroll(1)
		case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
			a.help.Scroll(-1)
		}
		return
	}

	if a.backupSelector.IsVisible() {
		a.backupSelector.HandleKeyEvent(ev)
		return
	}

	if a.messages.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			a.messages.Toggle()
		}
		return
	}

	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	switch a.mode {
	case InsertMode:
		a.handleFormKey(ev)
	case SearchMode:
		a.handleSearchKey(ev)
	case SelectMode:
		a.handleSelectKey(ev)
	default:
		a.handleNormalKey(ev)
	}
}

// handleNormalKey handles a keypress in normal mode
func (a *App) handleNormalKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		a.enterSelectMode()
		return
	case tcell.KeyEscape:
		a.search.Clear()
		return
	case tcell.KeyRune:
		if kb := a.GetKeybindingByKey(ev.Rune()); kb != nil {
			kb.Handler(a)
		}
		return
	}

	// Arrows and page keys move through the calendar
	if a.calendar.HandleKeyEvent(ev) {
		a.refreshDay()
	}
}

// handleSelectKey handles a keypress while an event is selected
func (a *App) handleSelectKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.leaveSelectMode()
	case tcell.KeyDown, tcell.KeyTab:
		a.dayView.SelectNext()
	case tcell.KeyUp, tcell.KeyBacktab:
		a.dayView.SelectPrev()
	case tcell.KeyDelete:
		a.deleteSelected()
	case tcell.KeyRune:
		if kb := a.GetSelectKeybindingByKey(ev.Rune()); kb != nil {
			kb.Handler(a)
		}
	}
}

func (a *App) handleFormKey(ev *tcell.EventKey) {
	switch a.form.HandleKey(ev) {
	case ui.FormCancelled:
		a.mode = NormalMode
		a.SetStatus("Cancelled")
	case ui.FormSubmitted:
		a.mode = NormalMode
		a.addEvent(a.form.Event())
	}
}

func (a *App) handleSearchKey(ev *tcell.EventKey) {
	done, found := a.search.HandleKey(ev)
	if !done {
		return
	}

	a.mode = NormalMode
	switch {
	case found:
		a.jumpToMatch()
	case a.search.GetParseError() != "":
		a.SetError("Invalid search", fmt.Errorf("%s", a.search.GetParseError()))
	case a.search.GetQuery() != "":
		a.SetStatus("No matches for " + a.search.GetQuery())
	}
}

// handleMouse selects dates in the calendar and events in the day view
func (a *App) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	if a.splash.IsVisible() || a.help.IsVisible() || a.backupSelector.IsVisible() ||
		a.form.IsActive() || a.command.IsActive() || a.search.IsActive() {
		return
	}

	x, y := ev.Position()
	if a.calendar.HandleMouseEvent(x, y) {
		a.mode = NormalMode
		a.dayView.ClearSelection()
		a.refreshDay()
		return
	}

	r := a.dayRect()
	body := ui.Rect{X: r.X, Y: r.Y + 1, W: r.W, H: r.H - 1}
	if i, ok := a.dayView.SlotAt(body, x, y); ok {
		a.dayView.Select(i)
		a.mode = SelectMode
	}
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	if c, ok := a.commands()[parts[0]]; ok {
		c.Handler(a, parts[1:])
		return
	}
	a.SetError("Unknown command: "+parts[0], nil)
}
