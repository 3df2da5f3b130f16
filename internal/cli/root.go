// Package cli implements the rayday command line
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/app"
	"github.com/pstuifzand/rayday/internal/config"
	"github.com/pstuifzand/rayday/internal/history"
	"github.com/pstuifzand/rayday/internal/storage"
)

var (
	configPath  string
	storageFlag string
	dataPath    string
	logPath     string
	noColor     bool
	debugMode   bool

	cfg     *config.Config
	logFile *os.File

	// now is replaced in tests
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "rayday",
	Short: "Terminal calendar",
	Long: `A terminal calendar that lays out overlapping events side by side.

Without a subcommand the calendar opens full screen. The subcommands read and
change the same events, and tell a running calendar to reload.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { closeLog() },
	RunE:              runCalendar,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/rayday/config.toml)")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend: json or sqlite (default from config)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Events file (default: ~/.local/share/rayday/events.json)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Log file (default: ~/.local/share/rayday/rayday.log)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Log every key press")
}

// setup loads the configuration and sends the log to a file, since the
// calendar owns the terminal
func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	path := logPath
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		dir, err := storage.DataDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "rayday.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return nil
}

func closeLog() {
	if logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	logFile.Close()
	logFile = nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	hist, err := history.NewManager()
	if err != nil {
		log.Printf("Command history is not saved: %v", err)
		hist = nil
	}

	application, err := app.NewApp(app.Options{
		Config:  cfg,
		Store:   s.store,
		Backups: s.backups,
		History: hist,
		Version: Version,
	})
	if err != nil {
		return err
	}
	application.SetDebugMode(debugMode)

	return application.Run()
}
