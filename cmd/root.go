package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"ved/internal/config"
	"ved/internal/editor"
	"ved/internal/log"
	"ved/internal/session"
	"ved/internal/styles"
	"ved/internal/tracing"
	"ved/internal/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ved [file]",
	Short: "A tiny modal text editor for the terminal",
	Long: `A tiny modal text editor with Normal and Insert modes, a status line
and per-file position memory. Edits live in memory only: the buffer is
never written back to disk. Press ? in Normal mode for the key reference,
ctrl+c to quit.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/ved/config.yaml)")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log (also VED_DEBUG=1; path override VED_LOG)")
	rootCmd.Flags().Bool("no-watch", false,
		"disable watching the opened file for external changes")
	rootCmd.Flags().Bool("no-restore", false,
		"do not restore or remember the cursor position")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
	viper.SetDefault("session.enabled", defaults.Session.Enabled)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .ved/config.yaml (current directory)
		// 2. ~/.config/ved/config.yaml (user config)
		if _, err := os.Stat(".ved/config.yaml"); err == nil {
			viper.SetConfigFile(".ved/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "ved"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .ved/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".ved/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runEditor(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	noRestore, _ := cmd.Flags().GetBool("no-restore")

	if os.Getenv("VED_DEBUG") != "" {
		debugMode = true
	}
	if debugMode {
		logPath := os.Getenv("VED_LOG")
		if logPath == "" {
			logPath = "ved-debug.log"
		}
		closeLog, err := log.Init(logPath, "ved")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer closeLog()
	}

	log.Info(log.CatConfig, "starting", "version", version, "config_file", viper.ConfigFileUsed())

	// Config files written by older versions may predate newer sections;
	// append the missing ones so the file stays self-documenting
	if path := viper.ConfigFileUsed(); path != "" {
		if _, err := config.EnsureSections(path, cfg); err != nil {
			log.Warn(log.CatConfig, "could not update config sections", "path", path, "error", err)
		}
	}

	styles.ApplyTheme(cfg.Theme.Filler, cfg.Theme.Status, cfg.Theme.Notice)

	// Load the document: the file argument, or the built-in empty default
	var (
		content  string
		filePath string
	)
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path %s: %w", args[0], err)
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("could not read file %s: %w", args[0], err)
		}
		content = string(data)
		filePath = abs
	}

	// Remembered position for the opened file, when there is one
	var (
		store   *session.Store
		offset  int
		topLine int
	)
	if cfg.Session.Enabled && !noRestore && filePath != "" {
		dbPath := cfg.Session.DBPath
		if dbPath == "" {
			dbPath = config.DefaultSessionDBPath()
		}
		if dbPath != "" {
			s, err := session.Open(dbPath)
			if err != nil {
				// The editor works without position memory
				log.ErrorErr(log.CatSession, "could not open session store", err, "path", dbPath)
			} else {
				store = s
				defer func() { _ = store.Close() }()

				pos, found, err := store.Get(filePath)
				if err != nil {
					log.ErrorErr(log.CatSession, "could not read remembered position", err, "path", filePath)
				} else if found {
					offset = pos.Offset
					topLine = pos.TopLine
				}
			}
		}
	}

	traceCfg := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	}
	if traceCfg.Enabled && traceCfg.Exporter == "file" && traceCfg.FilePath == "" {
		traceCfg.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(traceCfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", shutdownErr)
		}
	}()

	model := editor.New(editor.Config{
		Content:       content,
		FilePath:      filePath,
		Offset:        offset,
		TopLine:       topLine,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		Tracer:        provider.Tracer(),
		OnQuit: func(offset, topLine int) {
			if store == nil {
				return
			}
			err := store.Save(filePath, session.Position{Offset: offset, TopLine: topLine})
			if err != nil {
				log.ErrorErr(log.CatSession, "could not save position", err, "path", filePath)
			}
		},
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Watch the opened file and forward changes into the program.
	// Watcher failures are not fatal - the editor works without it.
	var w *watcher.Watcher
	if cfg.Watch.Enabled && !noWatch && filePath != "" {
		wcfg := watcher.DefaultConfig(filePath)
		wcfg.DebounceDur = time.Duration(cfg.Watch.DebounceMS) * time.Millisecond

		created, err := watcher.New(wcfg)
		if err != nil {
			log.ErrorErr(log.CatWatcher, "could not create watcher", err, "path", filePath)
		} else if onChange, err := created.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "could not start watcher", err, "path", filePath)
			_ = created.Stop()
		} else {
			w = created
			go func() {
				for range onChange {
					p.Send(editor.FileChangedMsg{})
				}
			}()
		}
	}

	_, err = p.Run()

	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
