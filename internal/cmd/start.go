package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/splash/internal/assets"
	"github.com/Iron-Ham/splash/internal/config"
	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/Iron-Ham/splash/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Play the welcome sequence",
	Long: `Play the welcome sequence in the terminal.

Press enter or space once the button appears to continue, q or esc to leave.
Flags override the matching configuration keys for this run.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("theme", "", "built-in theme (overrides tui.theme)")
	flags.String("font", "", "text face (overrides text.font)")
	flags.String("video", "", "background frame file (overrides assets.video)")
	flags.Bool("watch", false, "reload the background when its file changes (overrides assets.watch)")
	_ = viper.BindPFlag("tui.theme", flags.Lookup("theme"))
	_ = viper.BindPFlag("text.font", flags.Lookup("font"))
	_ = viper.BindPFlag("assets.video", flags.Lookup("video"))
	_ = viper.BindPFlag("assets.watch", flags.Lookup("watch"))
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !isTerminal() {
		return fmt.Errorf("splash needs an interactive terminal; use 'splash trace' to print the sequence instead")
	}

	sessionID := uuid.NewString()[:8]
	logger, err := newSessionLogger(cfg, sessionID)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	opts, err := tui.OptionsFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Assets.Watch {
		w, err := assets.NewWatcher(logger, cfg.Assets.Video, cfg.Assets.Fallback)
		if err != nil {
			logger.Warn("asset watcher unavailable, hot reload disabled", "error", err)
		} else {
			opts.Watcher = w
		}
	}

	model, err := tui.NewModel(opts)
	if err != nil {
		return fmt.Errorf("failed to create splash: %w", err)
	}

	// Size the first frame before Bubbletea reports the window
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		model.SetSize(width, height)
	}

	logger.Info("splash started", "video", cfg.Assets.Video, "theme", cfg.TUI.Theme, "font", opts.Face.Name)
	app := tui.NewApp(model, cfg.TUI.AltScreen)
	if err := app.Run(); err != nil {
		logger.Error("splash exited with error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	logger.Info("splash finished")
	return nil
}

// newSessionLogger opens the debug log for one run. Disabled logging yields
// a logger that discards everything.
func newSessionLogger(cfg *config.Config, sessionID string) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger.WithSession(sessionID), nil
}
