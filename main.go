package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ossyrian/mintylaunch/internal/config"
	"github.com/ossyrian/mintylaunch/internal/launcher"
	"github.com/ossyrian/mintylaunch/internal/logging"
	"github.com/ossyrian/mintylaunch/internal/settings"
	"github.com/ossyrian/mintylaunch/internal/tomlconf"
	"github.com/ossyrian/mintylaunch/internal/ui"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "mintylaunch",
	Short:         "Edit Project DIVA engine settings and launch the game",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the engine without showing the settings form",
	RunE:  launch,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the settings files a save would write",
	RunE:  dump,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	// engine
	rootCmd.PersistentFlags().StringP("game-dir", "d", ".", "engine install directory")
	rootCmd.PersistentFlags().String("layout", config.LayoutINI, "settings files to edit (ini, toml)")
	rootCmd.PersistentFlags().String("engine", launcher.DefaultExe, "engine executable inside the game directory")

	// other opts
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-output-dir", "", "directory to write log files (if set, logs are written to both stderr and file)")
	rootCmd.Flags().Bool("launch", false, "skip the settings form and start the engine")
	rootCmd.Flags().MarkHidden("launch")

	viper.BindPFlag("game_dir", rootCmd.PersistentFlags().Lookup("game-dir"))
	viper.BindPFlag("layout", rootCmd.PersistentFlags().Lookup("layout"))
	viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.PersistentFlags().Lookup("log-output-dir"))
	viper.BindPFlag("launch", rootCmd.Flags().Lookup("launch"))

	rootCmd.AddCommand(launchCmd, dumpCmd)
}

// initConfig reads in config file and environment variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mintylaunch"))
		}
		viper.AddConfigPath("/etc/mintylaunch")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("MINTYLAUNCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setup loads the app config and installs the logger
func setup() error {
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogOutputDir, os.Stderr); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}

	return nil
}

func newEngine() *launcher.Engine {
	return &launcher.Engine{
		Dir:    cfg.GameDir,
		Exe:    cfg.Engine,
		Logger: slog.Default().With("component", "launcher"),
	}
}

// run shows the settings form in front of the engine. The form only edits
// records; they are loaded before it starts and saved once it has exited.
func run(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	engine := newEngine()

	hookArgs := os.Args[1:]
	if cfg.Launch && launcher.ShouldShowLauncher(hookArgs) {
		hookArgs = append(hookArgs, launcher.SkipFlag)
	}
	var hook launcher.EntryHook = launcher.DirectHook{Args: hookArgs, Engine: engine}

	return hook.Intercept(cmd.Context(), func() error {
		return showForm(cmd.Context(), engine)
	})
}

func showForm(ctx context.Context, engine *launcher.Engine) error {
	l, err := openLayout()
	if err != nil {
		return err
	}

	slog.Info("loading settings", "dir", cfg.GameDir, "layout", cfg.Layout)
	if err := l.store.Load(cfg.GameDir); err != nil {
		return err
	}

	model := ui.New("mintylaunch: "+cfg.GameDir, l.tabs())
	uiErr := ui.Run(ctx, model)

	// settings are persisted even if the form failed mid-way
	if err := l.store.Save(cfg.GameDir); err != nil {
		return errors.Join(uiErr, err)
	}
	if uiErr != nil {
		return uiErr
	}

	if !model.Launch() {
		return nil
	}
	return engine.Launch(ctx)
}

func launch(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	return newEngine().Launch(cmd.Context())
}

func dump(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	l, err := openLayout()
	if err != nil {
		return err
	}
	if err := l.store.Load(cfg.GameDir); err != nil {
		return err
	}
	return l.store.Dump(cfg.GameDir, cmd.OutOrStdout())
}

// settingsStore is the load/save lifecycle shared by both layouts.
type settingsStore interface {
	Load(dir string) error
	Save(dir string) error
	Dump(dir string, w io.Writer) error
}

type layout struct {
	store settingsStore
	// tabs is called after Load; some tabs depend on what was found
	tabs func() []ui.Tab
}

func openLayout() (layout, error) {
	logger := slog.Default().With("component", "settings")

	switch cfg.Layout {
	case config.LayoutINI:
		s := settings.NewState(logger)
		return layout{store: s, tabs: func() []ui.Tab { return ui.INITabs(s) }}, nil
	case config.LayoutTOML:
		s := tomlconf.NewState(logger)
		return layout{store: s, tabs: func() []ui.Tab { return ui.TOMLTabs(s) }}, nil
	default:
		return layout{}, fmt.Errorf("unknown layout %q", cfg.Layout)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("mintylaunch failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
