package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/gyazo/config"
	"github.com/s0up4200/gyazo/gyazo"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    gyazo.API
	overrides config.Overrides
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gyazo",
	Short: "Upload, list and download Gyazo images and videos",
	Long: `gyazo is a CLI for the Gyazo image and video hosting service.

Credentials are read from the config file, the GYAZO_COOKIE, GYAZO_DEVICE and
GYAZO_KEY environment variables, or the matching flags:
- an API key ("access token") for the official API
- a device ID for anonymous-style image uploads and video uploads
- the Gyazo_session cookie for the internal API`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/gyazo.toml)")
	flags.StringVar(&overrides.Cookie, "cookie", "", "the Gyazo_session cookie, giving access to internal APIs")
	flags.StringVarP(&overrides.Device, "device", "d", "", "device identifier, also known as \"Gyazo ID\"")
	flags.StringVarP(&overrides.Key, "key", "k", "", "API key, also known as \"access token\"")
	flags.BoolVar(&overrides.NoCookie, "no-cookie", false, "ignore any configured cookie")
	flags.BoolVar(&overrides.NoDevice, "no-device", false, "ignore any configured device ID")
	flags.BoolVar(&overrides.NoKey, "no-key", false, "ignore any configured API key")

	rootCmd.MarkFlagsMutuallyExclusive("cookie", "no-cookie")
	rootCmd.MarkFlagsMutuallyExclusive("device", "no-device")
	rootCmd.MarkFlagsMutuallyExclusive("key", "no-key")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client = gyazo.NewClient(cfg.Credentials(overrides), logger,
		gyazo.WithTimeout(cfg.HTTP.Timeout),
		gyazo.WithUserAgent("gyazo/"+version),
	)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
