package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/groupsio/config"
	"github.com/s0up4200/groupsio/groupsio"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  groupsio.API

	// Command flags
	dryRun    bool
	noConfirm bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "groupsio",
	Short: "A command line client for the Groups.io API",
	Long: `groupsio is a CLI tool for Groups.io moderators and owners. It lists
groups, members, subgroups and archive topics, filters members with
expressions, and invites or removes members in bulk.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")
}

// initializeApp loads the configuration, sets up logging and logs in
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	if err := loadPresets(cfg.Filter); err != nil {
		return err
	}

	c, err := newClient(cfg.Groupsio, logger)
	if err != nil {
		return err
	}

	if err := authenticate(cmd.Context(), c, cfg.Groupsio); err != nil {
		return err
	}

	client = c
	return nil
}

// newClient creates a Groups.io client from configuration
func newClient(gcfg config.GroupsioConfig, logger zerolog.Logger) (*groupsio.Client, error) {
	opts := []groupsio.Option{
		groupsio.WithHostname(gcfg.Hostname),
		groupsio.WithVersion(gcfg.Version),
	}
	if gcfg.Timeout > 0 {
		opts = append(opts, groupsio.WithTimeout(gcfg.Timeout))
	}
	if gcfg.UserAgent != "" {
		opts = append(opts, groupsio.WithUserAgent(gcfg.UserAgent))
	}

	c, err := groupsio.NewClient(gcfg.APIKey, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Groups.io client: %w", err)
	}
	return c, nil
}

// authenticate reuses a configured token or logs in with email and password
func authenticate(ctx context.Context, c *groupsio.Client, gcfg config.GroupsioConfig) error {
	if gcfg.Token != "" {
		c.SetToken(gcfg.Token)
		logger.Debug().Msg("Using configured session token")
		return nil
	}
	if !gcfg.HasCredentials() {
		return fmt.Errorf("no Groups.io token or email/password configured")
	}

	var err error
	if gcfg.TwoFactor > 0 {
		err = c.LoginWithTwoFactor(ctx, gcfg.Email, gcfg.Password, gcfg.TwoFactor)
	} else {
		err = c.Login(ctx, gcfg.Email, gcfg.Password)
	}
	if err != nil {
		return fmt.Errorf("failed to log in as %s: %w", gcfg.Email, err)
	}

	logger.Debug().Str("email", gcfg.Email).Msg("Logged in")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// parseGroupIDs converts command arguments into group IDs
func parseGroupIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid group id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// confirm asks a yes/no question on stdin unless confirmations are disabled
func confirm(prompt string) bool {
	if noConfirm || !cfg.Safety.Confirm {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(response), "y")
}
