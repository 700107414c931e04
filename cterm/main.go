package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/contactsTUI/internal/config"
	"rhystmorgan/contactsTUI/internal/logging"
	"rhystmorgan/contactsTUI/internal/notify"
	"rhystmorgan/contactsTUI/internal/remote"
	"rhystmorgan/contactsTUI/internal/store"
	"rhystmorgan/contactsTUI/internal/views"
)

var (
	// Global flags
	configPath string
	apiURL     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cterm",
	Short: "Terminal contact manager",
	Long: `cterm keeps a contact list fetched from a remote contact service.

Contacts can be added, edited, deleted and searched. Edits and deletes of
contacts that came from the service are sent back to it; contacts added here
stay local. Nothing is saved between runs.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file (or set CTERM_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Contact service URL (or set CTERM_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mockAPICmd)
}

// setup loads configuration and builds the logger. The interactive interface
// owns the terminal, so it logs to the configured file instead of stderr.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		loaded.APIURL = apiURL
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	if verbose {
		loaded.Debug = true
	}
	cfg = loaded

	opts := logging.Options{Debug: cfg.Debug}
	if cmd == rootCmd {
		opts.File = cfg.LogFile
	}
	logger, err = logging.New(opts)
	return err
}

func newController() (*store.Controller, *remote.Client, error) {
	client, err := remote.NewClient(cfg.ToRemoteConfig(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize contact service client: %w", err)
	}
	return store.NewController(store.New(cfg.InitialID), client, logger), client, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctrl, client, err := newController()
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("starting interface", zap.String("api_url", client.BaseURL()))

	app := views.NewAppModel(ctrl, notify.New(cfg.ErrorTTL, cfg.SuccessTTL), logger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
