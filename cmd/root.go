package cmd

import (
	"fmt"
	"os"

	"github.com/motormint/motormint/internal/config"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/motormint/motormint/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "motormint",
	Short: "Car NFT marketplace client",
	Long: `motormint — terminal client for a car NFT marketplace.

  Connect a wallet, mint car tokens with IPFS-pinned metadata,
  browse listings, and buy or sell on-chain.

Configuration lives in ~/.motormint/config.json. The MOTORMINT_RPC_URL,
MOTORMINT_CONTRACT, MOTORMINT_PIN_KEY and MOTORMINT_PIN_SECRET env vars
override the file for a single invocation.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// MOTORMINT_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("MOTORMINT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.motormint)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Register all sub-commands.
	rootCmd.AddCommand(
		initCmd,
		walletCmd,
		adminCmd,
		mintCmd,
		listCmd,
		sellCmd,
		buyCmd,
	)
}
