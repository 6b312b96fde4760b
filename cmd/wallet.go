package cmd

import (
	"fmt"
	"syscall"

	"github.com/motormint/motormint/internal/ui"
	"github.com/motormint/motormint/internal/wallet"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the signing key and wallet session",
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a private key into the OS keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		fmt.Print(ui.Meta("Private key (hidden): "))
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}

		ks := wallet.DefaultKeystore()
		ref, err := ks.Store(name, string(keyBytes))
		if err != nil {
			return err
		}

		signer, err := wallet.NewSigner(ks, ref)
		if err != nil {
			_ = ks.Delete(ref)
			return fmt.Errorf("key rejected: %w", err)
		}

		cfg.KeyRef = ref
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Println(ui.Success("Key imported"))
		fmt.Println(ui.Addr("Address: " + signer.Address()))
		return nil
	},
}

var walletShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the wallet session and signing address",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		gw, session, err := connectGateway(cmd.Context(), client)
		if err != nil {
			return err
		}
		defer gw.Close()

		pairs := [][2]string{
			{"Account", session.Account},
			{"Chain ID", fmt.Sprintf("%d", session.ChainID)},
		}
		if signer, err := newSigner(); err == nil {
			pairs = append(pairs, [2]string{"Signing key", signer.Address()})
		} else {
			pairs = append(pairs, [2]string{"Signing key", "not configured"})
		}
		fmt.Println(ui.KeyValueBlock("Wallet", pairs))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored signing key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.KeyRef == "" {
			fmt.Println(ui.Meta("No key configured."))
			return nil
		}
		if !ui.Confirm("Remove the stored signing key?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		if err := wallet.DefaultKeystore().Delete(cfg.KeyRef); err != nil {
			return err
		}
		cfg.KeyRef = ""
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println(ui.Success("Key removed"))
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletImportCmd, walletShowCmd, walletRemoveCmd)
}
