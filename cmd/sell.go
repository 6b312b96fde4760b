package cmd

import (
	"fmt"
	"math/big"

	"github.com/motormint/motormint/internal/market"
	"github.com/motormint/motormint/internal/ui"
	"github.com/spf13/cobra"
)

var sellPrice string

var sellCmd = &cobra.Command{
	Use:   "sell <token-id>",
	Short: "List a car for sale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, ok := new(big.Int).SetString(args[0], 10)
		if !ok {
			return fmt.Errorf("invalid token id %q", args[0])
		}
		if sellPrice == "" {
			return fmt.Errorf("--price is required")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		gw, session, err := connectGateway(ctx, client)
		if err != nil {
			return err
		}
		defer gw.Close()

		signer, err := newSigner()
		if err != nil {
			return err
		}
		binding, err := newBinding(ctx, client, signer)
		if err != nil {
			return err
		}

		fmt.Println(ui.KeyValueBlock("Listing Preview", [][2]string{
			{"Token", id.String()},
			{"Price", sellPrice + " ETH"},
			{"Seller", session.Account},
		}))
		if !ui.Confirm("List this car for sale?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Listing for sale...")
		spin.Start()
		receipt, err := market.NewSale(binding, nil).ListForSale(ctx, id, sellPrice)
		spin.Stop()
		if err != nil {
			return err
		}

		fmt.Println(ui.Success("Car listed for sale!"))
		fmt.Println(ui.Addr("Hash: " + receipt.Hash))
		return nil
	},
}

func init() {
	sellCmd.Flags().StringVar(&sellPrice, "price", "", "asking price in ETH (required)")
}
