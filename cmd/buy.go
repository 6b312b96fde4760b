package cmd

import (
	"fmt"
	"math/big"

	"github.com/motormint/motormint/internal/chain"
	"github.com/motormint/motormint/internal/market"
	"github.com/motormint/motormint/internal/ui"
	"github.com/spf13/cobra"
)

var buyCmd = &cobra.Command{
	Use:   "buy <token-id>",
	Short: "Buy a car, sending its asking price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, ok := new(big.Int).SetString(args[0], 10)
		if !ok {
			return fmt.Errorf("invalid token id %q", args[0])
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

		rec, err := binding.CarMetadata(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching car %s: %w", id, err)
		}
		if !rec.ForSale {
			return fmt.Errorf("car %s is not for sale", id)
		}
		price := chain.WeiToEther(rec.PriceWei)

		fmt.Println(ui.KeyValueBlock("Purchase Preview", [][2]string{
			{"Token", id.String()},
			{"Car", fmt.Sprintf("%s %s", rec.Make, rec.Model)},
			{"Price", price + " ETH"},
			{"Seller", ui.TruncateAddr(rec.Owner)},
			{"Buyer", session.Account},
		}))
		if !ui.Confirm("Buy this car?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Buying...")
		spin.Start()
		receipt, err := market.NewSale(binding, nil).Purchase(ctx, id, price)
		spin.Stop()
		if err != nil {
			return err
		}

		fmt.Println(ui.Success("Car purchased!"))
		fmt.Println(ui.Addr("Hash: " + receipt.Hash))
		return nil
	},
}
