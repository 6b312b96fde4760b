package cmd

import (
	"fmt"

	"github.com/motormint/motormint/internal/market"
	"github.com/motormint/motormint/internal/ui"
	"github.com/spf13/cobra"
)

// fallbackImages stand in when a token's stored image reference is empty.
// Picked deterministically by listing position so the view is stable.
var fallbackImages = []string{
	"https://images.unsplash.com/photo-1494905998402-395d579af36f?w=800",
	"https://images.unsplash.com/photo-1503376780353-7e6692767b70?w=800",
	"https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=800",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show cars available on the marketplace",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient()
		if err != nil {
			return err
		}
		binding, err := newBinding(ctx, client, nil)
		if err != nil {
			return err
		}

		spin := ui.NewSpinner("Fetching listings...")
		spin.Start()
		listings, err := market.NewReader(binding, fallbackImages).ListAvailable(ctx)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("fetching listings: %w", err)
		}

		if len(listings) == 0 {
			fmt.Println(ui.Meta("No cars available."))
			return nil
		}

		table := ui.NewTable([]ui.Column{
			{Title: "ID", Width: 4, Right: true},
			{Title: "MAKE", Width: 12},
			{Title: "MODEL", Width: 14},
			{Title: "YEAR", Width: 4, Right: true},
			{Title: "PRICE (ETH)", Width: 11, Right: true},
			{Title: "OWNER", Width: 13},
		})
		for _, l := range listings {
			owner := ui.TruncateAddr(l.Owner)
			if l.LoadFailed {
				owner = "-"
			}
			table.AddRow(ui.Row{l.ID, l.Make, l.Model, l.Year, l.Price, owner})
		}

		fmt.Println(ui.StyleTitle.Render("Available Cars"))
		fmt.Print(table.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d car(s) available", len(listings))))
		return nil
	},
}
