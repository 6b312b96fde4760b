package cmd

import (
	"fmt"

	"github.com/motormint/motormint/internal/ui"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Check whether the connected account may mint",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient()
		if err != nil {
			return err
		}

		gw, session, err := connectGateway(ctx, client)
		if err != nil {
			return err
		}
		defer gw.Close()

		binding, err := newBinding(ctx, client, nil)
		if err != nil {
			return err
		}

		decision := newAuthority(binding).Decide(ctx, session.Account)

		verdict := ui.Err("not an admin")
		if decision.Admin {
			verdict = ui.Success("admin")
		}
		fmt.Println(ui.KeyValueBlock("Authorization", [][2]string{
			{"Account", session.Account},
			{"Verdict", verdict},
			{"Source", decision.Source.String()},
		}))
		return nil
	},
}
