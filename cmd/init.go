package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/motormint/motormint/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup",
	Long:  "Configure the RPC endpoint, marketplace contract and pinning credentials.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.Banner())

		reader := bufio.NewReader(os.Stdin)
		ask := func(label, current string) string {
			if current != "" {
				fmt.Printf("%s [%s]: ", ui.Meta(label), ui.Val(current))
			} else {
				fmt.Printf("%s: ", ui.Meta(label))
			}
			line, _ := reader.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "" {
				return current
			}
			return line
		}

		cfg.RPCURL = ask("RPC endpoint URL", cfg.RPCURL)
		cfg.ContractAddress = ask("Marketplace contract address", cfg.ContractAddress)
		cfg.PinAPIKey = ask("Pinata API key", cfg.PinAPIKey)
		cfg.PinSecretKey = ask("Pinata API secret", cfg.PinSecretKey)

		if allow := ask("Admin allow-list (comma-separated addresses)", strings.Join(cfg.AdminAllowList, ",")); allow != "" {
			parts := strings.Split(allow, ",")
			cfg.AdminAllowList = cfg.AdminAllowList[:0]
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					cfg.AdminAllowList = append(cfg.AdminAllowList, p)
				}
			}
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Println(ui.Success("motormint configured! Run `motormint --help` to explore commands."))
		return nil
	},
}
