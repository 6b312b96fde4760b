package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/motormint/motormint/internal/errkind"
	"github.com/motormint/motormint/internal/mint"
	"github.com/motormint/motormint/internal/notify"
	"github.com/motormint/motormint/internal/pin"
	"github.com/motormint/motormint/internal/ui"
	"github.com/motormint/motormint/internal/wallet"
	"github.com/spf13/cobra"
)

var (
	mintTo    string
	mintMake  string
	mintModel string
	mintYear  uint64
	mintPrice string
	mintDesc  string
	mintImage string
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a new car token (admin only)",
	Long: `Mint a new car token: the image is pinned to IPFS, a metadata
record referencing it is pinned next, and the mint transaction is
submitted and confirmed. Requires an admin account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if mintMake == "" || mintModel == "" {
			return fmt.Errorf("--make and --model are required")
		}
		if mintPrice == "" {
			return fmt.Errorf("--price is required")
		}
		if mintImage == "" {
			return fmt.Errorf("--image is required")
		}

		img, err := os.Open(mintImage)
		if err != nil {
			return fmt.Errorf("opening image: %w", err)
		}
		defer img.Close()

		client, err := newClient()
		if err != nil {
			return err
		}
		gw, _, err := connectGateway(ctx, client)
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

		// Account switches mid-run invalidate the mint; surface them.
		center := notify.NewCenter(0)
		gw.Subscribe(func(account string) {
			center.Push(errkind.PermissionDenied,
				"account changed to "+wallet.ShortAddress(account)+" during mint")
		})

		pinner := pin.NewPinner(cfg.PinEndpoint, cfg.PinAPIKey, cfg.PinSecretKey)
		extractor := mint.NewExtractor(binding.ABI())

		stages := []string{
			mint.StateUploading.String(),
			mint.StateMetadataUploading.String(),
			mint.StateSubmitting.String(),
			mint.StateConfirming.String(),
		}
		prog := tea.NewProgram(ui.NewProgress("Minting "+mintMake+" "+mintModel, stages))

		workflow := mint.NewWorkflow(gw, newAuthority(binding), pinner, binding, extractor, func(s mint.State) {
			prog.Send(ui.StageMsg{Stage: s.String()})
		})

		var runErr error
		go func() {
			result, err := workflow.Run(ctx, mint.Request{
				Recipient:   mintTo,
				Make:        mintMake,
				Model:       mintModel,
				Year:        mintYear,
				Price:       mintPrice,
				Description: mintDesc,
				AssetName:   filepath.Base(mintImage),
				Asset:       img,
			})
			if err != nil {
				runErr = err
				prog.Send(ui.DoneMsg{Err: err.Error()})
				return
			}
			prog.Send(ui.DoneMsg{Summary: [][2]string{
				{"Token ID", result.TokenID},
				{"Tx hash", result.TxHash},
				{"Block", fmt.Sprintf("%d", result.Block)},
				{"Image", result.AssetURI},
				{"Metadata", result.MetadataURI},
			}})
		}()

		if _, err := prog.Run(); err != nil {
			return err
		}
		for _, n := range center.Active() {
			fmt.Println(ui.Warn(n.Message))
		}
		return runErr
	},
}

func init() {
	mintCmd.Flags().StringVar(&mintTo, "to", "", "recipient address (default: connected account)")
	mintCmd.Flags().StringVar(&mintMake, "make", "", "car make (required)")
	mintCmd.Flags().StringVar(&mintModel, "model", "", "car model (required)")
	mintCmd.Flags().Uint64Var(&mintYear, "year", 0, "model year")
	mintCmd.Flags().StringVar(&mintPrice, "price", "", "asking price in ETH (required)")
	mintCmd.Flags().StringVar(&mintDesc, "desc", "", "description")
	mintCmd.Flags().StringVar(&mintImage, "image", "", "path to the car image (required)")
}
