package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/motormint/motormint/internal/admin"
	"github.com/motormint/motormint/internal/chain"
	"github.com/motormint/motormint/internal/contract"
	"github.com/motormint/motormint/internal/wallet"
)

// newClient builds the JSON-RPC client from config.
func newClient() (*chain.EVMClient, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured — run `motormint init` or set %s", "MOTORMINT_RPC_URL")
	}
	return chain.NewEVMClient(cfg.RPCURL), nil
}

// connectGateway builds a wallet gateway over the RPC endpoint and
// establishes the session. When the endpoint exposes no accounts, the
// session falls back to the configured signing key's address.
func connectGateway(ctx context.Context, client *chain.EVMClient) (*wallet.Gateway, wallet.Session, error) {
	gw := wallet.NewGateway(wallet.NewRPCProvider(client), 0)
	session, err := gw.Connect(ctx)
	if errors.Is(err, wallet.ErrNoAccounts) {
		signer, serr := newSigner()
		if serr != nil {
			return nil, wallet.Session{}, err
		}
		session, err = gw.ConnectLocal(ctx, signer.Address())
	}
	if err != nil {
		return nil, wallet.Session{}, err
	}
	return gw, session, nil
}

// newSigner loads the signing key behind the configured reference.
func newSigner() (*wallet.Signer, error) {
	ref := cfg.KeyRef
	if ref == "" && os.Getenv(wallet.EnvKey) == "" {
		return nil, fmt.Errorf("no signing key — run `motormint wallet import` or set %s", wallet.EnvKey)
	}
	return wallet.NewSigner(wallet.DefaultKeystore(), ref)
}

// loadABI returns the configured ABI override, or nil for the built-in one.
func loadABI() ([]contract.ABIEntry, error) {
	if cfg.ABIPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cfg.ABIPath)
	if err != nil {
		return nil, fmt.Errorf("reading ABI %s: %w", cfg.ABIPath, err)
	}
	return contract.ParseABI(data)
}

// newBinding wires client and signer to the configured marketplace contract.
func newBinding(ctx context.Context, client *chain.EVMClient, signer contract.TxSigner) (*contract.Binding, error) {
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("no contract address configured — run `motormint init` or set %s", "MOTORMINT_CONTRACT")
	}
	abi, err := loadABI()
	if err != nil {
		return nil, err
	}
	return contract.Bind(ctx, client, cfg.ContractAddress, abi, signer)
}

// newAuthority builds the admin policy over the configured allow-list and
// the bound contract's owner.
func newAuthority(binding *contract.Binding) *admin.Authority {
	return admin.NewAuthority(cfg.AdminAllowList, binding)
}
