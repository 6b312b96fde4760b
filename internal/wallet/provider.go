package wallet

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/motormint/motormint/internal/chain"
)

var (
	// ErrProviderUnavailable is returned when no wallet provider can be
	// reached at the configured endpoint.
	ErrProviderUnavailable = errors.New("wallet provider unavailable")

	// ErrUserRejected is returned when the account-access prompt was
	// dismissed.
	ErrUserRejected = errors.New("account access rejected by user")

	// ErrNoAccounts is returned when the provider exposes no accounts.
	ErrNoAccounts = errors.New("provider exposed no accounts")
)

// Provider is the wallet boundary: something that can expose accounts and
// a chain id. It is consumed, never implemented, by the workflows.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	Accounts(ctx context.Context) ([]string, error)
	ChainID(ctx context.Context) (uint64, error)
}

// RPCProvider adapts an EVM JSON-RPC endpoint to the Provider surface.
type RPCProvider struct {
	client *chain.EVMClient
}

// NewRPCProvider wraps client as a Provider.
func NewRPCProvider(client *chain.EVMClient) *RPCProvider {
	return &RPCProvider{client: client}
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	accounts, err := p.client.RequestAccounts(ctx)
	return accounts, classifyProviderErr(err)
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	accounts, err := p.client.Accounts(ctx)
	return accounts, classifyProviderErr(err)
}

func (p *RPCProvider) ChainID(ctx context.Context) (uint64, error) {
	id, err := p.client.ChainID(ctx)
	return id, classifyProviderErr(err)
}

func classifyProviderErr(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *chain.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == chain.CodeUserRejected {
		return ErrUserRejected
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return errors.Join(ErrProviderUnavailable, err)
	}
	return err
}
