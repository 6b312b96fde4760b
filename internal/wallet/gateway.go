package wallet

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Session is the connected-wallet state. Owned exclusively by the Gateway;
// callers get copies.
type Session struct {
	Account   string
	ChainID   uint64
	Connected bool
}

// Gateway owns the wallet connection: one instance per process, injected
// into workflows instead of re-initialized per command. It keeps a single
// account-change subscription and an epoch counter that in-flight
// operations use as a liveness check — any account transition bumps the
// epoch, invalidating work started under the previous identity.
type Gateway struct {
	provider Provider
	interval time.Duration

	mu      sync.Mutex
	session Session
	epoch   uint64
	handler func(account string)

	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

// NewGateway creates a gateway over provider. interval controls how often
// the account subscription polls; zero means 2s.
func NewGateway(provider Provider, interval time.Duration) *Gateway {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Gateway{provider: provider, interval: interval}
}

// Connect establishes the wallet session. Fails with ErrProviderUnavailable
// when no provider answers and ErrUserRejected when the prompt is
// dismissed.
func (g *Gateway) Connect(ctx context.Context) (Session, error) {
	accounts, err := g.provider.RequestAccounts(ctx)
	if err != nil {
		return Session{}, err
	}
	if len(accounts) == 0 {
		return Session{}, ErrNoAccounts
	}
	chainID, err := g.provider.ChainID(ctx)
	if err != nil {
		return Session{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = Session{Account: accounts[0], ChainID: chainID, Connected: true}
	g.epoch++
	return g.session, nil
}

// ConnectLocal establishes a session for a locally held signing key when
// the endpoint exposes no accounts of its own. The poll loop is not useful
// in this mode; account changes only happen through re-connecting.
func (g *Gateway) ConnectLocal(ctx context.Context, account string) (Session, error) {
	chainID, err := g.provider.ChainID(ctx)
	if err != nil {
		return Session{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = Session{Account: account, ChainID: chainID, Connected: true}
	g.epoch++
	return g.session, nil
}

// CurrentAccount returns the connected account, or "" before connect.
func (g *Gateway) CurrentAccount() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Account
}

// Session returns a copy of the current session.
func (g *Gateway) Session() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Epoch returns the current session epoch. Operations capture it when they
// start and discard their results if it moved.
func (g *Gateway) Epoch() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch
}

// Subscribe registers the account-change handler and starts the poll loop.
// Re-subscribing replaces the handler; only one poll loop ever runs.
func (g *Gateway) Subscribe(handler func(account string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handler = handler
	if g.pollCancel != nil {
		return // loop already running; handler swap is enough
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.pollCancel = cancel
	g.pollDone = make(chan struct{})
	go g.poll(ctx)
}

// Close releases the subscription and clears the session.
func (g *Gateway) Close() {
	g.mu.Lock()
	cancel := g.pollCancel
	done := g.pollDone
	g.pollCancel = nil
	g.pollDone = nil
	g.handler = nil
	g.session = Session{}
	g.epoch++
	g.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (g *Gateway) poll(ctx context.Context) {
	defer close(g.pollDone)
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		accounts, err := g.provider.Accounts(ctx)
		if err != nil {
			continue // transient; keep polling
		}
		current := ""
		if len(accounts) > 0 {
			current = accounts[0]
		}
		g.applyAccount(current)
	}
}

// applyAccount records an account transition. Exposed to tests via
// gateway_test.go; production changes arrive from the poll loop.
func (g *Gateway) applyAccount(account string) {
	g.mu.Lock()
	if strings.EqualFold(g.session.Account, account) {
		g.mu.Unlock()
		return
	}
	g.session.Account = account
	g.session.Connected = account != ""
	g.epoch++
	handler := g.handler
	g.mu.Unlock()

	if handler != nil {
		handler(account)
	}
}

// ShortAddress formats an address for display: 0x1234…5678.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
