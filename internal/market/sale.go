package market

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/motormint/motormint/internal/chain"
)

var (
	// ErrTransactionRejected is returned when a sale transaction could
	// not be submitted (rejected signature, insufficient funds for gas).
	ErrTransactionRejected = errors.New("transaction rejected")

	// ErrTransactionReverted is returned when the mined receipt reports
	// failure.
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrInsufficientValue is returned when a purchase reverts because
	// the sent value did not cover the asking price.
	ErrInsufficientValue = errors.New("insufficient value sent")
)

// Exchange is the write surface of the marketplace contract.
// contract.Binding satisfies this.
type Exchange interface {
	SetForSale(ctx context.Context, id, priceWei *big.Int) (string, error)
	Buy(ctx context.Context, id, valueWei *big.Int) (string, error)
	WaitMined(ctx context.Context, hash string) (*chain.Receipt, error)
}

// Sale lists tokens for sale and drives purchases. On success it kicks a
// fire-and-forget refresh whose outcome never masks the sale itself.
type Sale struct {
	exchange Exchange
	refresh  func()
}

// NewSale creates a Sale. refresh may be nil.
func NewSale(exchange Exchange, refresh func()) *Sale {
	return &Sale{exchange: exchange, refresh: refresh}
}

// ListForSale lists token id at the given decimal-ether price and waits
// for confirmation.
func (s *Sale) ListForSale(ctx context.Context, id *big.Int, price string) (*chain.Receipt, error) {
	priceWei, err := chain.EtherToWei(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}

	hash, err := s.exchange.SetForSale(ctx, id, priceWei)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransactionRejected, chain.RevertReason(err.Error()))
	}
	return s.confirm(ctx, hash)
}

// Purchase buys token id, sending the asking price as transaction value,
// and waits for confirmation. InsufficientValue is recognized from the
// revert reason when the endpoint surfaces one at submission.
func (s *Sale) Purchase(ctx context.Context, id *big.Int, price string) (*chain.Receipt, error) {
	valueWei, err := chain.EtherToWei(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}

	hash, err := s.exchange.Buy(ctx, id, valueWei)
	if err != nil {
		reason := chain.RevertReason(err.Error())
		if insufficientValue(reason) {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientValue, reason)
		}
		return nil, fmt.Errorf("%w: %s", ErrTransactionRejected, reason)
	}
	return s.confirm(ctx, hash)
}

func (s *Sale) confirm(ctx context.Context, hash string) (*chain.Receipt, error) {
	receipt, err := s.exchange.WaitMined(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", hash, err)
	}
	if receipt.Status == 0 {
		return nil, fmt.Errorf("%w (hash: %s)", ErrTransactionReverted, hash)
	}

	if s.refresh != nil {
		go s.refresh()
	}
	return receipt, nil
}

func insufficientValue(reason string) bool {
	return strings.Contains(strings.ToLower(reason), "insufficient")
}
