package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeySource fetches a private key by reference. *Keystore satisfies this;
// tests use a literal func.
type KeySource interface {
	Retrieve(ref string) (string, error)
}

// Signer signs transactions with a locally held key. It stands in for the
// browser wallet's signing half in this headless client.
type Signer struct {
	priv    *ecdsa.PrivateKey
	address string
}

// NewSigner loads the key behind ref and derives its address.
func NewSigner(ks KeySource, ref string) (*Signer, error) {
	hexKey, err := ks.Retrieve(ref)
	if err != nil {
		return nil, fmt.Errorf("retrieving key: %w", err)
	}
	priv, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	return &Signer{
		priv:    priv,
		address: crypto.PubkeyToAddress(priv.PublicKey).Hex(),
	}, nil
}

// Address returns the signer's checksummed address.
func (s *Signer) Address() string { return s.address }

// SignTx signs a transaction and returns the raw signed bytes. The latest
// signer handles both legacy and dynamic-fee transaction types, so the fee
// shim never leaks in here.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.priv)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling signed tx: %w", err)
	}
	return raw, nil
}
