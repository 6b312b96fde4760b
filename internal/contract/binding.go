package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/motormint/motormint/internal/chain"
)

var (
	// ErrInvalidAddress is returned when the configured contract address
	// is malformed.
	ErrInvalidAddress = errors.New("invalid contract address")

	// ErrBinding is returned when the remote endpoint cannot be reached
	// while constructing the binding.
	ErrBinding = errors.New("contract binding failed")
)

// TxSigner signs transactions for the connected account.
// wallet.Signer satisfies this.
type TxSigner interface {
	Address() string
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// FeeMode selects how write transactions carry their gas price. The two
// supported endpoint revisions are incompatible at the transaction-type
// level; the mode is detected once at bind time so no caller ever branches
// on it again.
type FeeMode int

const (
	// FeeDynamic uses EIP-1559 dynamic-fee transactions.
	FeeDynamic FeeMode = iota
	// FeeLegacy uses gas-priced legacy transactions for pre-London
	// endpoints.
	FeeLegacy
)

func (m FeeMode) String() string {
	if m == FeeLegacy {
		return "legacy"
	}
	return "dynamic"
}

// Binding is a typed handle to the deployed marketplace contract. It is
// immutable: rebuild it when the signer changes.
type Binding struct {
	client  *chain.EVMClient
	address string
	abi     []ABIEntry
	signer  TxSigner
	chainID *big.Int
	feeMode FeeMode
}

// Bind constructs a Binding for the marketplace at address. It validates
// the address, checks the ABI exposes every required method, probes the
// endpoint once for its chain ID and detects the fee revision.
func Bind(ctx context.Context, client *chain.EVMClient, address string, abi []ABIEntry, signer TxSigner) (*Binding, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if abi == nil {
		abi = MarketplaceABI()
	}
	for _, name := range requiredMethods {
		if findFunction(abi, name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingMethod, name)
		}
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBinding, err)
	}

	dynamic, err := client.SupportsDynamicFees(ctx)
	if err != nil {
		// An endpoint that serves eth_chainId but not block headers is
		// past the reachability check; treat it as pre-London.
		dynamic = false
	}
	mode := FeeLegacy
	if dynamic {
		mode = FeeDynamic
	}

	return &Binding{
		client:  client,
		address: common.HexToAddress(address).Hex(),
		abi:     abi,
		signer:  signer,
		chainID: new(big.Int).SetUint64(chainID),
		feeMode: mode,
	}, nil
}

// Address returns the checksummed contract address.
func (b *Binding) Address() string { return b.address }

// FeeMode returns the detected fee revision.
func (b *Binding) FeeMode() FeeMode { return b.feeMode }

// ABI returns the bound ABI entries.
func (b *Binding) ABI() []ABIEntry { return b.abi }

// --- reads ---

func (b *Binding) read(ctx context.Context, funcName string, args ...any) ([]any, error) {
	fn := findFunction(b.abi, funcName)
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingMethod, funcName)
	}
	calldata, err := encodeCall(fn, args)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", funcName, err)
	}
	result, err := b.client.CallContract(ctx, b.address, calldata)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", funcName, err)
	}
	out, err := decodeReturns(fn, result)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", funcName, err)
	}
	return out, nil
}

// Owner returns the contract's recorded privileged address.
func (b *Binding) Owner(ctx context.Context) (string, error) {
	out, err := b.read(ctx, "owner")
	if err != nil {
		return "", err
	}
	addr, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("owner: unexpected return %T", out[0])
	}
	return addr, nil
}

// AvailableIDs returns the token ids currently offered by the marketplace.
func (b *Binding) AvailableIDs(ctx context.Context) ([]*big.Int, error) {
	out, err := b.read(ctx, "getAvailableNfts")
	if err != nil {
		return nil, err
	}
	ids, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("getAvailableNfts: unexpected return %T", out[0])
	}
	return ids, nil
}

// CarRecord is the raw per-token metadata as the contract stores it.
// Price stays in wei here; display conversion happens in the reader.
type CarRecord struct {
	Make        string
	Model       string
	Year        uint64
	ImageURI    string
	PriceWei    *big.Int
	Owner       string
	ForSale     bool
	MetadataURI string
}

// CarMetadata fetches the stored record for one token.
func (b *Binding) CarMetadata(ctx context.Context, id *big.Int) (*CarRecord, error) {
	out, err := b.read(ctx, "getCarMetadata", id)
	if err != nil {
		return nil, err
	}
	if len(out) != 8 {
		return nil, fmt.Errorf("getCarMetadata: expected 8 outputs, got %d", len(out))
	}
	rec := &CarRecord{}
	var ok bool
	if rec.Make, ok = out[0].(string); !ok {
		return nil, fmt.Errorf("getCarMetadata: bad make %T", out[0])
	}
	if rec.Model, ok = out[1].(string); !ok {
		return nil, fmt.Errorf("getCarMetadata: bad model %T", out[1])
	}
	year, ok := out[2].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getCarMetadata: bad year %T", out[2])
	}
	rec.Year = year.Uint64()
	if rec.ImageURI, ok = out[3].(string); !ok {
		return nil, fmt.Errorf("getCarMetadata: bad imageUrl %T", out[3])
	}
	if rec.PriceWei, ok = out[4].(*big.Int); !ok {
		return nil, fmt.Errorf("getCarMetadata: bad price %T", out[4])
	}
	if rec.Owner, ok = out[5].(string); !ok {
		return nil, fmt.Errorf("getCarMetadata: bad owner %T", out[5])
	}
	if rec.ForSale, ok = out[6].(bool); !ok {
		return nil, fmt.Errorf("getCarMetadata: bad forSale %T", out[6])
	}
	if rec.MetadataURI, ok = out[7].(string); !ok {
		return nil, fmt.Errorf("getCarMetadata: bad metadataURI %T", out[7])
	}
	return rec, nil
}

// --- writes ---

// send encodes a write call, prices it per the detected fee mode, signs and
// broadcasts it. Returns the transaction hash.
func (b *Binding) send(ctx context.Context, funcName string, value *big.Int, args ...any) (string, error) {
	fn := findFunction(b.abi, funcName)
	if fn == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingMethod, funcName)
	}
	if !fn.IsWriteFunction() {
		return "", fmt.Errorf("function %q is not a write function", funcName)
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", funcName, err)
	}

	from := b.signer.Address()

	gas, err := b.client.EstimateGas(ctx, from, b.address, calldata, value)
	if err != nil {
		gas = 300000 // fallback
	}

	nonce, err := b.client.Nonce(ctx, from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	if value == nil {
		value = big.NewInt(0)
	}
	tx, err := b.buildTx(ctx, nonce, gas, calldata, value)
	if err != nil {
		return "", err
	}

	raw, err := b.signer.SignTx(tx, b.chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := b.client.SendRawTransaction(ctx, "0x"+fmt.Sprintf("%x", raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	return hash, nil
}

// buildTx is the single place that knows about the two fee revisions.
func (b *Binding) buildTx(ctx context.Context, nonce, gas uint64, calldata string, value *big.Int) (*types.Transaction, error) {
	data := common.FromHex(calldata)
	to := common.HexToAddress(b.address)

	switch b.feeMode {
	case FeeDynamic:
		tip, err := b.client.MaxPriorityFeePerGas(ctx)
		if err != nil {
			tip, err = b.client.GasPrice(ctx)
			if err != nil {
				return nil, fmt.Errorf("getting gas tip: %w", err)
			}
		}
		gasPrice, err := b.client.GasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting gas price: %w", err)
		}
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   b.chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
			Gas:       gas,
			To:        &to,
			Value:     value,
			Data:      data,
		}), nil

	default:
		gasPrice, err := b.client.GasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting gas price: %w", err)
		}
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    value,
			Data:     data,
		}), nil
	}
}

// AdminMint mints a new car token. An empty recipient mints to the
// connected account.
func (b *Binding) AdminMint(ctx context.Context, to, carMake, carModel string, year uint64, metadataURI string, priceWei *big.Int) (string, error) {
	if to == "" {
		to = b.signer.Address()
	}
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("%w: recipient %q", ErrInvalidAddress, to)
	}
	return b.send(ctx, "adminMintNft", nil, to, carMake, carModel, new(big.Int).SetUint64(year), metadataURI, priceWei)
}

// SetForSale lists a token at the given wei price.
func (b *Binding) SetForSale(ctx context.Context, id, priceWei *big.Int) (string, error) {
	return b.send(ctx, "setForSale", nil, id, priceWei)
}

// Buy purchases a token, sending valueWei along with the call.
func (b *Binding) Buy(ctx context.Context, id, valueWei *big.Int) (string, error) {
	return b.send(ctx, "buyCarNft", valueWei, id)
}

// WaitMined blocks until the transaction is mined or ctx ends.
func (b *Binding) WaitMined(ctx context.Context, hash string) (*chain.Receipt, error) {
	return b.client.WaitMined(ctx, hash)
}
