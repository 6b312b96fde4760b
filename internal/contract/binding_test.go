package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motormint/motormint/internal/chain"
)

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// rpcStub serves canned JSON-RPC responses keyed by method name.
func rpcStub(t *testing.T, results map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  results[req.Method],
		}))
	}))
}

var legacyChain = map[string]any{
	"eth_chainId":          "0x539",
	"eth_getBlockByNumber": map[string]any{"number": "0x1"},
}

var londonChain = map[string]any{
	"eth_chainId":          "0x1",
	"eth_getBlockByNumber": map[string]any{"number": "0x1", "baseFeePerGas": "0x7"},
}

func TestBindValidation(t *testing.T) {
	srv := rpcStub(t, legacyChain)
	defer srv.Close()
	client := chain.NewEVMClient(srv.URL)

	t.Run("invalid address", func(t *testing.T) {
		_, err := Bind(context.Background(), client, "not-an-address", nil, nil)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("missing method", func(t *testing.T) {
		abi := []ABIEntry{{Name: "owner", Type: "function", StateMutability: "view"}}
		_, err := Bind(context.Background(), client, testContract, abi, nil)
		assert.ErrorIs(t, err, ErrMissingMethod)
	})

	t.Run("defaults to built-in ABI", func(t *testing.T) {
		b, err := Bind(context.Background(), client, testContract, nil, nil)
		require.NoError(t, err)
		assert.Len(t, b.ABI(), len(MarketplaceABI()))
	})
}

func TestBindFeeModeDetection(t *testing.T) {
	tests := []struct {
		name     string
		results  map[string]any
		expected FeeMode
	}{
		{"london endpoint", londonChain, FeeDynamic},
		{"legacy endpoint", legacyChain, FeeLegacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := rpcStub(t, tt.results)
			defer srv.Close()

			b, err := Bind(context.Background(), chain.NewEVMClient(srv.URL), testContract, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b.FeeMode())
		})
	}
}

func TestBindUnreachableEndpoint(t *testing.T) {
	client := chain.NewEVMClient("http://127.0.0.1:1")
	_, err := Bind(context.Background(), client, testContract, nil, nil)
	assert.ErrorIs(t, err, ErrBinding)
}

func TestOwner(t *testing.T) {
	results := map[string]any{}
	for k, v := range legacyChain {
		results[k] = v
	}
	results["eth_call"] = "0x000000000000000000000000abcdefabcdefabcdefabcdefabcdefabcdefabcd"

	srv := rpcStub(t, results)
	defer srv.Close()

	b, err := Bind(context.Background(), chain.NewEVMClient(srv.URL), testContract, nil, nil)
	require.NoError(t, err)

	owner, err := b.Owner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", owner)
}

func TestAvailableIDs(t *testing.T) {
	results := map[string]any{}
	for k, v := range legacyChain {
		results[k] = v
	}
	results["eth_call"] = "0x" +
		fmt.Sprintf("%064x", 0x20) +
		fmt.Sprintf("%064x", 2) +
		fmt.Sprintf("%064x", 11) +
		fmt.Sprintf("%064x", 12)

	srv := rpcStub(t, results)
	defer srv.Close()

	b, err := Bind(context.Background(), chain.NewEVMClient(srv.URL), testContract, nil, nil)
	require.NoError(t, err)

	ids, err := b.AvailableIDs(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, int64(11), ids[0].Int64())
	assert.Equal(t, int64(12), ids[1].Int64())
}

// stubSigner signs nothing real; it records that it was asked.
type stubSigner struct {
	address string
	signed  bool
}

func (s *stubSigner) Address() string { return s.address }

func (s *stubSigner) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	s.signed = true
	return []byte{0xde, 0xad}, nil
}

func TestSetForSaleLegacy(t *testing.T) {
	results := map[string]any{}
	for k, v := range legacyChain {
		results[k] = v
	}
	results["eth_estimateGas"] = "0x186a0"
	results["eth_getTransactionCount"] = "0x5"
	results["eth_gasPrice"] = "0x3b9aca00"
	results["eth_sendRawTransaction"] = "0xhash123"

	srv := rpcStub(t, results)
	defer srv.Close()

	signer := &stubSigner{address: "0x00000000000000000000000000000000000000aa"}
	b, err := Bind(context.Background(), chain.NewEVMClient(srv.URL), testContract, nil, signer)
	require.NoError(t, err)

	hash, err := b.SetForSale(context.Background(), big.NewInt(3), big.NewInt(1000))
	require.NoError(t, err)
	assert.Equal(t, "0xhash123", hash)
	assert.True(t, signer.signed)
}

func TestAdminMintRecipientValidation(t *testing.T) {
	srv := rpcStub(t, legacyChain)
	defer srv.Close()

	signer := &stubSigner{address: "not-hex"}
	b, err := Bind(context.Background(), chain.NewEVMClient(srv.URL), testContract, nil, signer)
	require.NoError(t, err)

	_, err = b.AdminMint(context.Background(), "bogus", "Tesla", "Model S", 2023, "ipfs://meta", big.NewInt(1))
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
