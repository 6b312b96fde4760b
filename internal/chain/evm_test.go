package chain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcStub serves canned JSON-RPC responses keyed by method name.
func rpcStub(t *testing.T, results map[string]any, errs map[string]*RPCError) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr, ok := errs[req.Method]; ok {
			resp["error"] = rpcErr
		} else {
			resp["result"] = results[req.Method]
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestChainID(t *testing.T) {
	srv := rpcStub(t, map[string]any{"eth_chainId": "0x1"}, nil)
	defer srv.Close()

	id, err := NewEVMClient(srv.URL).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestRPCErrorCode(t *testing.T) {
	srv := rpcStub(t, nil, map[string]*RPCError{
		"eth_requestAccounts": {Code: CodeUserRejected, Message: "User rejected the request."},
	})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).RequestAccounts(context.Background())
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, CodeUserRejected, rpcErr.Code)
}

func TestRequestAccountsFallback(t *testing.T) {
	srv := rpcStub(t,
		map[string]any{"eth_accounts": []string{"0xabc0000000000000000000000000000000000001"}},
		map[string]*RPCError{"eth_requestAccounts": {Code: -32601, Message: "method not found"}},
	)
	defer srv.Close()

	accounts, err := NewEVMClient(srv.URL).RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "0xabc0000000000000000000000000000000000001", accounts[0])
}

func TestSupportsDynamicFees(t *testing.T) {
	tests := []struct {
		name     string
		block    map[string]any
		expected bool
	}{
		{"post-london", map[string]any{"number": "0x10", "baseFeePerGas": "0x7"}, true},
		{"pre-london", map[string]any{"number": "0x10"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := rpcStub(t, map[string]any{"eth_getBlockByNumber": tt.block}, nil)
			defer srv.Close()

			dynamic, err := NewEVMClient(srv.URL).SupportsDynamicFees(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dynamic)
		})
	}
}

func TestTransactionReceiptPending(t *testing.T) {
	srv := rpcStub(t, map[string]any{"eth_getTransactionReceipt": nil}, nil)
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).TransactionReceipt(context.Background(), "0xdead")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestTransactionReceiptMined(t *testing.T) {
	srv := rpcStub(t, map[string]any{
		"eth_getTransactionReceipt": map[string]any{
			"status":      "0x1",
			"blockNumber": "0x2a",
			"gasUsed":     "0x5208",
			"logs": []map[string]any{
				{"address": "0xc0ffee", "topics": []string{"0x01"}, "data": "0x"},
			},
		},
	}, nil)
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).TransactionReceipt(context.Background(), "0xbeef")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, uint64(1), receipt.Status)
	assert.Equal(t, uint64(42), receipt.BlockNumber)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, "0xc0ffee", receipt.Logs[0].Address)
}

func TestRevertReason(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			"standard prefix",
			"RPC error 3: execution reverted: Not enough ETH",
			"Not enough ETH",
		},
		{
			"bare revert",
			"transaction would revert in the EVM",
			"revert in the EVM",
		},
		{
			"no revert marker",
			"nonce too low",
			"nonce too low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RevertReason(tt.in))
		})
	}
}
