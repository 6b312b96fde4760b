package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url    string
	client *http.Client
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// URL returns the RPC endpoint the client talks to.
func (c *EVMClient) URL() string { return c.url }

// RPCError is a structured JSON-RPC error. The code matters: wallet
// providers signal a dismissed account prompt with code 4001.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// CodeUserRejected is the EIP-1193 error code for a dismissed prompt.
const CodeUserRejected = 4001

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "eth_chainId")
}

// BlockNumber returns the latest block number.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "eth_blockNumber")
}

// Accounts returns the accounts the provider currently exposes.
func (c *EVMClient) Accounts(ctx context.Context) ([]string, error) {
	return c.callAccounts(ctx, "eth_accounts")
}

// RequestAccounts asks the provider to expose accounts, which may pop a
// prompt on wallet-backed endpoints. Falls back to eth_accounts when the
// endpoint does not know the request method.
func (c *EVMClient) RequestAccounts(ctx context.Context) ([]string, error) {
	accounts, err := c.callAccounts(ctx, "eth_requestAccounts")
	if rpcErr, ok := err.(*RPCError); ok && rpcErr.Code == -32601 {
		return c.callAccounts(ctx, "eth_accounts")
	}
	return accounts, err
}

func (c *EVMClient) callAccounts(ctx context.Context, method string) ([]string, error) {
	result, err := c.call(ctx, method)
	if err != nil {
		return nil, err
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result: %T", result)
	}
	accounts := make([]string, 0, len(raw))
	for _, a := range raw {
		if s, ok := a.(string); ok {
			accounts = append(accounts, s)
		}
	}
	return accounts, nil
}

// GasPrice returns the current gas price.
func (c *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "eth_gasPrice")
}

// MaxPriorityFeePerGas returns the suggested tip for dynamic-fee chains.
func (c *EVMClient) MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "eth_maxPriorityFeePerGas")
}

// SupportsDynamicFees reports whether the endpoint serves EIP-1559 blocks.
// Decided by the presence of baseFeePerGas in the latest block header.
func (c *EVMClient) SupportsDynamicFees(ctx context.Context) (bool, error) {
	result, err := c.call(ctx, "eth_getBlockByNumber", "latest", false)
	if err != nil {
		return false, err
	}
	block, ok := result.(map[string]interface{})
	if !ok {
		return false, fmt.Errorf("unexpected result: %T", result)
	}
	base, ok := block["baseFeePerGas"].(string)
	return ok && base != "", nil
}

// Nonce returns the transaction count for an address, including pending.
func (c *EVMClient) Nonce(ctx context.Context, address string) (uint64, error) {
	return c.callUint(ctx, "eth_getTransactionCount", address, "pending")
}

// EstimateGas estimates gas for a transaction.
func (c *EVMClient) EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (uint64, error) {
	params := map[string]string{
		"from": from,
		"to":   to,
	}
	if data != "" {
		params["data"] = data
	}
	if value != nil && value.Sign() > 0 {
		params["value"] = "0x" + value.Text(16)
	}
	return c.callUint(ctx, "eth_estimateGas", params, "latest")
}

// CallContract calls a read function with the given calldata.
func (c *EVMClient) CallContract(ctx context.Context, toAddr, calldata string) (string, error) {
	result, err := c.call(ctx, "eth_call", map[string]string{
		"to":   toAddr,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}
	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result: %T", result)
	}
	return s, nil
}

// SendRawTransaction broadcasts a signed raw transaction.
func (c *EVMClient) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	result, err := c.call(ctx, "eth_sendRawTransaction", rawTx)
	if err != nil {
		return "", err
	}
	hash, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result: %T", result)
	}
	return hash, nil
}

// Log holds one event log from a receipt.
type Log struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// Receipt holds the on-chain receipt of a mined transaction.
type Receipt struct {
	Hash        string
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	GasUsed     uint64
	Logs        []Log
}

// TransactionReceipt fetches the receipt for hash.
// Returns nil, nil while the transaction is still pending.
func (c *EVMClient) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	result, err := c.call(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil // still pending
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var r struct {
		Status      string `json:"status"`
		BlockNumber string `json:"blockNumber"`
		GasUsed     string `json:"gasUsed"`
		Logs        []Log  `json:"logs"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}

	receipt := &Receipt{Hash: hash, Logs: r.Logs}
	if s, ok := parseBigHex(r.Status); ok {
		receipt.Status = s.Uint64()
	}
	if bn, ok := parseBigHex(r.BlockNumber); ok {
		receipt.BlockNumber = bn.Uint64()
	}
	if gu, ok := parseBigHex(r.GasUsed); ok {
		receipt.GasUsed = gu.Uint64()
	}
	return receipt, nil
}

// WaitMined polls until the transaction is mined or ctx ends. No deadline
// is layered on top of ctx: a wallet prompt or a congested pool may hold a
// transaction pending indefinitely, and that is the provider's contract.
func (c *EVMClient) WaitMined(ctx context.Context, hash string) (*Receipt, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.TransactionReceipt(ctx, hash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// RevertReason tries to pull the revert reason out of an RPC error message.
func RevertReason(errMsg string) string {
	if idx := strings.Index(errMsg, "execution reverted:"); idx >= 0 {
		return strings.TrimSpace(errMsg[idx+len("execution reverted:"):])
	}
	if idx := strings.Index(errMsg, "revert"); idx >= 0 {
		return strings.TrimSpace(errMsg[idx:])
	}
	return errMsg
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

func (c *EVMClient) call(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	if params == nil {
		params = []interface{}{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return nil, nil
	}
	var result interface{}
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}

	return result, nil
}

func (c *EVMClient) callBig(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	result, err := c.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	hexStr, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected result: %T", result)
	}
	n, ok := parseBigHex(hexStr)
	if !ok {
		return nil, fmt.Errorf("could not parse hex quantity: %s", hexStr)
	}
	return n, nil
}

func (c *EVMClient) callUint(ctx context.Context, method string, params ...interface{}) (uint64, error) {
	n, err := c.callBig(ctx, method, params...)
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func parseBigHex(s string) (*big.Int, bool) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return big.NewInt(0), true
	}
	return new(big.Int).SetString(s, 16)
}
