package contract

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHexDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// encodeCarMetadataResult builds the raw return data of getCarMetadata:
// eight head words with the four strings in the tail.
func encodeCarMetadataResult(t *testing.T, carMake, carModel string, year int64,
	imageURI string, price *big.Int, owner string, forSale bool, metadataURI string) string {
	t.Helper()

	headSize := 8 * 32
	offset := headSize
	var tail strings.Builder
	offsets := make(map[string]int)
	for _, s := range []string{carMake, carModel, imageURI, metadataURI} {
		enc, err := encodeDynamic("string", s)
		require.NoError(t, err)
		offsets[s] = offset
		tail.WriteString(enc)
		offset += len(enc) / 2
	}

	word := func(typ string, v any) string {
		w, err := encodeWord(typ, v)
		require.NoError(t, err)
		return w
	}

	var head strings.Builder
	head.WriteString(fmt.Sprintf("%064x", offsets[carMake]))
	head.WriteString(fmt.Sprintf("%064x", offsets[carModel]))
	head.WriteString(word("uint256", big.NewInt(year)))
	head.WriteString(fmt.Sprintf("%064x", offsets[imageURI]))
	head.WriteString(word("uint256", price))
	head.WriteString(word("address", owner))
	head.WriteString(word("bool", forSale))
	head.WriteString(fmt.Sprintf("%064x", offsets[metadataURI]))

	return head.String() + tail.String()
}

func TestFunctionSelector(t *testing.T) {
	tests := []struct {
		name     string
		fn       ABIEntry
		expected string
	}{
		{
			"owner()",
			ABIEntry{Name: "owner", Inputs: nil},
			"0x8da5cb5b",
		},
		{
			"balanceOf(address)",
			ABIEntry{Name: "balanceOf", Inputs: []ABIParam{{Type: "address"}}},
			"0x70a08231",
		},
		{
			"transfer(address,uint256)",
			ABIEntry{Name: "transfer", Inputs: []ABIParam{{Type: "address"}, {Type: "uint256"}}},
			"0xa9059cbb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, functionSelector(&tt.fn))
		})
	}
}

func TestEventTopicTransfer(t *testing.T) {
	ev := ABIEntry{Name: "Transfer", Type: "event", Inputs: []ABIParam{
		{Name: "from", Type: "address", Indexed: true},
		{Name: "to", Type: "address", Indexed: true},
		{Name: "value", Type: "uint256", Indexed: true},
	}}
	assert.Equal(t,
		"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		EventTopic(&ev))
}

func TestEncodeCallStatic(t *testing.T) {
	fn := ABIEntry{Name: "setForSale", Type: "function", Inputs: []ABIParam{
		{Name: "tokenId", Type: "uint256"},
		{Name: "price", Type: "uint256"},
	}}

	calldata, err := encodeCall(&fn, []any{big.NewInt(7), big.NewInt(1000)})
	require.NoError(t, err)

	// selector + two 32-byte words
	require.Len(t, calldata, 2+8+64*2)
	body := calldata[10:]
	assert.Equal(t, fmt.Sprintf("%064x", 7), body[:64])
	assert.Equal(t, fmt.Sprintf("%064x", 1000), body[64:])
}

func TestEncodeCallDynamicString(t *testing.T) {
	fn := ABIEntry{Name: "setName", Type: "function", Inputs: []ABIParam{
		{Name: "id", Type: "uint256"},
		{Name: "name", Type: "string"},
	}}

	calldata, err := encodeCall(&fn, []any{big.NewInt(1), "hello"})
	require.NoError(t, err)
	body := calldata[10:]

	// head: word 0 is the id, word 1 the tail offset (2 args * 32 = 0x40).
	assert.Equal(t, fmt.Sprintf("%064x", 1), body[:64])
	assert.Equal(t, fmt.Sprintf("%064x", 0x40), body[64:128])

	// tail: length word then right-padded utf-8 bytes.
	assert.Equal(t, fmt.Sprintf("%064x", 5), body[128:192])
	assert.Equal(t, "hello", string(mustHexDecode(t, body[192:202])))
	assert.True(t, strings.HasSuffix(body, strings.Repeat("0", 54)))
}

func TestEncodeCallArgCountMismatch(t *testing.T) {
	fn := ABIEntry{Name: "buyCarNft", Type: "function", Inputs: []ABIParam{{Name: "tokenId", Type: "uint256"}}}
	_, err := encodeCall(&fn, []any{})
	assert.Error(t, err)
}

func TestEncodeWord(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		val     any
		want    string
		wantErr bool
	}{
		{
			"address",
			"address",
			"0x1234567890AbcdEF1234567890aBcdef12345678",
			"0000000000000000000000001234567890abcdef1234567890abcdef12345678",
			false,
		},
		{"uint256 from uint64", "uint256", uint64(42), fmt.Sprintf("%064x", 42), false},
		{"uint256 from int", "uint256", 7, fmt.Sprintf("%064x", 7), false},
		{"bool true", "bool", true, fmt.Sprintf("%064d", 1), false},
		{"bool false", "bool", false, fmt.Sprintf("%064d", 0), false},
		{"short address", "address", "0x12", "", true},
		{"negative", "uint256", big.NewInt(-1), "", true},
		{"wrong go type", "uint256", "42", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeWord(tt.typ, tt.val)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeReturnsUintSlice(t *testing.T) {
	fn := findFunction(MarketplaceABI(), "getAvailableNfts")
	require.NotNil(t, fn)

	// offset 0x20, count 3, elements 1 2 3
	data := "0x" +
		fmt.Sprintf("%064x", 0x20) +
		fmt.Sprintf("%064x", 3) +
		fmt.Sprintf("%064x", 1) +
		fmt.Sprintf("%064x", 2) +
		fmt.Sprintf("%064x", 3)

	out, err := decodeReturns(fn, data)
	require.NoError(t, err)
	require.Len(t, out, 1)

	ids, ok := out[0].([]*big.Int)
	require.True(t, ok)
	require.Len(t, ids, 3)
	for i, id := range ids {
		assert.Equal(t, int64(i+1), id.Int64())
	}
}

func TestDecodeReturnsCarMetadata(t *testing.T) {
	fn := findFunction(MarketplaceABI(), "getCarMetadata")
	require.NotNil(t, fn)

	data := "0x" + encodeCarMetadataResult(t, "Tesla", "Model S", 2023,
		"ipfs://img", big.NewInt(5), "0x00000000000000000000000000000000000000aa", true, "ipfs://meta")

	out, err := decodeReturns(fn, data)
	require.NoError(t, err)
	require.Len(t, out, 8)

	assert.Equal(t, "Tesla", out[0])
	assert.Equal(t, "Model S", out[1])
	assert.Equal(t, int64(2023), out[2].(*big.Int).Int64())
	assert.Equal(t, "ipfs://img", out[3])
	assert.Equal(t, int64(5), out[4].(*big.Int).Int64())
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", out[5])
	assert.Equal(t, true, out[6])
	assert.Equal(t, "ipfs://meta", out[7])
}

func TestDecodeReturnsTooShort(t *testing.T) {
	fn := findFunction(MarketplaceABI(), "owner")
	require.NotNil(t, fn)
	_, err := decodeReturns(fn, "0x1234")
	assert.Error(t, err)
}

// Offset and length words come straight off the wire. Values that wrap
// 64-bit arithmetic must be rejected, not turned into panicking slice
// expressions.
func TestDecodeReturnsHostileWords(t *testing.T) {
	stringFn := &ABIEntry{Name: "tokenURI", Type: "function", Outputs: []ABIParam{{Type: "string"}}}
	sliceFn := &ABIEntry{Name: "ids", Type: "function", Outputs: []ABIParam{{Type: "uint256[]"}}}

	word := func(s string) string {
		return strings.Repeat("0", 64-len(s)) + s
	}

	tests := []struct {
		name string
		fn   *ABIEntry
		data string
	}{
		{
			"offset wraps uint64",
			stringFn,
			"0x" + word("ffffffffffffffe0"),
		},
		{
			"offset exceeds uint64",
			stringFn,
			"0x" + strings.Repeat("f", 64),
		},
		{
			"length wraps uint64",
			stringFn,
			"0x" + word("20") + word("ffffffffffffffff"),
		},
		{
			"count wraps uint64",
			sliceFn,
			"0x" + word("20") + word("800000000000000"),
		},
		{
			"count exceeds payload",
			sliceFn,
			"0x" + word("20") + word("4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := decodeReturns(tt.fn, tt.data)
				assert.Error(t, err)
			})
		})
	}
}

func TestMarketplaceABIComplete(t *testing.T) {
	abi := MarketplaceABI()
	for _, name := range requiredMethods {
		assert.NotNil(t, findFunction(abi, name), name)
	}
	assert.Len(t, Events(abi), 2)
}
