package contract

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ABI encoding for the value shapes the marketplace contract uses:
// address, uintN, bool, string (dynamic) and uint256[] (dynamic, decode
// only). Dynamic values follow the standard head/tail layout.

func keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

func signature(e *ABIEntry) string {
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Type
	}
	return e.Name + "(" + strings.Join(types, ",") + ")"
}

// functionSelector computes the 4-byte selector for a function.
func functionSelector(fn *ABIEntry) string {
	return "0x" + hex.EncodeToString(keccak([]byte(signature(fn)))[:4])
}

// EventTopic computes the topic-0 hash for an event entry.
func EventTopic(e *ABIEntry) string {
	return "0x" + hex.EncodeToString(keccak([]byte(signature(e))))
}

func isDynamic(typ string) bool {
	return typ == "string" || typ == "bytes" || strings.HasSuffix(typ, "[]")
}

// encodeCall builds calldata: 4-byte selector + head/tail encoded args.
func encodeCall(fn *ABIEntry, args []any) (string, error) {
	if len(args) != len(fn.Inputs) {
		return "", fmt.Errorf("%s expects %d args, got %d", fn.Name, len(fn.Inputs), len(args))
	}

	heads := make([]string, len(fn.Inputs))
	var tail strings.Builder
	tailOffset := 32 * len(fn.Inputs)

	for i, param := range fn.Inputs {
		if isDynamic(param.Type) {
			enc, err := encodeDynamic(param.Type, args[i])
			if err != nil {
				return "", fmt.Errorf("encoding param %s: %w", param.Name, err)
			}
			heads[i] = fmt.Sprintf("%064x", tailOffset)
			tail.WriteString(enc)
			tailOffset += len(enc) / 2
			continue
		}
		word, err := encodeWord(param.Type, args[i])
		if err != nil {
			return "", fmt.Errorf("encoding param %s: %w", param.Name, err)
		}
		heads[i] = word
	}

	return functionSelector(fn) + strings.Join(heads, "") + tail.String(), nil
}

// encodeWord encodes a static value as one 32-byte hex word.
func encodeWord(typ string, v any) (string, error) {
	switch {
	case typ == "address":
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("address wants string, got %T", v)
		}
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		if len(s) != 40 {
			return "", fmt.Errorf("bad address length: %q", s)
		}
		return fmt.Sprintf("%064s", strings.ToLower(s)), nil

	case strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int"):
		n, err := toBig(v)
		if err != nil {
			return "", err
		}
		if n.Sign() < 0 {
			return "", fmt.Errorf("negative value for %s", typ)
		}
		return fmt.Sprintf("%064x", n), nil

	case typ == "bool":
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("bool wants bool, got %T", v)
		}
		if b {
			return fmt.Sprintf("%064d", 1), nil
		}
		return fmt.Sprintf("%064d", 0), nil

	default:
		return "", fmt.Errorf("unsupported static type %q", typ)
	}
}

// encodeDynamic encodes a dynamic value as length + right-padded data.
func encodeDynamic(typ string, v any) (string, error) {
	if typ != "string" {
		return "", fmt.Errorf("unsupported dynamic type %q", typ)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("string wants string, got %T", v)
	}
	data := []byte(s)
	padded := len(data)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}
	buf := make([]byte, padded)
	copy(buf, data)
	return fmt.Sprintf("%064x", len(data)) + hex.EncodeToString(buf), nil
}

func toBig(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil *big.Int")
		}
		return n, nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	default:
		return nil, fmt.Errorf("cannot use %T as integer", v)
	}
}

// decodeReturns decodes raw call output into one Go value per ABI output.
func decodeReturns(fn *ABIEntry, hexData string) ([]any, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding hex result: %w", err)
	}
	if len(fn.Outputs) == 0 {
		return nil, nil
	}

	out := make([]any, 0, len(fn.Outputs))
	for i, param := range fn.Outputs {
		start := i * 32
		if start+32 > len(data) {
			return nil, fmt.Errorf("result too short for output %d (%s)", i, param.Type)
		}
		word := data[start : start+32]
		v, err := decodeValue(param.Type, word, data)
		if err != nil {
			return nil, fmt.Errorf("decoding output %d (%s): %w", i, param.Type, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeValue(typ string, word, full []byte) (any, error) {
	switch {
	case typ == "address":
		return "0x" + hex.EncodeToString(word[12:]), nil

	case strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int"):
		if strings.HasSuffix(typ, "[]") {
			return decodeUintSlice(word, full)
		}
		return new(big.Int).SetBytes(word), nil

	case typ == "bool":
		return word[31] == 1, nil

	case typ == "string":
		b, err := decodeDynamicBytes(word, full)
		if err != nil {
			return nil, err
		}
		return string(b), nil

	default:
		return nil, fmt.Errorf("unsupported return type %q", typ)
	}
}

// dynamicHead resolves a head word into the tail position it points at and
// the length word stored there. Both words come straight off the wire, so
// they are range-checked as 256-bit values before any index arithmetic —
// truncating them to uint64 first would let a crafted response wrap the
// bounds checks.
func dynamicHead(word, full []byte) (start, size uint64, err error) {
	off := new(big.Int).SetBytes(word)
	if !off.IsUint64() || off.Uint64() > uint64(len(full)) || uint64(len(full))-off.Uint64() < 32 {
		return 0, 0, fmt.Errorf("dynamic offset %s out of range", off)
	}
	offset := off.Uint64()
	n := new(big.Int).SetBytes(full[offset : offset+32])
	if !n.IsUint64() {
		return 0, 0, fmt.Errorf("dynamic length %s out of range", n)
	}
	return offset + 32, n.Uint64(), nil
}

func decodeDynamicBytes(word, full []byte) ([]byte, error) {
	start, length, err := dynamicHead(word, full)
	if err != nil {
		return nil, err
	}
	if length > uint64(len(full))-start {
		return nil, fmt.Errorf("dynamic length %d out of range", length)
	}
	return full[start : start+length], nil
}

func decodeUintSlice(word, full []byte) ([]*big.Int, error) {
	start, count, err := dynamicHead(word, full)
	if err != nil {
		return nil, err
	}
	if count > (uint64(len(full))-start)/32 {
		return nil, fmt.Errorf("array of %d elements out of range", count)
	}
	out := make([]*big.Int, 0, count)
	for i := uint64(0); i < count; i++ {
		el := full[start+i*32 : start+(i+1)*32]
		out = append(out, new(big.Int).SetBytes(el))
	}
	return out, nil
}
