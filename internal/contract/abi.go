package contract

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingMethod is returned when a bound ABI lacks a method this client
// depends on. The marketplace schema is contract-defined; a mismatch must
// fail loudly instead of degrading into half-working calls.
var ErrMissingMethod = errors.New("method missing from contract ABI")

// ABIEntry is one ABI entry (function, event, etc.).
type ABIEntry struct {
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs"`
	StateMutability string     `json:"stateMutability"`
}

// ABIParam is a parameter in an ABI entry.
type ABIParam struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed"`
}

// IsReadFunction returns true if the function is read-only (view/pure).
func (e ABIEntry) IsReadFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "view" || e.StateMutability == "pure")
}

// IsWriteFunction returns true if the function modifies state.
func (e ABIEntry) IsWriteFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "nonpayable" || e.StateMutability == "payable")
}

// ParseABI parses raw ABI JSON into entries.
func ParseABI(data []byte) ([]ABIEntry, error) {
	var entries []ABIEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing ABI: %w", err)
	}
	return entries, nil
}

func findFunction(abi []ABIEntry, name string) *ABIEntry {
	for i := range abi {
		if abi[i].Type == "function" && abi[i].Name == name {
			return &abi[i]
		}
	}
	return nil
}

// Events returns all event entries in the ABI.
func Events(abi []ABIEntry) []ABIEntry {
	var out []ABIEntry
	for _, e := range abi {
		if e.Type == "event" {
			out = append(out, e)
		}
	}
	return out
}
