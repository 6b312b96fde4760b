package mint

import (
	"math/big"
	"strings"

	"github.com/motormint/motormint/internal/chain"
	"github.com/motormint/motormint/internal/contract"
)

// TokenUnknown is the sentinel identifier used when no receipt log yields
// a token id. The mint itself still succeeded.
const TokenUnknown = "unknown"

// idFieldNames are the historically-used names for the identifier
// argument, tried in this fixed priority order.
var idFieldNames = []string{"tokenId", "_tokenId", "id", "_id", "tokenID"}

// mintEventNames are the event shapes that can carry the new token id.
var mintEventNames = []string{"CarNFTMinted", "Transfer"}

// rule binds one event shape to its extraction strategy.
type rule struct {
	topic          string
	event          contract.ABIEntry
	transferShaped bool // 3 indexed args: fall back to the third positional
}

// Extractor recovers a freshly minted token id from receipt logs. The
// ambiguity in the contract's event vocabulary is explicit here: a fixed
// table of shapes, each tried against a fixed list of field names, instead
// of nested trial-and-error at the call site. Extraction is deterministic:
// the same logs always yield the same id or the same sentinel.
type Extractor struct {
	rules []rule
}

// NewExtractor builds extraction rules from the bound ABI's events.
func NewExtractor(abi []contract.ABIEntry) *Extractor {
	var rules []rule
	for _, ev := range contract.Events(abi) {
		if !nameMatches(ev.Name) {
			continue
		}
		indexed := 0
		for _, in := range ev.Inputs {
			if in.Indexed {
				indexed++
			}
		}
		rules = append(rules, rule{
			topic:          strings.ToLower(contract.EventTopic(&ev)),
			event:          ev,
			transferShaped: indexed == 3,
		})
	}
	return &Extractor{rules: rules}
}

func nameMatches(name string) bool {
	for _, n := range mintEventNames {
		if n == name {
			return true
		}
	}
	return false
}

// TokenID scans logs in emission order and returns the first recoverable
// identifier, or TokenUnknown.
func (e *Extractor) TokenID(logs []chain.Log) string {
	for _, lg := range logs {
		if len(lg.Topics) == 0 {
			continue
		}
		topic0 := strings.ToLower(lg.Topics[0])
		for _, r := range e.rules {
			if r.topic != topic0 {
				continue
			}
			if id, ok := extractByName(r.event, lg); ok {
				return id
			}
			// Transfer-shaped events carry the id as the third
			// positional (indexed) argument.
			if r.transferShaped && len(lg.Topics) >= 4 {
				if id, ok := topicUint(lg.Topics[3]); ok {
					return id
				}
			}
		}
	}
	return TokenUnknown
}

// extractByName tries each known identifier field name against the event's
// declared inputs.
func extractByName(ev contract.ABIEntry, lg chain.Log) (string, bool) {
	for _, name := range idFieldNames {
		idx := -1
		for i, in := range ev.Inputs {
			if in.Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		in := ev.Inputs[idx]
		if !strings.HasPrefix(in.Type, "uint") {
			continue
		}

		if in.Indexed {
			// Topic position: 1 + number of indexed inputs before it.
			pos := 1
			for _, prev := range ev.Inputs[:idx] {
				if prev.Indexed {
					pos++
				}
			}
			if pos < len(lg.Topics) {
				if id, ok := topicUint(lg.Topics[pos]); ok {
					return id, true
				}
			}
			continue
		}

		// Data word position among the non-indexed inputs.
		pos := 0
		for _, prev := range ev.Inputs[:idx] {
			if !prev.Indexed {
				pos++
			}
		}
		if id, ok := dataWordUint(lg.Data, pos); ok {
			return id, true
		}
	}
	return "", false
}

func topicUint(topic string) (string, bool) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(topic, "0x"), 16)
	if !ok {
		return "", false
	}
	return n.String(), true
}

func dataWordUint(data string, word int) (string, bool) {
	hexData := strings.TrimPrefix(data, "0x")
	start := word * 64
	if start+64 > len(hexData) {
		return "", false
	}
	n, ok := new(big.Int).SetString(hexData[start:start+64], 16)
	if !ok {
		return "", false
	}
	return n.String(), true
}
