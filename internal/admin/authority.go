// Package admin decides whether an account may perform privileged
// marketplace operations.
package admin

import (
	"context"
	"strings"
)

// Source records which tier of the policy produced a decision.
type Source int

const (
	// SourceAllowList: the account is on the configured allow-list.
	SourceAllowList Source = iota
	// SourceContractOwner: the account matches the contract's owner().
	SourceContractOwner
	// SourceDenied: neither tier matched (or the owner lookup failed).
	SourceDenied
)

func (s Source) String() string {
	switch s {
	case SourceAllowList:
		return "allow-list"
	case SourceContractOwner:
		return "contract-owner"
	default:
		return "denied"
	}
}

// Decision is the outcome of an authorization check. It is derived state:
// recompute it whenever the account or the binding changes.
type Decision struct {
	Admin  bool
	Source Source
}

// OwnerLookup fetches the contract's privileged address.
// contract.Binding satisfies this.
type OwnerLookup interface {
	Owner(ctx context.Context) (string, error)
}

// Authority is a two-tier policy: a static allow-list checked first, then
// the on-chain owner. Lookup failures fall back to the allow-list result —
// the gate fails closed, never open, and never crashes the caller.
type Authority struct {
	allow map[string]struct{}
	owner OwnerLookup
}

// NewAuthority builds an authority. The allow-list is lowercased once so
// membership checks are O(1).
func NewAuthority(allowList []string, owner OwnerLookup) *Authority {
	allow := make(map[string]struct{}, len(allowList))
	for _, a := range allowList {
		allow[strings.ToLower(a)] = struct{}{}
	}
	return &Authority{allow: allow, owner: owner}
}

// Decide checks whether account may perform privileged operations.
func (a *Authority) Decide(ctx context.Context, account string) Decision {
	if account == "" {
		return Decision{Admin: false, Source: SourceDenied}
	}
	if _, ok := a.allow[strings.ToLower(account)]; ok {
		return Decision{Admin: true, Source: SourceAllowList}
	}

	if a.owner != nil {
		ownerAddr, err := a.owner.Owner(ctx)
		if err == nil && strings.EqualFold(ownerAddr, account) {
			return Decision{Admin: true, Source: SourceContractOwner}
		}
		// err != nil: fall through to denial. Do not propagate — a
		// failing lookup must deny, not grant or crash.
	}

	return Decision{Admin: false, Source: SourceDenied}
}

// IsAdmin is the boolean shortcut over Decide.
func (a *Authority) IsAdmin(ctx context.Context, account string) bool {
	return a.Decide(ctx, account).Admin
}
