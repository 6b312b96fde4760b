// Package errkind enumerates the failure categories surfaced to users.
// Workflows attach a Kind to every terminal failure so the CLI can pick
// the right message without string-matching wrapped errors.
package errkind

// Kind is a failure category.
type Kind int

const (
	None Kind = iota
	ProviderUnavailable
	UserRejected
	InvalidAddress
	BindingError
	PermissionDenied
	ValidationError
	UploadError
	TransactionRejected
	TransactionReverted
	InsufficientValue
	// UnknownIdentifier is non-fatal: the mint itself succeeded but the
	// token id could not be recovered from the receipt logs.
	UnknownIdentifier
)

var names = map[Kind]string{
	None:                "none",
	ProviderUnavailable: "provider unavailable",
	UserRejected:        "user rejected",
	InvalidAddress:      "invalid address",
	BindingError:        "binding error",
	PermissionDenied:    "permission denied",
	ValidationError:     "validation error",
	UploadError:         "upload error",
	TransactionRejected: "transaction rejected",
	TransactionReverted: "transaction reverted",
	InsufficientValue:   "insufficient value",
	UnknownIdentifier:   "unknown identifier",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Fatal reports whether the kind ends a workflow in Failed.
// UnknownIdentifier is recorded but never fails the run.
func (k Kind) Fatal() bool {
	return k != None && k != UnknownIdentifier
}
