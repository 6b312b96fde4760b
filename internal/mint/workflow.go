// Package mint drives the admin mint pipeline: asset upload, metadata
// upload, on-chain mint, confirmation, and token-id recovery.
package mint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/motormint/motormint/internal/admin"
	"github.com/motormint/motormint/internal/chain"
	"github.com/motormint/motormint/internal/errkind"
	"github.com/motormint/motormint/internal/pin"
)

// State is the workflow's position in the pipeline.
type State int

const (
	StateIdle State = iota
	StateUploading
	StateMetadataUploading
	StateSubmitting
	StateConfirming
	StateSucceeded
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateUploading:         "uploading asset",
	StateMetadataUploading: "uploading metadata",
	StateSubmitting:        "submitting transaction",
	StateConfirming:        "confirming",
	StateSucceeded:         "succeeded",
	StateFailed:            "failed",
}

func (s State) String() string { return stateNames[s] }

// terminal reports whether a new run may start from s.
func (s State) terminal() bool {
	return s == StateIdle || s == StateSucceeded || s == StateFailed
}

var (
	// ErrBusy is returned when a run is attempted while another is in
	// flight. Runs are never serialized; the caller resubmits from Idle.
	ErrBusy = errors.New("mint already in progress")

	// ErrStale is returned when the connected account changed mid-run.
	// The run's results are discarded rather than applied to the new
	// identity.
	ErrStale = errors.New("session changed during mint")
)

// Failure is a terminal workflow error carrying its taxonomy kind.
type Failure struct {
	Kind   errkind.Kind
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

// Sessioner exposes the connected identity and its liveness epoch.
// wallet.Gateway satisfies this.
type Sessioner interface {
	CurrentAccount() string
	Epoch() uint64
}

// Decider gates privileged operations. admin.Authority satisfies this.
type Decider interface {
	Decide(ctx context.Context, account string) admin.Decision
}

// Uploader is the two-stage upload pipeline. pin.Pinner satisfies this.
type Uploader interface {
	UploadAsset(ctx context.Context, name string, r io.Reader) (string, error)
	UploadMetadata(ctx context.Context, m pin.Metadata) (string, error)
}

// Minter submits and confirms the mint transaction.
// contract.Binding satisfies this.
type Minter interface {
	AdminMint(ctx context.Context, to, carMake, carModel string, year uint64, metadataURI string, priceWei *big.Int) (string, error)
	WaitMined(ctx context.Context, hash string) (*chain.Receipt, error)
}

// Request is one mint attempt. Recipient may be empty to mint to the
// connected account.
type Request struct {
	Recipient   string
	Make        string
	Model       string
	Year        uint64
	Price       string // decimal ether
	Description string
	AssetName   string
	Asset       io.Reader
}

// Result is the outcome of a successful run. TokenID is TokenUnknown when
// no receipt log yielded an identifier.
type Result struct {
	TxHash      string
	TokenID     string
	Block       uint64
	AssetURI    string
	MetadataURI string
}

// Workflow is the mint state machine. One instance per session; a run in
// flight blocks further runs until it reaches a terminal state. No stage
// is retried automatically.
type Workflow struct {
	session   Sessioner
	authority Decider
	uploader  Uploader
	minter    Minter
	extractor *Extractor
	onState   func(State)

	mu      sync.Mutex
	state   State
	running bool
	failure *Failure
	result  *Result
}

// NewWorkflow wires the mint pipeline. onState may be nil; when set it is
// called on every state transition (for progress UIs).
func NewWorkflow(session Sessioner, authority Decider, uploader Uploader, minter Minter, extractor *Extractor, onState func(State)) *Workflow {
	return &Workflow{
		session:   session,
		authority: authority,
		uploader:  uploader,
		minter:    minter,
		extractor: extractor,
		onState:   onState,
		state:     StateIdle,
	}
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastFailure returns the failure of the most recent run, if any.
func (w *Workflow) LastFailure() *Failure {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

// LastResult returns the result of the most recent successful run.
func (w *Workflow) LastResult() *Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Run executes one mint attempt. It returns ErrBusy when a run is already
// in flight, a *Failure on any terminal failure, and ErrStale when the
// account switched mid-run (the run's effects are discarded).
func (w *Workflow) Run(ctx context.Context, req Request) (*Result, error) {
	if !w.claim() {
		return nil, ErrBusy
	}
	defer w.release()

	account := w.session.CurrentAccount()
	epoch := w.session.Epoch()

	// Precondition guards run before any network work and fail the run
	// directly from Idle.
	if decision := w.authority.Decide(ctx, account); !decision.Admin {
		return nil, w.fail(epoch, errkind.PermissionDenied, "only admin accounts can mint")
	}
	if req.Asset == nil || req.AssetName == "" {
		return nil, w.fail(epoch, errkind.ValidationError, "an image file is required")
	}
	priceWei, err := chain.EtherToWei(req.Price)
	if err != nil {
		return nil, w.fail(epoch, errkind.ValidationError, fmt.Sprintf("invalid price %q", req.Price))
	}

	if err := w.transition(epoch, StateUploading); err != nil {
		return nil, err
	}
	assetURI, err := w.uploader.UploadAsset(ctx, req.AssetName, req.Asset)
	if err != nil {
		return nil, w.fail(epoch, errkind.UploadError, err.Error())
	}

	if err := w.transition(epoch, StateMetadataUploading); err != nil {
		return nil, err
	}
	metadataURI, err := w.uploader.UploadMetadata(ctx, buildMetadata(req, assetURI))
	if err != nil {
		return nil, w.fail(epoch, errkind.UploadError, err.Error())
	}

	if err := w.transition(epoch, StateSubmitting); err != nil {
		return nil, err
	}
	hash, err := w.minter.AdminMint(ctx, req.Recipient, req.Make, req.Model, req.Year, metadataURI, priceWei)
	if err != nil {
		return nil, w.fail(epoch, errkind.TransactionRejected, chain.RevertReason(err.Error()))
	}

	if err := w.transition(epoch, StateConfirming); err != nil {
		return nil, err
	}
	receipt, err := w.minter.WaitMined(ctx, hash)
	if err != nil {
		return nil, w.fail(epoch, errkind.BindingError, err.Error())
	}
	if receipt.Status == 0 {
		return nil, w.fail(epoch, errkind.TransactionReverted, "mint transaction reverted")
	}

	// Identifier extraction never fails the run: the mint is confirmed
	// even when no log yields an id.
	result := &Result{
		TxHash:      hash,
		TokenID:     w.extractor.TokenID(receipt.Logs),
		Block:       receipt.BlockNumber,
		AssetURI:    assetURI,
		MetadataURI: metadataURI,
	}
	if err := w.succeed(epoch, result); err != nil {
		return nil, err
	}
	return result, nil
}

// claim occupies the machine for one run, in the same critical section as
// the terminal check. The state itself only leaves Idle at the first
// transition, after the precondition guards, so the busy signal lives in a
// flag held for the whole run.
func (w *Workflow) claim() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || !w.state.terminal() {
		return false
	}
	w.running = true
	w.failure = nil
	w.result = nil
	return true
}

func (w *Workflow) release() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

func buildMetadata(req Request, assetURI string) pin.Metadata {
	return pin.Metadata{
		Name:        fmt.Sprintf("%s %s", req.Make, req.Model),
		Description: req.Description,
		Image:       assetURI,
		Attributes: []pin.Attribute{
			{TraitType: "make", Value: req.Make},
			{TraitType: "model", Value: req.Model},
			{TraitType: "year", Value: fmt.Sprintf("%d", req.Year)},
		},
	}
}

// transition advances the state machine, unless the session epoch moved —
// then the run is stale and the machine resets to Idle without recording
// anything for the new identity.
func (w *Workflow) transition(epoch uint64, next State) error {
	if w.session.Epoch() != epoch {
		w.reset()
		return ErrStale
	}
	w.mu.Lock()
	w.state = next
	w.mu.Unlock()
	w.notify(next)
	return nil
}

func (w *Workflow) fail(epoch uint64, kind errkind.Kind, reason string) error {
	if w.session.Epoch() != epoch {
		w.reset()
		return ErrStale
	}
	f := &Failure{Kind: kind, Reason: reason}
	w.mu.Lock()
	w.state = StateFailed
	w.failure = f
	w.mu.Unlock()
	w.notify(StateFailed)
	return f
}

func (w *Workflow) succeed(epoch uint64, result *Result) error {
	if w.session.Epoch() != epoch {
		w.reset()
		return ErrStale
	}
	w.mu.Lock()
	w.state = StateSucceeded
	w.result = result
	w.mu.Unlock()
	w.notify(StateSucceeded)
	return nil
}

func (w *Workflow) reset() {
	w.mu.Lock()
	w.state = StateIdle
	w.failure = nil
	w.result = nil
	w.mu.Unlock()
	w.notify(StateIdle)
}

func (w *Workflow) notify(s State) {
	if w.onState != nil {
		w.onState(s)
	}
}
