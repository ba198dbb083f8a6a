package dashboard

import (
	"context"
	"sync"

	"github.com/lumenfoto/studio-backend/internal/contracts"
	"github.com/lumenfoto/studio-backend/pkg/auth"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/metrics"
	"github.com/lumenfoto/studio-backend/pkg/money"
)

// ContractLister is the retrieval dependency of a View.
type ContractLister interface {
	ListForClient(ctx context.Context, email string) ([]contracts.Contract, error)
}

// Entry is one dashboard row: the contract plus its derived display values.
type Entry struct {
	Contract  contracts.Contract `json:"contract"`
	Status    contracts.Status   `json:"status"`
	Deposit   money.Cents        `json:"deposit_cents"`
	Remainder money.Cents        `json:"remainder_cents"`
}

// Snapshot is a point-in-time copy of the view state.
type Snapshot struct {
	Contracts  []Entry `json:"contracts"`
	Loading    bool    `json:"loading"`
	Empty      bool    `json:"empty"`
	Generation uint64  `json:"generation"`
}

// View holds the contract list of one client dashboard. Each Load issues a new
// generation; a result is applied only while its generation is still the latest,
// so an older load finishing late never overwrites a newer one.
type View struct {
	lister  ContractLister
	logg    *logger.Logger
	metrics *metrics.RetrievalMetrics

	mu         sync.Mutex
	generation uint64
	loading    bool
	entries    []Entry
}

// NewView builds an empty view. logg and m may be nil.
func NewView(lister ContractLister, logg *logger.Logger, m *metrics.RetrievalMetrics) *View {
	if logg == nil {
		logg = logger.Nop()
	}
	return &View{lister: lister, logg: logg, metrics: m, entries: []Entry{}}
}

// Load fetches the identity's contracts and applies them if no newer load was
// issued meanwhile. Retrieval failures are logged and leave the list empty; the
// caller cannot tell them apart from a client with no contracts.
func (v *View) Load(ctx context.Context, identity auth.Identity) Snapshot {
	gen := v.begin()

	items, err := v.lister.ListForClient(ctx, identity.Email)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		v.metrics.IncStale()
		v.logg.Debug(v.logg.WithField(ctx, "generation", gen), "dropping superseded contract load")
		return v.snapshotLocked()
	}

	v.loading = false
	if err != nil {
		failCtx := v.logg.WithFields(ctx, map[string]any{
			"client_email": identity.Email,
			"generation":   gen,
		})
		v.logg.Error(failCtx, "contract retrieval failed; showing empty list", err)
		v.metrics.IncFailure()
		v.entries = []Entry{}
		return v.snapshotLocked()
	}

	v.metrics.IncSuccess()
	v.entries = buildEntries(ctx, v.logg, items)
	return v.snapshotLocked()
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	v.loading = true
	return v.generation
}

func (v *View) snapshotLocked() Snapshot {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return Snapshot{
		Contracts:  out,
		Loading:    v.loading,
		Empty:      !v.loading && len(out) == 0,
		Generation: v.generation,
	}
}

func buildEntries(ctx context.Context, logg *logger.Logger, items []contracts.Contract) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, c := range items {
		deposit, remainder, err := money.SplitDeposit(c.TotalAmount)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "contract_id", c.ID.String()), "skipping contract with invalid total")
			continue
		}
		entries = append(entries, Entry{
			Contract:  c,
			Status:    contracts.Resolve(c),
			Deposit:   deposit,
			Remainder: remainder,
		})
	}
	return entries
}
