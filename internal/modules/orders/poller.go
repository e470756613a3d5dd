package orders

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Fetcher fetches one bucket from the external order store.
type Fetcher interface {
	FetchByStatus(ctx context.Context, status Status) ([]Order, error)
}

type PollerState string

const (
	PollerIdle    PollerState = "idle"
	PollerPolling PollerState = "polling"
	PollerStopped PollerState = "stopped"
)

// Poller owns the repeating fetch cycle for the operator board: one
// loading-visible full fetch on Start, then a ticker-driven cycle at a fixed
// interval, self-terminating once the configured lifetime elapses. Start is
// idempotent: re-arming cancels the previous cycle so repeating fetches never
// stack. A generation counter guards against a late fetch result from a
// cancelled cycle touching the registry.
type Poller struct {
	fetch    Fetcher
	reg      *Registry
	log      *slog.Logger
	interval time.Duration
	lifetime time.Duration

	mu      sync.Mutex
	state   PollerState
	cancel  context.CancelFunc
	gen     uint64
	loading bool
	errs    map[Status]string
}

func NewPoller(fetch Fetcher, reg *Registry, interval, lifetime time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		fetch:    fetch,
		reg:      reg,
		log:      log,
		interval: interval,
		lifetime: lifetime,
		state:    PollerIdle,
		errs:     make(map[Status]string),
	}
}

// Start arms the poll cycle. Calling it while already polling cancels the
// running cycle and re-arms both the ticker and the stop timer from zero.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state = PollerPolling
	p.mu.Unlock()

	go p.run(runCtx, gen)
}

// Stop cancels the cycle on view teardown. Only a new Start resumes polling.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = PollerStopped
	p.loading = false
}

func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// LastErrors returns the most recent fetch failure per bucket, cleared on the
// next success for that bucket.
func (p *Poller) LastErrors() map[Status]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[Status]string, len(p.errs))
	for st, msg := range p.errs {
		out[st] = msg
	}
	return out
}

// Refresh performs a loading-visible full fetch of all four buckets. Used
// after a successful status transition, which moves an order between two
// buckets.
func (p *Poller) Refresh(ctx context.Context) {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()

	p.setLoading(gen, true)
	p.fullFetch(ctx, gen)
	p.setLoading(gen, false)
}

func (p *Poller) run(ctx context.Context, gen uint64) {
	// Lifetime is measured from Start, regardless of how many cycles run.
	stop := time.NewTimer(p.lifetime)
	defer stop.Stop()

	p.setLoading(gen, true)
	p.fullFetch(ctx, gen)
	p.setLoading(gen, false)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop.C:
			p.halt(gen)
			return
		case <-ticker.C:
			p.pollCycle(ctx, gen)
		}
	}
}

type fetchResult struct {
	status Status
	orders []Order
	err    error
}

// fetchAll issues the four bucket fetches in parallel and joins them. A slow
// or failing bucket never blocks the other three.
func (p *Poller) fetchAll(ctx context.Context) []fetchResult {
	results := make([]fetchResult, len(AllStatuses))
	var wg sync.WaitGroup
	for i, st := range AllStatuses {
		wg.Add(1)
		go func(i int, st Status) {
			defer wg.Done()
			got, err := p.fetch.FetchByStatus(ctx, st)
			results[i] = fetchResult{status: st, orders: got, err: err}
		}(i, st)
	}
	wg.Wait()
	return results
}

func (p *Poller) fullFetch(ctx context.Context, gen uint64) {
	results := p.fetchAll(ctx)
	if !p.alive(gen) {
		return
	}
	for _, r := range results {
		if r.err != nil {
			p.recordErr(ctx, r.status, r.err)
			continue
		}
		p.clearErr(r.status)
		p.reg.ReplaceBucket(r.status, r.orders)
	}
}

func (p *Poller) pollCycle(ctx context.Context, gen uint64) {
	results := p.fetchAll(ctx)
	if !p.alive(gen) {
		return
	}

	// Loading only flips when at least one bucket actually moved.
	anyChanged := false
	for _, r := range results {
		if r.err == nil && BucketChanged(p.reg.Get(r.status), r.orders) {
			anyChanged = true
			break
		}
	}
	if anyChanged {
		p.setLoading(gen, true)
	}

	for _, r := range results {
		if r.err != nil {
			p.recordErr(ctx, r.status, r.err)
			continue
		}
		p.clearErr(r.status)
		p.reg.ApplyIfChanged(r.status, r.orders)
	}

	// All four buckets are applied before the loading flag clears.
	if anyChanged {
		p.setLoading(gen, false)
	}
}

// halt is the lifetime expiry: polling stops, loading is forced off, and only
// an explicit Start re-arms.
func (p *Poller) halt(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = PollerStopped
	p.loading = false
	p.log.Info("order_polling_stopped", slog.Duration("lifetime", p.lifetime))
}

func (p *Poller) alive(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen == p.gen
}

func (p *Poller) setLoading(gen uint64, v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	p.loading = v
}

func (p *Poller) recordErr(ctx context.Context, st Status, err error) {
	p.mu.Lock()
	p.errs[st] = err.Error()
	p.mu.Unlock()
	p.log.LogAttrs(ctx, slog.LevelWarn, "bucket_fetch_failed",
		slog.String("status", string(st)),
		slog.Any("err", err),
	)
}

func (p *Poller) clearErr(st Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.errs, st)
}
