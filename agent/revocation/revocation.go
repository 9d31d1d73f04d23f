// Package revocation publishes the locally revoked credentials to the ledger
// in batches. Issuers revoke with publish=false and the Publisher takes the
// collected deltas of each registry and writes them to the ledger on its
// schedule.
package revocation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/issuecredential/issuer"
	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const defaultInterval = 5 * time.Minute

type Config struct {
	// Interval between the publications, default is five minutes.
	Interval time.Duration

	// Timeout of one publication round, zero means no timeout.
	Timeout time.Duration
}

type Publisher struct {
	cfg    Config
	ac     core.Issuer
	ledger core.LedgerWriter
	cron   *gocron.Scheduler

	mu sync.Mutex

	// pending maps the registry to its generation which Add increments.
	pending map[string]uint64
}

func New(cfg Config, ac core.Issuer, ledger core.LedgerWriter) *Publisher {
	if cfg.Interval == 0 {
		cfg.Interval = defaultInterval
	}
	return &Publisher{
		cfg:     cfg,
		ac:      ac,
		ledger:  ledger,
		cron:    gocron.NewScheduler(time.Now().Location()),
		pending: make(map[string]uint64),
	}
}

// Revoke revokes the issued credential locally and queues its registry for
// the next publication.
func (p *Publisher) Revoke(ctx context.Context, sm *issuer.SM) (err error) {
	defer err2.Handle(&err, "revocation")

	try.To(sm.Revoke(ctx, p.ac, p.ledger, false))
	p.Add(try.To1(sm.RevRegID()))
	return nil
}

// Add queues the registry which has local revocations.
func (p *Publisher) Add(revRegID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending[revRegID]++
}

// Pending returns the registries waiting for the publication.
func (p *Publisher) Pending() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]string, 0, len(p.pending))
	for id := range p.pending {
		ids = append(ids, id)
	}
	return ids
}

// Publish publishes the deltas of all of the queued registries. A registry
// whose publication fails stays in the queue, and so does a registry which
// was queued again while its delta was published.
func (p *Publisher) Publish(ctx context.Context) error {
	var errs []error
	for revRegID, gen := range p.snapshot() {
		if err := p.publish(ctx, revRegID); err != nil {
			glog.Errorf("publish %s: %v", revRegID, err)
			errs = append(errs, err)
			continue
		}
		p.mu.Lock()
		if p.pending[revRegID] == gen {
			delete(p.pending, revRegID)
		}
		p.mu.Unlock()
	}
	return errors.Join(errs...)
}

func (p *Publisher) snapshot() map[string]uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	gens := make(map[string]uint64, len(p.pending))
	for id, gen := range p.pending {
		gens[id] = gen
	}
	return gens
}

func (p *Publisher) publish(ctx context.Context, revRegID string) (err error) {
	defer err2.Handle(&err, "publish %s", revRegID)

	delta := try.To1(p.ac.IssuerTakeLocalRevocations(ctx, revRegID))
	try.To(p.ledger.PublishRevRegDelta(ctx, revRegID, delta))
	glog.V(1).Infoln("revocations published for", revRegID)
	return nil
}

func (p *Publisher) round() {
	ctx := context.Background()
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}
	_ = p.Publish(ctx)
}

// Start schedules the publications.
func (p *Publisher) Start() (err error) {
	defer err2.Handle(&err, "revocation publisher start")

	glog.V(1).Infoln("revocation publish interval:", p.cfg.Interval)
	_ = try.To1(p.cron.Every(p.cfg.Interval).Do(p.round))
	p.cron.StartAsync()
	return nil
}

// Stop stops the schedule and publishes what is still pending.
func (p *Publisher) Stop(ctx context.Context) error {
	p.cron.Stop()
	return p.Publish(ctx)
}
