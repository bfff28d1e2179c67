package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ignite/outreach-scheduler/internal/domain"
	"github.com/ignite/outreach-scheduler/internal/schedule"
	"github.com/ignite/outreach-scheduler/internal/service/sequence"
)

// Sender dispatches one sequence step to one contact using the sending
// identity at senderIndex. Implemented by mailing.SESSender.
type Sender interface {
	Send(ctx context.Context, contact domain.Contact, step domain.SequenceStep, senderIndex int) error
}

// CapReserver atomically claims one send under a campaign's daily cap
// and returns the pre-increment count. Implemented by DailyCapCounter.
type CapReserver interface {
	Reserve(ctx context.Context, campaignID string, dailyCap int) (reserved bool, sentToday int, err error)
}

// DecisionExporter archives a tick's decisions. Implemented by
// AuditExporter; nil disables export.
type DecisionExporter interface {
	Export(ctx context.Context, decisions []domain.Decision) error
}

// SendSchedulerConfig holds runner configuration.
type SendSchedulerConfig struct {
	Interval   time.Duration
	PageSize   int
	NumWorkers int
}

// DefaultSchedulerConfig returns the defaults the reference deployment
// runs with: one page of 50 contacts per minute, 5-way fan-out.
func DefaultSchedulerConfig() SendSchedulerConfig {
	return SendSchedulerConfig{
		Interval:   time.Minute,
		PageSize:   sequence.DefaultPageSize,
		NumWorkers: 5,
	}
}

// SendScheduler is the batch runner: every tick it pulls a page of
// active enrollments, evaluates each contact with the decision engine,
// and dispatches SEND decisions through the daily cap and the sender.
// Evaluations fan out because the engine has no cross-contact state;
// only the cap counter is shared, and it serializes in Redis.
type SendScheduler struct {
	svc      *sequence.Service
	repo     sequence.Repository
	caps     CapReserver
	sender   Sender
	exporter DecisionExporter

	interval   time.Duration
	pageSize   int
	numWorkers int

	totalSent    int64
	totalSkipped int64
	totalFailed  int64

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewSendScheduler creates a batch runner. exporter may be nil.
func NewSendScheduler(svc *sequence.Service, repo sequence.Repository, caps CapReserver, sender Sender, exporter DecisionExporter, cfg SendSchedulerConfig) *SendScheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = sequence.DefaultPageSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 5
	}

	return &SendScheduler{
		svc:        svc,
		repo:       repo,
		caps:       caps,
		sender:     sender,
		exporter:   exporter,
		interval:   cfg.Interval,
		pageSize:   cfg.PageSize,
		numWorkers: cfg.NumWorkers,
	}
}

// Start begins the tick loop.
func (s *SendScheduler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	log.Printf("[SendScheduler] Starting (interval=%s page_size=%d workers=%d)", s.interval, s.pageSize, s.numWorkers)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.RunOnce(s.ctx); err != nil {
					log.Printf("[SendScheduler] tick error: %v", err)
				}
			}
		}
	}()

	return nil
}

// Stop gracefully stops the runner.
func (s *SendScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	log.Printf("[SendScheduler] Stopped. Total sent: %d, skipped: %d, failed: %d",
		atomic.LoadInt64(&s.totalSent),
		atomic.LoadInt64(&s.totalSkipped),
		atomic.LoadInt64(&s.totalFailed))
}

// RunOnce processes a single page and returns the decisions it made.
// Exposed for the manual /scheduler/tick endpoint and for tests.
func (s *SendScheduler) RunOnce(ctx context.Context) ([]domain.Decision, error) {
	enrollments, err := s.repo.ListActiveEnrollments(ctx, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return nil, nil
	}

	decisions := make([]domain.Decision, len(enrollments))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				decisions[i] = s.process(ctx, enrollments[i])
			}
		}()
	}
	for i := range enrollments {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, decisions); err != nil {
			log.Printf("[SendScheduler] audit export failed: %v", err)
		}
	}

	return decisions, ctx.Err()
}

// process evaluates one enrollment and executes the decision.
func (s *SendScheduler) process(ctx context.Context, e sequence.Enrollment) domain.Decision {
	d := s.svc.Evaluate(ctx, e)

	if d.TimezoneFallback {
		log.Printf("[SendScheduler] contact=%s timezone hint %q unresolved, assumed UTC", e.Contact.ID, e.Contact.TimezoneHint)
	}

	if d.Outcome != domain.OutcomeSend {
		atomic.AddInt64(&s.totalSkipped, 1)
		return d
	}

	reserved, sentToday, err := s.caps.Reserve(ctx, e.Campaign.ID, e.Campaign.DailyCap)
	if err != nil {
		log.Printf("[SendScheduler] cap reservation error campaign=%s: %v", e.Campaign.ID, err)
		atomic.AddInt64(&s.totalFailed, 1)
		return d
	}
	if !reserved {
		// Cap exhausted is an operational throttle, not a scheduling
		// fact; the decision stays SEND in the audit trail and the
		// contact is retried on a later tick.
		log.Printf("[SendScheduler] daily cap reached campaign=%s (cap=%d)", e.Campaign.ID, e.Campaign.DailyCap)
		atomic.AddInt64(&s.totalSkipped, 1)
		return d
	}

	ok, senderIndex := schedule.TryReserve(e.Campaign.SenderPool, sentToday, e.Campaign.DailyCap)
	if !ok {
		atomic.AddInt64(&s.totalSkipped, 1)
		return d
	}

	step := e.Steps[d.StepNumber-1]
	if err := s.sender.Send(ctx, e.Contact, step, senderIndex); err != nil {
		log.Printf("[SendScheduler] send failed contact=%s step=%d: %v", e.Contact.ID, d.StepNumber, err)
		atomic.AddInt64(&s.totalFailed, 1)
		return d
	}

	rec := &domain.ProgressRecord{
		ContactID:  e.Contact.ID,
		StepNumber: d.StepNumber,
		Status:     domain.ProgressSent,
		SenderID:   fmt.Sprintf("sender-%d", senderIndex),
		SentAt:     time.Now().UTC(),
	}
	if err := s.repo.RecordSend(ctx, rec); err != nil {
		// The mail went out but the record didn't land; the next tick
		// would re-send. Surface loudly.
		log.Printf("[SendScheduler] CRITICAL: sent but failed to record contact=%s step=%d: %v", e.Contact.ID, d.StepNumber, err)
	}

	atomic.AddInt64(&s.totalSent, 1)
	return d
}

// Stats returns cumulative counters since Start.
func (s *SendScheduler) Stats() (sent, skipped, failed int64) {
	return atomic.LoadInt64(&s.totalSent),
		atomic.LoadInt64(&s.totalSkipped),
		atomic.LoadInt64(&s.totalFailed)
}
