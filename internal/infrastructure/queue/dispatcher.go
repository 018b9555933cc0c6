package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/ports"
	"github.com/rpdbs/research-databank/internal/pkg/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// AuditDispatcher writes audit entries asynchronously through a fixed set of
// workers. Entries are sharded by username so one actor's entries are written
// in order. Record never blocks: when a worker channel is full the entry is
// dropped and counted.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers workers, each with a
// buffer of bufferSize entries. Non-positive values select the defaults.
func NewAuditDispatcher(numWorkers, bufferSize int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if bufferSize <= 0 {
		bufferSize = channelBuffer
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, bufferSize)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Close has been
// called and their channel is drained.
func (d *AuditDispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Record enqueues an entry for its actor's worker.
func (d *AuditDispatcher) Record(entry domain.AuditEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Str("username", entry.Username).Str("action", string(entry.Action)).Msg("audit dispatcher closed, entry dropped")
		return
	}

	idx := d.shardIndex(entry.Username)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditEnqueuedTotal.Inc()
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Error().
			Str("username", entry.Username).
			Str("action", string(entry.Action)).
			Str("project_title", entry.ProjectTitle).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// Close stops accepting entries and waits until queued entries are written
// or ctx expires.
func (d *AuditDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for entry := range ch {
		metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		d.write(id, entry)
	}
}

func (d *AuditDispatcher) write(id int, entry domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.Insert(ctx, &entry)
	metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AuditWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("username", entry.Username).
			Str("action", string(entry.Action)).
			Str("project_title", entry.ProjectTitle).
			Int("worker_id", id).
			Msg("audit write failed")
	}
}
