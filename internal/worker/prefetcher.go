// Package worker provides background processing for preview-resolution jobs.
package worker

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/yearworm/backend/internal/core/ports"
)

// resolveTimeout bounds one background resolution, which may span several
// upstream search calls.
const resolveTimeout = time.Minute

// Job represents a background preview-resolution task.
type Job struct {
	Title  string
	Artist string
}

// Prefetcher resolves preview URLs ahead of gameplay so the first round
// of the day is not blocked on upstream searches. Resolved URLs are kept
// in memory and served through the cache port.
type Prefetcher struct {
	resolver ports.PreviewResolver
	jobs     chan Job
	wg       sync.WaitGroup

	mu    sync.RWMutex
	cache map[string]string
}

var _ ports.PreviewCache = (*Prefetcher)(nil)

// NewPrefetcher creates a prefetcher with the given queue size.
func NewPrefetcher(resolver ports.PreviewResolver, queueSize int) *Prefetcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Prefetcher{
		resolver: resolver,
		jobs:     make(chan Job, queueSize),
		cache:    map[string]string{},
	}
}

// Start launches the worker goroutines.
func (p *Prefetcher) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.process(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Prefetcher) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. A full queue drops the job; the
// resolver will run inline at game time instead.
func (p *Prefetcher) Submit(job Job) {
	if _, ok := p.Lookup(job.Title, job.Artist); ok {
		return
	}
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping prefetch for %q by %q", job.Title, job.Artist)
	}
}

// Lookup returns a previously resolved preview URL.
func (p *Prefetcher) Lookup(title, artist string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	url, ok := p.cache[cacheKey(title, artist)]
	return url, ok
}

func (p *Prefetcher) process(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	url, err := p.resolver.Resolve(ctx, job.Title, job.Artist)
	if err != nil {
		if !errors.Is(err, ports.ErrPreviewNotFound) {
			log.Printf("WARN worker: prefetch %q by %q: %v", job.Title, job.Artist, err)
		}
		return
	}

	p.mu.Lock()
	p.cache[cacheKey(job.Title, job.Artist)] = url
	p.mu.Unlock()
}

func cacheKey(title, artist string) string {
	return strings.ToLower(title) + "|" + strings.ToLower(artist)
}
