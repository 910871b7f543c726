package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yearworm/backend/internal/core/ports"
)

type stubResolver struct {
	mu    sync.Mutex
	urls  map[string]string
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, title, artist string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.urls[title+"|"+artist], nil
}

func (s *stubResolver) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func waitForLookup(t *testing.T, p *Prefetcher, title, artist string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if url, ok := p.Lookup(title, artist); ok {
			return url
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("preview for %q by %q never resolved", title, artist)
	return ""
}

func TestPrefetcherResolvesAndCaches(t *testing.T) {
	resolver := &stubResolver{urls: map[string]string{
		"Hey Jude|The Beatles": "https://audio.example/hey-jude.m4a",
	}}
	p := NewPrefetcher(resolver, 4)
	p.Start(2)
	defer p.Stop()

	p.Submit(Job{Title: "Hey Jude", Artist: "The Beatles"})

	url := waitForLookup(t, p, "Hey Jude", "The Beatles")
	if url != "https://audio.example/hey-jude.m4a" {
		t.Fatalf("url: got %q", url)
	}
}

func TestPrefetcherLookupIsCaseInsensitive(t *testing.T) {
	resolver := &stubResolver{urls: map[string]string{
		"Hey Jude|The Beatles": "u",
	}}
	p := NewPrefetcher(resolver, 4)
	p.Start(1)
	defer p.Stop()

	p.Submit(Job{Title: "Hey Jude", Artist: "The Beatles"})
	waitForLookup(t, p, "Hey Jude", "The Beatles")

	if _, ok := p.Lookup("hey jude", "the beatles"); !ok {
		t.Fatal("lowercase lookup missed the cache")
	}
}

func TestPrefetcherSkipsAlreadyCached(t *testing.T) {
	resolver := &stubResolver{urls: map[string]string{
		"Hey Jude|The Beatles": "u",
	}}
	p := NewPrefetcher(resolver, 4)
	p.Start(1)

	p.Submit(Job{Title: "Hey Jude", Artist: "The Beatles"})
	waitForLookup(t, p, "Hey Jude", "The Beatles")

	p.Submit(Job{Title: "Hey Jude", Artist: "The Beatles"})
	p.Stop()

	if got := resolver.callCount(); got != 1 {
		t.Fatalf("resolver calls: got %d, want 1", got)
	}
}

func TestPrefetcherNotFoundLeavesCacheEmpty(t *testing.T) {
	resolver := &stubResolver{err: ports.ErrPreviewNotFound}
	p := NewPrefetcher(resolver, 4)
	p.Start(1)

	p.Submit(Job{Title: "Unknown", Artist: "Nobody"})
	p.Stop()

	if _, ok := p.Lookup("Unknown", "Nobody"); ok {
		t.Fatal("failed resolution was cached")
	}
}

func TestPrefetcherFullQueueDropsJob(t *testing.T) {
	resolver := &stubResolver{err: errors.New("unused")}
	p := NewPrefetcher(resolver, 1)
	// Workers not started, so the queue fills after one job.

	p.Submit(Job{Title: "A", Artist: "X"})
	p.Submit(Job{Title: "B", Artist: "Y"})

	if len(p.jobs) != 1 {
		t.Fatalf("queue length: got %d, want 1", len(p.jobs))
	}
}
