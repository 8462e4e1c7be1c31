package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRequestRebuildCoalesces(t *testing.T) {
	trigger := make(chan struct{}, 1)
	for i := 0; i < 5; i++ {
		requestRebuild(trigger)
	}
	if len(trigger) != 1 {
		t.Fatalf("expected exactly one queued request, got %d", len(trigger))
	}
}

func TestRunBuildsExecutesQueuedRequests(t *testing.T) {
	var mu sync.Mutex
	builds := 0
	release := make(chan struct{})

	w := &Watcher{build: func(ctx context.Context) error {
		mu.Lock()
		builds++
		mu.Unlock()
		<-release
		return nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trigger := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.runBuilds(ctx, trigger)
	}()

	requestRebuild(trigger)
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return builds == 1
	})

	// Requests arriving mid-build collapse into one follow-up.
	for i := 0; i < 3; i++ {
		requestRebuild(trigger)
	}
	release <- struct{}{}
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return builds == 2
	})
	release <- struct{}{}

	waitFor(t, func() bool { return len(trigger) == 0 })
	mu.Lock()
	got := builds
	mu.Unlock()
	if got != 2 {
		t.Fatalf("expected 2 builds, got %d", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after cancellation")
	}
}

func TestRunBuildsStopsOnCancel(t *testing.T) {
	w := &Watcher{build: func(ctx context.Context) error { return nil }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.runBuilds(ctx, make(chan struct{}, 1))
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit for cancelled context")
	}
}

func TestRelevantEventFiltersNoise(t *testing.T) {
	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "content/post.md", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "content/new.md", Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: "content/old.md", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "content/post.md", Op: fsnotify.Chmod}, false},
		{"backup file", fsnotify.Event{Name: "content/post.md~", Op: fsnotify.Write}, false},
		{"vim swap", fsnotify.Event{Name: "content/.post.md.swp", Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: "content/post.tmp", Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		if got := relevantEvent(tc.event); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
