package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestRunConvertsOnCreateAndDebounces(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var calls int
	done := make(chan struct{})

	convert := func(path string) error {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(done)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := Run(ctx, []string{dir}, 20*time.Millisecond, convert); err != nil {
			t.Errorf("Run: %v", err)
		}
	}()

	// Give the watcher time to register dir before writing.
	time.Sleep(50 * time.Millisecond)
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("convert was not called within timeout")
	}

	cancel()
	wg.Wait()
}

func TestPathLockerSerializesSamePath(t *testing.T) {
	pl := newPathLocker()
	path := "/tmp/x.pdf"

	pl.Lock(path)
	unlocked := make(chan struct{})
	go func() {
		pl.Lock(path)
		close(unlocked)
		pl.Unlock(path)
	}()

	select {
	case <-unlocked:
		t.Fatal("second Lock returned before first Unlock")
	case <-time.After(50 * time.Millisecond):
	}

	pl.Unlock(path)
	select {
	case <-unlocked:
	case <-time.After(time.Second):
		t.Fatal("second Lock never acquired after Unlock")
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	var mu sync.Mutex
	var fires int
	d := newDebouncer(30*time.Millisecond, func(string) {
		mu.Lock()
		fires++
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		d.trigger("a.pdf")
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fires != 1 {
		t.Fatalf("fires = %d, want 1", fires)
	}
}
