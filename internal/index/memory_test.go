package index

import (
	"sync"
	"testing"

	"github.com/MrSnakeDoc/linkhub/internal/directory"
	"github.com/MrSnakeDoc/linkhub/internal/domain"
)

func mustDirectory(t *testing.T, links ...domain.Link) *directory.Directory {
	t.Helper()
	d, err := directory.New(links)
	if err != nil {
		t.Fatalf("directory.New() error = %v", err)
	}
	return d
}

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if index.Directory() != nil {
		t.Error("NewMemoryIndex() should start without a directory")
	}
	if index.Count() != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %v", index.Count())
	}
	if !index.GetLastReload().IsZero() {
		t.Error("NewMemoryIndex() should never have been reloaded")
	}
}

func TestUpdate(t *testing.T) {
	index := NewMemoryIndex()

	d := mustDirectory(t,
		domain.Link{ID: "1", Title: "GST Portal", URL: "https://www.gst.gov.in"},
		domain.Link{ID: "3", Title: "UIDAI (Aadhaar)", URL: "https://uidai.gov.in"},
	)
	index.Update(d, "builtin")

	if index.Count() != 2 {
		t.Errorf("Update() stored %v links, want 2", index.Count())
	}
	if index.Directory() != d {
		t.Error("Directory() should return the stored snapshot")
	}
	if index.Source() != "builtin" {
		t.Errorf("Source() = %q, want builtin", index.Source())
	}
	if index.GetLastReload().IsZero() {
		t.Error("Update() should record the reload time")
	}
}

func TestUpdateOverwritesButKeepsCounters(t *testing.T) {
	index := NewMemoryIndex()

	index.Update(mustDirectory(t, domain.Link{ID: "1", Title: "a", URL: "https://a.gov.in"}), "a.yaml")
	index.IncrementCounter("1")

	index.Update(mustDirectory(t,
		domain.Link{ID: "1", Title: "a", URL: "https://a.gov.in"},
		domain.Link{ID: "2", Title: "b", URL: "https://b.gov.in"},
	), "b.yaml")

	if index.Count() != 2 {
		t.Errorf("Update() should overwrite, got %v links want 2", index.Count())
	}
	if index.Counter("1") != 1 {
		t.Errorf("counters should survive reloads, got %v", index.Counter("1"))
	}
}

func TestIncrementCounter(t *testing.T) {
	index := NewMemoryIndex()

	if got := index.IncrementCounter("1"); got != 1 {
		t.Errorf("IncrementCounter() = %v, want 1", got)
	}
	if got := index.IncrementCounter("1"); got != 2 {
		t.Errorf("IncrementCounter() = %v, want 2", got)
	}
	if index.Counter("2") != 0 {
		t.Errorf("Counter() of unknown link = %v, want 0", index.Counter("2"))
	}
}

func TestSetCounters(t *testing.T) {
	index := NewMemoryIndex()
	index.IncrementCounter("1")
	index.IncrementCounter("1")
	index.IncrementCounter("1")

	index.SetCounters(map[string]int64{"1": 2, "2": 7})

	if index.Counter("1") != 3 {
		t.Errorf("SetCounters() should keep the larger value, got %v", index.Counter("1"))
	}
	if index.Counter("2") != 7 {
		t.Errorf("SetCounters() counter = %v, want 7", index.Counter("2"))
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	d := mustDirectory(t, domain.Link{ID: "1", Title: "a", URL: "https://a.gov.in"})
	index.Update(d, "builtin")

	var wg sync.WaitGroup

	// Concurrent reads and swaps
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if dir := index.Directory(); dir != nil {
				_ = dir.Filter("a", domain.CategoryAll)
			}
		}()
		go func() {
			defer wg.Done()
			index.Update(d, "builtin")
		}()
	}

	// Concurrent counter increments
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			index.IncrementCounter("1")
		}()
	}

	wg.Wait()

	if index.Counter("1") != 100 {
		t.Errorf("Concurrent IncrementCounter() counter = %v, want 100", index.Counter("1"))
	}
}
