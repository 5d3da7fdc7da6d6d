package underwriting

import (
	"strings"
	"sync"
	"testing"
)

func TestNewDecisionIDFormat(t *testing.T) {
	id := NewDecisionID()

	if !strings.HasPrefix(id, "DEC-") {
		t.Errorf("NewDecisionID() = %s, want DEC- prefix", id)
	}
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		t.Fatalf("NewDecisionID() = %s, want DEC-<timestamp>-<suffix>", id)
	}
	if len(parts[1]) != 17 {
		t.Errorf("timestamp segment %q has length %d, want 17", parts[1], len(parts[1]))
	}
	if parts[2] == "" {
		t.Error("random suffix is empty")
	}
}

func TestNewDecisionIDUnique(t *testing.T) {
	const n = 200

	var mu sync.Mutex
	seen := make(map[string]bool, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewDecisionID()
			mu.Lock()
			defer mu.Unlock()
			if seen[id] {
				t.Errorf("duplicate decision ID %s", id)
			}
			seen[id] = true
		}()
	}
	wg.Wait()
}
