package id

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTypedIDPrefixes(t *testing.T) {
	deskID := NewDesktopID()
	reqID := NewRequestID()

	if !strings.HasPrefix(deskID.String(), "desk_") {
		t.Errorf("DesktopID should start with 'desk_', got: %s", deskID)
	}
	if !strings.HasPrefix(reqID.String(), "req_") {
		t.Errorf("RequestID should start with 'req_', got: %s", reqID)
	}
	if len(deskID) != len("desk_")+26 {
		t.Errorf("DesktopID should carry a 26 character ULID, got: %s", deskID)
	}
}

func TestSameMillisecondIsOrdered(t *testing.T) {
	gen := NewGenerator(bytes.NewReader(bytes.Repeat([]byte{0x42}, 4096)))
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	gen.now = func() time.Time { return fixed }

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = gen.Next(DesktopPrefix)
	}

	if !sort.StringsAreSorted(ids) {
		t.Fatal("ids from one millisecond should sort in creation order")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			t.Fatalf("duplicate id at %d: %s", i, ids[i])
		}
	}
}

func TestParseDesktopID(t *testing.T) {
	valid := NewDesktopID()
	got, err := ParseDesktopID(valid.String())
	if err != nil {
		t.Fatalf("valid desktop id rejected: %v", err)
	}
	if got != valid {
		t.Errorf("got %s, want %s", got, valid)
	}

	tests := []struct {
		name   string
		input  string
		prefix bool
	}{
		{"empty", "", true},
		{"request id", NewRequestID().String(), true},
		{"bare ulid", strings.TrimPrefix(valid.String(), "desk_"), true},
		{"bad ulid", "desk_not-a-ulid", false},
		{"overflowing ulid", "desk_zzzzzzzzzzzzzzzzzzzzzzzzzz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDesktopID(tt.input)
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if tt.prefix != errors.Is(err, ErrWrongPrefix) {
				t.Errorf("ErrWrongPrefix = %v, want %v (%v)", !tt.prefix, tt.prefix, err)
			}
		})
	}
}

func TestCreatedAt(t *testing.T) {
	before := time.Now().Add(-time.Millisecond)
	deskID := NewDesktopID()
	after := time.Now().Add(time.Millisecond)

	created, err := deskID.CreatedAt()
	if err != nil {
		t.Fatalf("CreatedAt failed: %v", err)
	}
	if created.Before(before) || created.After(after) {
		t.Errorf("created %v outside [%v, %v]", created, before, after)
	}

	if _, err := DesktopID("bogus").CreatedAt(); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	const goroutines = 8
	const perG = 200

	var mu sync.Mutex
	seen := make(map[DesktopID]bool, goroutines*perG)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				deskID := NewDesktopID()
				mu.Lock()
				if seen[deskID] {
					t.Errorf("duplicate id: %s", deskID)
				}
				seen[deskID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perG {
		t.Errorf("got %d ids, want %d", len(seen), goroutines*perG)
	}
}
