package revalidate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
)

type recordingSignal struct {
	calls [][]string
}

func (r *recordingSignal) Invalidate(ctx context.Context, paths []string) {
	r.calls = append(r.calls, paths)
}

func TestMulti_FansOut(t *testing.T) {
	a := &recordingSignal{}
	b := &recordingSignal{}
	m := Multi{a, b}

	m.Invalidate(context.Background(), []string{"/", "/desarrollos"})

	if len(a.calls) != 1 || len(b.calls) != 1 {
		t.Fatalf("expected one call per signal, got %d and %d", len(a.calls), len(b.calls))
	}
}

func TestDevelopmentPaths(t *testing.T) {
	paths := DevelopmentPaths("dev-123")
	want := map[string]bool{
		"/admin/desarrollos":   true,
		"/desarrollos":         true,
		"/desarrollos/dev-123": true,
		"/":                    true,
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for _, p := range paths {
		if !want[p] {
			t.Fatalf("unexpected path %q", p)
		}
	}

	// Without an id only the collection views go stale.
	if got := DevelopmentPaths(""); len(got) != 3 {
		t.Fatalf("expected 3 collection paths, got %v", got)
	}
}

func TestPinger_PingsEveryPath(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/revalidate" {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		if r.Header.Get("X-Revalidate-Secret") != "shhh" {
			t.Errorf("missing revalidation secret header")
		}
		mu.Lock()
		seen = append(seen, r.URL.Query().Get("path"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPinger(srv.URL, "shhh")
	p.Invalidate(context.Background(), []string{"/", "/desarrollos", "/favoritos"})

	mu.Lock()
	defer mu.Unlock()
	sort.Strings(seen)
	if len(seen) != 3 {
		t.Fatalf("expected 3 pings, got %v", seen)
	}
}

func TestPinger_FailuresDoNotAbort(t *testing.T) {
	var mu sync.Mutex
	count := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		count++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPinger(srv.URL, "")
	p.Invalidate(context.Background(), []string{"/a", "/b"})

	mu.Lock()
	defer mu.Unlock()
	if count != 2 {
		t.Fatalf("expected both paths pinged despite failures, got %d", count)
	}
}
