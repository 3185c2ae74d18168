package notify

import (
	"errors"
	"sync"
	"testing"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSection, "section"},
		{ChangeReload, "reload"},
		{ChangeError, "error"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("ChangeType(%d).String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()

	var received []Change
	n.Subscribe(func(c Change) {
		received = append(received, c)
	})

	n.NotifySection("mouse", "/etc/stormterm.toml")
	n.NotifyReload("/etc/stormterm.toml")

	if len(received) != 2 {
		t.Fatalf("received %d changes, want 2", len(received))
	}
	if received[0].Type != ChangeSection || received[0].Path != "mouse" {
		t.Errorf("first change = %+v, want mouse section change", received[0])
	}
	if received[1].Type != ChangeReload || received[1].Source != "/etc/stormterm.toml" {
		t.Errorf("second change = %+v, want reload", received[1])
	}
}

func TestNotifier_SubscribePath(t *testing.T) {
	n := New()

	var mouseChanges, otherChanges int
	n.SubscribePath("mouse", func(Change) { mouseChanges++ })
	n.SubscribePath("colors", func(Change) { otherChanges++ })

	n.NotifySection("mouse", "test")
	if mouseChanges != 1 || otherChanges != 0 {
		t.Errorf("after mouse change: mouse=%d colors=%d, want 1 and 0", mouseChanges, otherChanges)
	}

	// Reloads reach every path observer.
	n.NotifyReload("test")
	if mouseChanges != 2 || otherChanges != 1 {
		t.Errorf("after reload: mouse=%d colors=%d, want 2 and 1", mouseChanges, otherChanges)
	}
}

func TestNotifier_NotifyError(t *testing.T) {
	n := New()
	boom := errors.New("boom")

	var got Change
	n.Subscribe(func(c Change) { got = c })
	n.NotifyError("file.toml", boom)

	if got.Type != ChangeError || !errors.Is(got.Err, boom) {
		t.Errorf("change = %+v, want error change carrying boom", got)
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	n := New()

	count := 0
	sub := n.Subscribe(func(Change) { count++ })
	pathSub := n.SubscribePath("mouse", func(Change) { count++ })

	n.NotifySection("mouse", "x")
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	sub.Unsubscribe()
	pathSub.Unsubscribe()
	n.NotifySection("mouse", "x")
	if count != 2 {
		t.Errorf("count after unsubscribe = %d, want 2", count)
	}
	if len(n.pathObservers) != 0 {
		t.Errorf("pathObservers = %v, want empty", n.pathObservers)
	}
}

func TestNotifier_Close(t *testing.T) {
	n := New()
	called := false
	n.Subscribe(func(Change) { called = true })

	n.Close()
	n.Close()
	n.NotifyReload("x")

	if called {
		t.Error("observer called after Close")
	}
}

func TestNotifier_ConcurrentAccess(t *testing.T) {
	n := New()
	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := n.Subscribe(func(Change) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			n.NotifyReload("x")
			sub.Unsubscribe()
		}()
	}
	wg.Wait()

	if total == 0 {
		t.Error("no notifications delivered")
	}
}
