package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/vlite/pkg/telemetry"
)

func TestShallowMerge(t *testing.T) {
	s := New(WithInitialState(State{"a": 1, "nested": State{"x": 1}}))

	got, err := s.SetState(State{"b": 2, "nested": State{"y": 2}})
	if err != nil {
		t.Fatal(err)
	}

	want := State{"a": 1, "b": 2, "nested": State{"y": 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SetState result (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.GetState()); diff != "" {
		t.Errorf("GetState (-want +got):\n%s", diff)
	}
}

func TestMergeLaw(t *testing.T) {
	s := New()
	s.SetState(State{"k": "old", "keep": true})
	s.SetState(State{"k": "new"})

	st := s.GetState()
	if st["k"] != "new" || st["keep"] != true {
		t.Errorf("state = %v, want k=new keep=true", st)
	}
}

func TestGetStateReturnsCopy(t *testing.T) {
	s := New(WithInitialState(State{"a": 1}))
	st := s.GetState()
	st["a"] = 99
	st["b"] = 2

	if got := s.GetState(); got["a"] != 1 || len(got) != 1 {
		t.Errorf("store aliased its state: %v", got)
	}
}

func TestInitialStateCopied(t *testing.T) {
	initial := State{"a": 1}
	s := New(WithInitialState(initial))
	initial["a"] = 2
	if s.GetState()["a"] != 1 {
		t.Error("store aliased the initial state")
	}
}

func TestNilPartialIgnored(t *testing.T) {
	s := New(WithInitialState(State{"a": 1}))
	notified, updates := 0, 0
	s.Subscribe(func(State) { notified++ })
	s.SetUpdateCallback(func() error { updates++; return nil })

	got, err := s.SetState(nil)
	if err != nil || got["a"] != 1 {
		t.Errorf("SetState(nil) = %v, %v", got, err)
	}
	if notified != 0 || updates != 0 {
		t.Errorf("nil partial notified=%d updates=%d, want 0 0", notified, updates)
	}
}

func TestObserversInOrderThenUpdate(t *testing.T) {
	s := New()
	var calls []string
	s.Subscribe(func(st State) { calls = append(calls, "first:"+st["v"].(string)) })
	s.Subscribe(nil)
	s.Subscribe(func(st State) { calls = append(calls, "second:"+st["v"].(string)) })
	s.SetUpdateCallback(func() error { calls = append(calls, "update"); return nil })

	s.SetState(State{"v": "x"})

	want := []string{"first:x", "second:x", "update"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("call order (-want +got):\n%s", diff)
	}
}

func TestObserverGetsCopy(t *testing.T) {
	s := New()
	s.Subscribe(func(st State) { st["v"] = "mutated" })
	s.SetState(State{"v": "x"})
	if s.GetState()["v"] != "x" {
		t.Error("observer mutated store state")
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New()
	var calls []string
	s.Subscribe(func(State) { calls = append(calls, "a") })
	unsub := s.Subscribe(func(State) { calls = append(calls, "b") })
	s.Subscribe(func(State) { calls = append(calls, "c") })

	unsub()
	unsub()
	s.SetState(State{"x": 1})

	if diff := cmp.Diff([]string{"a", "c"}, calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestSilent(t *testing.T) {
	s := New()
	notified, updates := 0, 0
	s.Subscribe(func(State) { notified++ })
	s.SetUpdateCallback(func() error { updates++; return nil })

	got, err := s.SetState(State{"a": 1}, Silent())
	if err != nil || got["a"] != 1 {
		t.Errorf("SetState = %v, %v", got, err)
	}
	if notified != 0 || updates != 0 {
		t.Errorf("silent merge notified=%d updates=%d", notified, updates)
	}
	if s.GetState()["a"] != 1 {
		t.Error("silent merge not applied")
	}
}

func TestNoCallbackIsNoop(t *testing.T) {
	s := New()
	if _, err := s.SetState(State{"a": 1}); err != nil {
		t.Errorf("err = %v", err)
	}
	if err := s.RequestUpdate(); err != nil {
		t.Errorf("RequestUpdate err = %v", err)
	}
}

func TestSetUpdateCallbackReplaces(t *testing.T) {
	s := New()
	var got []string
	s.SetUpdateCallback(func() error { got = append(got, "old"); return nil })
	s.SetUpdateCallback(func() error { got = append(got, "new"); return nil })
	s.SetState(State{"a": 1})
	s.SetUpdateCallback(nil)
	s.SetState(State{"a": 2})

	if diff := cmp.Diff([]string{"new"}, got); diff != "" {
		t.Errorf("callbacks (-want +got):\n%s", diff)
	}
}

func TestUpdateErrorReturned(t *testing.T) {
	boom := errors.New("boom")
	s := New()
	s.SetUpdateCallback(func() error { return boom })

	st, err := s.SetState(State{"a": 1})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if st["a"] != 1 {
		t.Error("state not merged when the update failed")
	}
}

func TestReentrantUpdatesCollapse(t *testing.T) {
	s := New()
	passes := 0
	s.SetUpdateCallback(func() error {
		passes++
		if passes == 1 {
			// Three requests from inside the pass become one follow-up.
			s.SetState(State{"a": 1})
			s.SetState(State{"b": 2})
			s.SetState(State{"c": 3})
		}
		return nil
	})

	if _, err := s.SetState(State{"start": true}); err != nil {
		t.Fatal(err)
	}
	if passes != 2 {
		t.Errorf("passes = %d, want 2", passes)
	}
	if s.Updating() {
		t.Error("still updating after SetState returned")
	}
	if len(s.GetState()) != 4 {
		t.Errorf("state = %v", s.GetState())
	}
}

func TestObserverUpdatesJoinPass(t *testing.T) {
	s := New()
	var rendered []State
	s.SetUpdateCallback(func() error {
		rendered = append(rendered, s.GetState())
		return nil
	})
	s.Subscribe(func(st State) {
		if _, ok := st["derived"]; !ok {
			s.SetState(State{"derived": st["n"]})
		}
	})

	if _, err := s.SetState(State{"n": 1}); err != nil {
		t.Fatal(err)
	}
	want := []State{{"n": 1, "derived": 1}}
	if diff := cmp.Diff(want, rendered); diff != "" {
		t.Errorf("rendered states (-want +got):\n%s", diff)
	}
}

func TestObserverInsideBatchDefers(t *testing.T) {
	s := New()
	passes := 0
	s.SetUpdateCallback(func() error { passes++; return nil })
	s.Subscribe(func(st State) {
		if st["n"] == 1 {
			s.SetState(State{"n": 2})
		}
	})

	s.Batch(func() {
		s.SetState(State{"n": 1})
		if passes != 0 {
			t.Errorf("passes inside batch = %d, want 0", passes)
		}
	})
	if passes != 1 {
		t.Errorf("passes = %d, want 1", passes)
	}
	if s.GetState()["n"] != 2 {
		t.Errorf("n = %v, want 2", s.GetState()["n"])
	}
}

func TestFollowUpPassSeesLatestState(t *testing.T) {
	s := New(WithInitialState(State{"n": 0}))
	var seen []int
	s.SetUpdateCallback(func() error {
		n := GetOr(s.GetState(), "n", -1)
		seen = append(seen, n)
		if n < 3 {
			s.SetState(State{"n": n + 1})
		}
		return nil
	})

	s.SetState(State{"n": 0})

	if diff := cmp.Diff([]int{0, 1, 2, 3}, seen); diff != "" {
		t.Errorf("passes saw (-want +got):\n%s", diff)
	}
}

func TestUpdateLoopBounded(t *testing.T) {
	s := New(WithMaxPasses(5))
	passes := 0
	s.SetUpdateCallback(func() error {
		passes++
		s.SetState(State{"n": passes})
		return nil
	})

	_, err := s.SetState(State{"n": 0})
	if !errors.Is(err, ErrUpdateLoop) {
		t.Fatalf("err = %v, want ErrUpdateLoop", err)
	}
	if passes != 5 {
		t.Errorf("passes = %d, want 5", passes)
	}
	if s.Updating() {
		t.Error("loop did not reset after overflow")
	}

	s.SetUpdateCallback(func() error { return nil })
	if _, err := s.SetState(State{"n": 0}); err != nil {
		t.Errorf("store unusable after overflow: %v", err)
	}
}

func TestBatchRunsOnePass(t *testing.T) {
	s := New()
	passes := 0
	s.SetUpdateCallback(func() error { passes++; return nil })

	err := s.Batch(func() {
		s.SetState(State{"a": 1})
		s.Batch(func() {
			s.SetState(State{"b": 2})
		})
		if passes != 0 {
			t.Error("nested batch flushed early")
		}
		s.SetState(State{"c": 3})
	})
	if err != nil {
		t.Fatal(err)
	}
	if passes != 1 {
		t.Errorf("passes = %d, want 1", passes)
	}
}

func TestBatchWithoutUpdates(t *testing.T) {
	s := New()
	passes := 0
	s.SetUpdateCallback(func() error { passes++; return nil })
	s.Batch(func() {
		s.SetState(State{"a": 1}, Silent())
	})
	if passes != 0 {
		t.Errorf("passes = %d, want 0", passes)
	}
}

func TestBatchReturnsUpdateError(t *testing.T) {
	boom := errors.New("boom")
	s := New()
	s.SetUpdateCallback(func() error { return boom })
	err := s.Batch(func() { s.SetState(State{"a": 1}) })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestBatchPanicDropsUpdate(t *testing.T) {
	s := New()
	passes := 0
	s.SetUpdateCallback(func() error { passes++; return nil })

	func() {
		defer func() { recover() }()
		s.Batch(func() {
			s.SetState(State{"a": 1})
			panic("boom")
		})
	}()

	if passes != 0 {
		t.Errorf("passes = %d, want 0", passes)
	}
	s.SetState(State{"b": 2})
	if passes != 1 {
		t.Errorf("store stuck in batch after panic: passes = %d", passes)
	}
}

func TestConcurrentSetState(t *testing.T) {
	s := New()
	var mu sync.Mutex
	passes := 0
	s.SetUpdateCallback(func() error {
		mu.Lock()
		passes++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetState(State{"k": i})
		}(i)
	}
	wg.Wait()

	if _, ok := s.GetState()["k"]; !ok {
		t.Error("no write landed")
	}
	mu.Lock()
	defer mu.Unlock()
	if passes == 0 || passes > 50 {
		t.Errorf("passes = %d, want 1..50", passes)
	}
}

func TestMetrics(t *testing.T) {
	m := telemetry.NewMetrics(telemetry.WithRegistry(prometheus.NewRegistry()))
	s := New(WithMetrics(m))
	s.SetState(State{"a": 1})
	s.SetState(State{"a": 2}, Silent())
	s.SetState(nil)

	if got := testutil.ToFloat64(m.StateUpdates("triggered")); got != 1 {
		t.Errorf("triggered = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.StateUpdates("silent")); got != 1 {
		t.Errorf("silent = %v, want 1", got)
	}
}

func TestGet(t *testing.T) {
	st := State{"s": "x", "n": 3}
	if v, ok := Get[string](st, "s"); !ok || v != "x" {
		t.Errorf("Get string = %q, %v", v, ok)
	}
	if _, ok := Get[string](st, "n"); ok {
		t.Error("Get accepted a mistyped value")
	}
	if v := GetOr(st, "missing", 7); v != 7 {
		t.Errorf("GetOr = %d, want 7", v)
	}
}
