package observe_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/ottonascarella/pipes/stream"
	"github.com/ottonascarella/pipes/stream/core"
	"github.com/ottonascarella/pipes/stream/observe"
)

func waitDone(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a terminal signal")
	}
}

func TestSpyObservesEverySignal(t *testing.T) {
	var mu sync.Mutex
	var signals []observe.Signal[int]
	done := make(chan struct{})

	observe.Spy(func(s observe.Signal[int]) {
		mu.Lock()
		signals = append(signals, s)
		mu.Unlock()
	}).Apply(stream.Of(1, 2)).Subscribe(core.Sink[int]{
		Complete: func() { close(done) },
	})
	waitDone(t, done)

	mu.Lock()
	defer mu.Unlock()
	want := []observe.Signal[int]{
		{Kind: observe.KindValue, Value: 1},
		{Kind: observe.KindValue, Value: 2},
		{Kind: observe.KindComplete},
	}
	if !reflect.DeepEqual(signals, want) {
		t.Errorf("got %v, want %v", signals, want)
	}
}

func TestSpyObservesErrors(t *testing.T) {
	boom := errors.New("boom")
	var got observe.Signal[int]

	observe.Spy(func(s observe.Signal[int]) { got = s }).
		Apply(core.New(func(sink core.Sink[int]) core.Subscription {
			sink.Error(boom)
			return core.NewSubscription(nil)
		})).
		Subscribe(core.Sink[int]{})

	if got.Kind != observe.KindError || !errors.Is(got.Err, boom) {
		t.Errorf("got %v, want an error signal carrying %v", got, boom)
	}
}

func TestSpyDoesNotAlterTheStream(t *testing.T) {
	var values []int
	done := make(chan struct{})

	observe.Spy(func(observe.Signal[int]) {}).
		Apply(stream.Of(1, 2, 3)).
		Subscribe(core.Sink[int]{
			Next:     func(v int) { values = append(values, v) },
			Complete: func() { close(done) },
		})
	waitDone(t, done)

	if want := []int{1, 2, 3}; !reflect.DeepEqual(values, want) {
		t.Errorf("got %v, want %v", values, want)
	}
}

func TestCountTracksSignals(t *testing.T) {
	var c observe.Counter
	done := make(chan struct{})

	observe.Count[int](&c).Apply(stream.Of(1, 2, 3)).Subscribe(core.Sink[int]{
		Complete: func() { close(done) },
	})
	waitDone(t, done)

	if got := c.Values(); got != 3 {
		t.Errorf("values = %d, want 3", got)
	}
	if got := c.Errors(); got != 0 {
		t.Errorf("errors = %d, want 0", got)
	}
	if got := c.Completions(); got != 1 {
		t.Errorf("completions = %d, want 1", got)
	}
}

func TestCountTracksErrors(t *testing.T) {
	var c observe.Counter

	observe.Count[int](&c).
		Apply(core.New(func(sink core.Sink[int]) core.Subscription {
			sink.Next(1)
			sink.Error(errors.New("boom"))
			return core.NewSubscription(nil)
		})).
		Subscribe(core.Sink[int]{})

	if got := c.Values(); got != 1 {
		t.Errorf("values = %d, want 1", got)
	}
	if got := c.Errors(); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
	if got := c.Completions(); got != 0 {
		t.Errorf("completions = %d, want 0", got)
	}
}

func TestMeteredPassesSignalsThrough(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	op, err := observe.Metered[int](meter, "pipeline")
	if err != nil {
		t.Fatalf("Metered: %v", err)
	}

	var values []int
	done := make(chan struct{})
	op.Apply(stream.Of(1, 2, 3)).Subscribe(core.Sink[int]{
		Next:     func(v int) { values = append(values, v) },
		Complete: func() { close(done) },
	})
	waitDone(t, done)

	if want := []int{1, 2, 3}; !reflect.DeepEqual(values, want) {
		t.Errorf("got %v, want %v", values, want)
	}
}
