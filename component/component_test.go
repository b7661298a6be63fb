package component

import (
	"context"
	"errors"
	"testing"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return f.stopErr
}

func (f *fakeComponent) Health(context.Context) Health {
	return Health{Name: f.name, Status: StatusHealthy}
}

func TestRegistryOrdering(t *testing.T) {
	var events []string
	r := NewRegistry()
	for _, name := range []string{"database", "server"} {
		if err := r.Register(&fakeComponent{name: name, events: &events}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{"start:database", "start:server", "stop:server", "stop:database"}
	if len(events) != len(want) {
		t.Fatalf("events = %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	var events []string
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "database", events: &events}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&fakeComponent{name: "database", events: &events}); err == nil {
		t.Error("duplicate registration accepted")
	}
}

func TestRegistryStartFailureStopsOnlyStarted(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "database", events: &events})
	_ = r.Register(&fakeComponent{name: "broken", startErr: errors.New("boom"), events: &events})
	_ = r.Register(&fakeComponent{name: "server", events: &events})

	ctx := context.Background()
	if err := r.StartAll(ctx); err == nil {
		t.Fatal("StartAll succeeded with a broken component")
	}

	// only the successfully started component is stopped; the failed and
	// never-started ones are skipped
	events = events[:0]
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	if len(events) != 1 || events[0] != "stop:database" {
		t.Errorf("events = %v, want [stop:database]", events)
	}
}

func TestRegistryStopCollectsErrors(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "first", stopErr: errors.New("boom"), events: &events})
	_ = r.Register(&fakeComponent{name: "second", events: &events})

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatal(err)
	}
	if err := r.StopAll(ctx); err == nil {
		t.Error("StopAll swallowed a component error")
	}

	// the failing component did not prevent the other from stopping
	stops := 0
	for _, e := range events {
		if e == "stop:first" || e == "stop:second" {
			stops++
		}
	}
	if stops != 2 {
		t.Errorf("events = %v, want both stops attempted", events)
	}
}

func TestHealthAll(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "database", events: &events})
	_ = r.Register(&fakeComponent{name: "server", events: &events})

	health := r.HealthAll(context.Background())
	if len(health) != 2 {
		t.Fatalf("len = %d", len(health))
	}
	if health[0].Name != "database" || health[1].Name != "server" {
		t.Errorf("order = %v", health)
	}
}
