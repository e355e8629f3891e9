package event

import "testing"

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []string
	b.Subscribe(func(evt Event) { order = append(order, "first:"+string(evt.Kind())) })
	unsub := b.Subscribe(func(evt Event) { order = append(order, "second:"+string(evt.Kind())) })

	b.Publish(Jumped{})
	unsub()
	b.Publish(PlayerResetToDefault{})

	want := []string{"first:jumped", "second:jumped", "first:player_reset_to_default"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Publish(AbilityStacksChanged{AirJumps: 1})
	r.Publish(Jumped{})
	r.Publish(AbilityStacksChanged{AirJumps: 2})
	r.Publish(nil)

	if got := r.Count(KindAbilityStacksChanged); got != 2 {
		t.Fatalf("expected 2 stack events, got %d", got)
	}
	last, ok := r.Last(KindAbilityStacksChanged)
	if !ok || last.(AbilityStacksChanged).AirJumps != 2 {
		t.Fatalf("unexpected last stack event %v ok=%v", last, ok)
	}
	if evts := r.Drain(); len(evts) != 3 {
		t.Fatalf("expected 3 drained events, got %d", len(evts))
	}
	if r.Drain() != nil {
		t.Fatalf("expected empty recorder after drain")
	}
}
