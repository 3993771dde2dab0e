package queue

import "testing"

func TestDrainFIFOAndOnce(t *testing.T) {
	q := New[int](4)
	for i := 1; i <= 3; i++ {
		q.Push(i)
	}
	got := q.Drain()
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Drain() = %v", got)
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after Drain: %d", q.Len())
	}
	if again := q.Drain(); again != nil {
		t.Errorf("second Drain returned %v", again)
	}
}

func TestPushDuringConsumeLandsNextDrain(t *testing.T) {
	q := New[string](2)
	q.Push("a")
	for _, v := range q.Drain() {
		q.Push(v + "'")
	}
	got := q.Drain()
	if len(got) != 1 || got[0] != "a'" {
		t.Errorf("Drain() = %v, expected [a']", got)
	}
}

func TestDrainedSliceSurvivesNextPush(t *testing.T) {
	q := New[int](1)
	q.Push(7)
	first := q.Drain()
	q.Push(8)
	if first[0] != 7 {
		t.Errorf("drained slice was overwritten: %v", first)
	}
}

func TestReset(t *testing.T) {
	q := New[int](0)
	q.Push(1)
	q.Push(2)
	q.Reset()
	if q.Len() != 0 || q.Drain() != nil {
		t.Error("Reset should drop pending events")
	}
}
