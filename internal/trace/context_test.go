package trace

import "testing"

func TestCPUContextTickAdvancesStamp(t *testing.T) {
	cc := NewCPUContext(1)
	if _, seq := cc.Stamp.Decode(); seq != 0 {
		t.Fatalf("new context should start at seq 0, got %d", seq)
	}

	first := cc.Tick()
	second := cc.Tick()

	if cpuID, seq := first.Decode(); cpuID != 1 || seq != 1 {
		t.Errorf("first tick = (%d, %d), want (1, 1)", cpuID, seq)
	}
	if cpuID, seq := second.Decode(); cpuID != 1 || seq != 2 {
		t.Errorf("second tick = (%d, %d), want (1, 2)", cpuID, seq)
	}
}

func TestCPUContextJoinEstablishesHappensBefore(t *testing.T) {
	signaler := NewCPUContext(0)
	signaler.Tick()
	signaler.Tick()

	waiter := NewCPUContext(1)
	before := waiter.C.Clone()

	waiter.Join(signaler.C)

	if !before.HappensBefore(waiter.C) {
		t.Fatal("waiter's clock should have advanced past its pre-join snapshot")
	}
	if !signaler.C.HappensBefore(waiter.C) {
		t.Fatal("joining should make the signaler's clock happen-before the waiter's")
	}
}
