package notify

import "testing"

func TestNotifierDeliversToAllListeners(t *testing.T) {
	n := NewNotifier()

	var first, second int
	n.Subscribe(func() { first++ })
	n.Subscribe(func() { second++ })

	n.Notify()
	n.Notify()

	if first != 2 || second != 2 {
		t.Fatalf("expected both listeners called twice, got %d and %d", first, second)
	}
}

func TestNotifierUnsubscribeStopsDelivery(t *testing.T) {
	n := NewNotifier()

	var calls int
	unsubscribe := n.Subscribe(func() { calls++ })

	n.Notify()
	unsubscribe()
	n.Notify()

	if calls != 1 {
		t.Fatalf("expected one call after unsubscribe, got %d", calls)
	}
	if n.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", n.Len())
	}
}

func TestNotifierUnsubscribeTwiceIsHarmless(t *testing.T) {
	n := NewNotifier()
	unsubscribe := n.Subscribe(func() {})
	unsubscribe()
	unsubscribe()
	if n.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", n.Len())
	}
}

func TestNotifierListenerMayUnsubscribeDuringNotify(t *testing.T) {
	n := NewNotifier()

	var calls int
	var unsubscribeOther func()
	n.Subscribe(func() {
		calls++
		unsubscribeOther()
	})
	unsubscribeOther = n.Subscribe(func() { calls++ })

	// The snapshot taken at notify time still includes both listeners even
	// though the first removes the second mid-iteration.
	n.Notify()
	if calls != 2 {
		t.Fatalf("expected snapshot delivery to both listeners, got %d calls", calls)
	}

	n.Notify()
	if calls != 3 {
		t.Fatalf("expected only remaining listener after unsubscribe, got %d calls", calls)
	}
}

func TestNotifierListenerMaySubscribeDuringNotify(t *testing.T) {
	n := NewNotifier()

	var lateCalls int
	n.Subscribe(func() {
		n.Subscribe(func() { lateCalls++ })
	})

	n.Notify()
	if lateCalls != 0 {
		t.Fatalf("expected newly added listener to miss in-flight notify, got %d", lateCalls)
	}

	n.Notify()
	if lateCalls != 1 {
		t.Fatalf("expected newly added listener on next notify, got %d", lateCalls)
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Notify()
	unsubscribe := n.Subscribe(func() {})
	unsubscribe()
	if n.Len() != 0 {
		t.Fatal("expected zero length for nil notifier")
	}
}
