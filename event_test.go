package grip

import "testing"

func TestHandlersFireInRegistrationOrder(t *testing.T) {
	c := New(Options{})

	var order []int
	c.OnDrag(func(e *PointerEvent, d DragEvent) { order = append(order, 1) })
	c.OnDrag(func(e *PointerEvent, d DragEvent) { order = append(order, 2) })
	c.OnDrag(func(e *PointerEvent, d DragEvent) { order = append(order, 3) })

	c.fireDrag(EventDrag, nil, DragEvent{})
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	c := New(Options{})

	var a, b int
	ha := c.OnDragStart(func(e *PointerEvent, d DragEvent) { a++ })
	c.OnDragStart(func(e *PointerEvent, d DragEvent) { b++ })

	c.fireDrag(EventDragStart, nil, DragEvent{})
	ha.Remove()
	c.fireDrag(EventDragStart, nil, DragEvent{})

	if a != 1 {
		t.Errorf("removed handler fired %d times, want 1", a)
	}
	if b != 2 {
		t.Errorf("surviving handler fired %d times, want 2", b)
	}

	// Removing twice, or removing a zero handle, is harmless.
	ha.Remove()
	(CallbackHandle{}).Remove()
}

func TestStateChangeHandleRemove(t *testing.T) {
	c := New(Options{})

	var n int
	h := c.OnStateChange(func(State) { n++ })
	c.fireStateChange()
	h.Remove()
	c.fireStateChange()

	if n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}
}

func TestNewDragEvent(t *testing.T) {
	el := &fakeElement{name: "el"}
	d := newDragEvent(el, 15, 12, 10, 10)
	if d.Node != el || d.X != 15 || d.Y != 12 ||
		d.DeltaX != 5 || d.DeltaY != 2 || d.LastX != 10 || d.LastY != 10 {
		t.Errorf("unexpected payload: %+v", d)
	}
}
