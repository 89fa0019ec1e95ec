package grip

// newDragEvent combines the current and previous committed coordinates into
// a drag-event payload. Pure; no side effects.
func newDragEvent(node Element, x, y, lastX, lastY float64) DragEvent {
	return DragEvent{
		Node:   node,
		X:      x,
		Y:      y,
		DeltaX: x - lastX,
		DeltaY: y - lastY,
		LastX:  lastX,
		LastY:  lastY,
	}
}

// --- Handler registry ---

type dragHandler struct {
	id uint32
	fn func(e *PointerEvent, data DragEvent)
}

type stateHandler struct {
	id uint32
	fn func(State)
}

type handlerRegistry struct {
	dragStart   []dragHandler
	drag        []dragHandler
	dragEnd     []dragHandler
	stateChange []stateHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered lifecycle callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	case EventStateChange:
		h.reg.stateChange = removeStateHandler(h.reg.stateChange, h.id)
	}
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeStateHandler(s []stateHandler, id uint32) []stateHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = stateHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Lifecycle registration ---

// OnDragStart registers a callback fired when a press begins a gesture.
// It fires even when the host's OnStart callback subsequently vetoes the
// transition.
func (c *Core) OnDragStart(fn func(e *PointerEvent, data DragEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.dragStart = append(c.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventDragStart}
}

// OnDrag registers a callback fired on each move tick of a live gesture.
func (c *Core) OnDrag(fn func(e *PointerEvent, data DragEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.drag = append(c.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventDrag}
}

// OnDragEnd registers a callback fired when a gesture releases.
func (c *Core) OnDragEnd(fn func(e *PointerEvent, data DragEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.dragEnd = append(c.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventDragEnd}
}

// OnStateChange registers a callback fired whenever the observable state
// (position, dragging flag, options) changes.
func (c *Core) OnStateChange(fn func(State)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.stateChange = append(c.handlers.stateChange, stateHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventStateChange}
}

// --- Dispatch ---

func (c *Core) fireDrag(event EventType, e *PointerEvent, data DragEvent) {
	var hs []dragHandler
	switch event {
	case EventDragStart:
		hs = c.handlers.dragStart
	case EventDrag:
		hs = c.handlers.drag
	case EventDragEnd:
		hs = c.handlers.dragEnd
	}
	for _, h := range hs {
		h.fn(e, data)
	}
}

func (c *Core) fireStateChange() {
	st := c.State()
	for _, h := range c.handlers.stateChange {
		h.fn(st)
	}
}
