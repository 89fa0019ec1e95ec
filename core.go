package grip

import (
	"fmt"
	"log"
)

// Core is the interaction state machine: it tracks press-move-release
// gestures on one bound element, unifying the mouse and touch families,
// and reports normalized drag coordinates to the host. Hosts veto or
// customize each step through [Options] callbacks; observers subscribe via
// [Core.OnDragStart], [Core.OnDrag], [Core.OnDragEnd], and
// [Core.OnStateChange].
//
// A Core has two states: idle and dragging. While dragging, exactly one
// move/release listener pair is registered on the owning surface for the
// family that started the gesture; while idle, none are. The dragging flag
// is the single source of truth for listener liveness.
//
// Core is not safe for concurrent use. It relies on the host runtime
// serializing input dispatch, the same way a browser serializes DOM events.
type Core struct {
	opts     Options
	el       Element
	handlers handlerRegistry

	dragging     bool
	touchID      int64
	lastX, lastY float64
	family       EventFamily // family that started the live gesture

	guarded       bool // selection guard held for the live gesture
	removePress   []func()
	removeMove    func()
	removeRelease func()
}

// New creates a Core with the given options. No element is bound yet; call
// [Core.Attach] once the host's element reference resolves.
func New(opts Options) *Core {
	return &Core{opts: opts}
}

// Attach binds the engine to el, registering press listeners for both
// input families on its surface. Attaching nil, or an element without a
// surface, logs a warning and leaves the engine inert until a usable
// element arrives. A previous binding is detached first.
func (c *Core) Attach(el Element) {
	if c.el != nil {
		c.Detach()
	}
	if el == nil {
		log.Printf("grip: attach with no element; interactions disabled")
		return
	}
	surf := el.Surface()
	if surf == nil {
		log.Printf("grip: attach to element without a surface; interactions disabled")
		return
	}
	c.el = el
	c.removePress = []func(){
		surf.Listen(FamilyMouse, KindPress, c.handlePress),
		surf.Listen(FamilyTouch, KindPress, c.handlePress),
	}
}

// Detach unbinds the engine. A live gesture is force-stopped first so the
// selection guard and document listeners are never left dangling.
func (c *Core) Detach() {
	if c.dragging {
		c.cleanupGesture()
		c.fireStateChange()
	}
	for _, remove := range c.removePress {
		remove()
	}
	c.removePress = nil
	c.el = nil
}

// Element returns the bound element, or nil.
func (c *Core) Element() Element {
	return c.el
}

// Options returns the current options.
func (c *Core) Options() Options {
	return c.opts
}

// SetOptions replaces the options and emits a state-change notification.
// It does not interrupt a live gesture.
func (c *Core) SetOptions(opts Options) {
	c.opts = opts
	c.fireStateChange()
}

// Dragging reports whether a gesture is live.
func (c *Core) Dragging() bool {
	return c.dragging
}

// State returns a snapshot of the observable state.
func (c *Core) State() State {
	return State{Dragging: c.dragging, LastX: c.lastX, LastY: c.lastY}
}

// --- Gesture handlers ---

// handlePress is the unified start handler for both families.
func (c *Core) handlePress(e *PointerEvent) {
	if c.el == nil {
		return
	}
	// A press arriving while a gesture is live (e.g. the other family
	// starting after a vetoed stop) is ignored outright; the dragging flag
	// stays authoritative for which listeners are registered.
	if c.dragging {
		return
	}
	if e.Family == FamilyMouse && e.Button != MouseButtonLeft && !c.opts.AllowAnyButton {
		return
	}
	if !descendantOf(e.Target, c.el) {
		return
	}
	if err := c.handleStart(e); err != nil {
		log.Printf("grip: %v", err)
	}
}

// handleStart runs the idle → dragging transition. Preconditions are
// checked in order; any failure aborts with no state change and no
// listener registration.
func (c *Core) handleStart(e *PointerEvent) error {
	o := c.opts
	if o.Disabled {
		return nil
	}
	if e.Target == nil {
		return nil
	}
	surf := c.el.Surface()
	if surf == nil {
		// A press reached us for an element that lost its surface: broken
		// attachment, and registering document listeners now would leak.
		return fmt.Errorf("gesture start on element with no surface")
	}
	if e.Target.Surface() != surf {
		return nil
	}
	if o.Handle != "" && !matchesSelectorAndParents(e.Target, o.Handle, c.el) {
		return nil
	}
	if o.Cancel != "" && matchesSelectorAndParents(e.Target, o.Cancel, c.el) {
		return nil
	}

	touchID := mouseTouchID
	if e.Family == FamilyTouch {
		touchID = e.TouchID
	}
	x, y, ok := resolvePosition(e, touchID, c.offsetFrame(), o.Scale)
	if !ok {
		return nil
	}

	if e.Family == FamilyTouch {
		e.PreventDefault()
	}

	data := newDragEvent(c.el, x, y, c.lastX, c.lastY)
	verdict := VerdictDefault
	if o.OnStart != nil {
		verdict = o.OnStart(e, data)
	}
	// The start notification fires regardless of the verdict.
	c.fireDrag(EventDragStart, e, data)
	if !o.accepted(verdict, o.OnStart != nil) {
		return nil
	}

	if o.SelectionGuard {
		acquireSelectionGuard(surf)
		c.guarded = true
	}
	c.dragging = true
	c.family = e.Family
	c.touchID = touchID
	c.lastX, c.lastY = x, y
	c.removeMove = surf.Listen(e.Family, KindMove, c.handleMove)
	c.removeRelease = surf.Listen(e.Family, KindRelease, c.handleRelease)
	c.fireStateChange()
	return nil
}

// handleMove runs the dragging → dragging transition.
func (c *Core) handleMove(e *PointerEvent) {
	if !c.dragging {
		return
	}
	o := c.opts
	x, y, ok := resolvePosition(e, c.touchID, c.offsetFrame(), o.Scale)
	if !ok {
		// Wrong touch identifier: the gesture continues unaffected.
		return
	}

	if o.Grid != nil {
		dx, dy := snapToGrid(*o.Grid, x-c.lastX, y-c.lastY)
		if dx == 0 && dy == 0 {
			return
		}
		x, y = c.lastX+dx, c.lastY+dy
	}

	data := newDragEvent(c.el, x, y, c.lastX, c.lastY)
	verdict := VerdictDefault
	if o.OnMove != nil {
		verdict = o.OnMove(e, data)
	}
	c.fireDrag(EventDrag, e, data)
	if !o.accepted(verdict, o.OnMove != nil) {
		// The host revoked permission mid-drag: synthesize a release so no
		// gesture is left dangling.
		c.forceStop(e)
		return
	}

	c.lastX, c.lastY = x, y
	c.fireStateChange()
}

// handleRelease runs the dragging → idle transition.
func (c *Core) handleRelease(e *PointerEvent) {
	// Guard against duplicate release events.
	if !c.dragging {
		return
	}
	o := c.opts
	x, y, ok := resolvePosition(e, c.touchID, c.offsetFrame(), o.Scale)
	if !ok {
		return
	}

	data := newDragEvent(c.el, x, y, c.lastX, c.lastY)
	verdict := VerdictDefault
	if o.OnStop != nil {
		verdict = o.OnStop(e, data)
	}
	c.fireDrag(EventDragEnd, e, data)
	if !o.accepted(verdict, o.OnStop != nil) {
		// Stop refused: the gesture stays live and listeners stay
		// registered. Hosts relying on eventual cleanup must release again.
		return
	}

	c.lastX, c.lastY = x, y
	c.cleanupGesture()
	c.fireStateChange()
}

// cleanupGesture releases the guard, clears the dragging state, and
// deregisters the move/release listener pair.
func (c *Core) cleanupGesture() {
	if c.guarded {
		releaseSelectionGuard(c.el.Surface())
		c.guarded = false
	}
	c.dragging = false
	c.touchID = mouseTouchID
	if c.removeMove != nil {
		c.removeMove()
		c.removeMove = nil
	}
	if c.removeRelease != nil {
		c.removeRelease()
		c.removeRelease = nil
	}
}

// forceStop ends the gesture after a vetoed move. The surface's release
// synthesizer is preferred so the event travels the normal dispatch path;
// when the surface has none (or it fails), the engine constructs the
// release event itself and hands it straight to the stop handler.
func (c *Core) forceStop(e *PointerEvent) {
	if rs, ok := c.el.Surface().(ReleaseSynthesizer); ok {
		if err := rs.SynthesizeRelease(c.family); err == nil {
			return
		}
	}
	c.handleRelease(&PointerEvent{
		Kind:    KindRelease,
		Family:  c.family,
		Target:  c.el,
		Button:  e.Button,
		X:       e.X,
		Y:       e.Y,
		Touches: e.Touches,
		TouchID: c.touchID,
	})
}

// offsetFrame returns the element establishing the coordinate reference
// frame: the configured offset parent, else the bound element's own parent.
func (c *Core) offsetFrame() Element {
	if c.opts.OffsetParent != nil {
		return c.opts.OffsetParent
	}
	if c.el != nil {
		return c.el.Parent()
	}
	return nil
}

// accepted applies the veto policy: an explicit verdict wins; a default
// verdict from an invoked callback falls back to ApplyDefault; an absent
// callback never vetoes.
func (o Options) accepted(v Verdict, invoked bool) bool {
	if !invoked {
		return true
	}
	switch v {
	case VerdictAccept:
		return true
	case VerdictReject:
		return false
	default:
		return o.ApplyDefault
	}
}

// descendantOf reports whether node is root or one of its descendants.
func descendantOf(node, root Element) bool {
	for n := node; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}
