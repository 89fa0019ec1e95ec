package grip

// Element is the engine's view of a draggable element. Hosts own layout and
// rendering; the engine only needs ancestry, selector matching, geometry,
// and the owning surface. Stage boxes and tcelldriver regions implement it.
type Element interface {
	// Parent returns the element's parent, or nil at the root.
	Parent() Element

	// Matches reports whether the element matches a selector. See
	// MatchSelector for the supported syntax.
	Matches(selector string) bool

	// Surface returns the owning surface, or nil for a detached element.
	Surface() Surface

	// Origin returns the element's top-left corner in surface coordinates.
	Origin() (x, y float64)

	// Size returns the element's dimensions.
	Size() (w, h float64)
}

// Surface is the engine's view of the input-owning document: it delivers
// pointer events to listeners and carries the selection guard flag.
type Surface interface {
	// Listen registers fn for events of the given family and kind and
	// returns a function that removes the registration.
	Listen(family EventFamily, kind EventKind, fn func(*PointerEvent)) (remove func())

	// BlockSelection sets whether text selection is suppressed. The engine
	// ref-counts calls across concurrent drags, so implementations see at
	// most one transition per direction while any drag is active.
	BlockSelection(block bool)
}

// ReleaseSynthesizer is an optional Surface capability: dispatching a
// synthetic release event for a family through the normal listener path.
// Surfaces without it (or returning an error) fall back to the engine
// constructing the release event itself.
type ReleaseSynthesizer interface {
	SynthesizeRelease(family EventFamily) error
}

// Injector accepts externally synthesized pointer events and routes them
// through a surface's normal dispatch path. Stage implements it; the remote
// package and gesture scripts feed it.
type Injector interface {
	Inject(e *PointerEvent)
}

// Touch is one active touch point.
type Touch struct {
	ID   int64
	X, Y float64
}

// PointerEvent is one raw input event delivered by a Surface.
//
// For the touch family, Touches holds the active touch points and TouchID
// names the touch that triggered a press or release. Release events must
// include the just-ended touch in Touches so its final position remains
// resolvable.
type PointerEvent struct {
	Kind   EventKind
	Family EventFamily

	// Target is the topmost element under the pointer. Nil for presses on
	// empty space and for document-level move/release events.
	Target Element

	// Button is the mouse button, valid for the mouse family.
	Button MouseButton

	// X, Y is the pointer position in surface coordinates (mouse family).
	X, Y float64

	// Touches are the active touch points (touch family).
	Touches []Touch

	// TouchID is the touch that triggered a press or release (touch family).
	TouchID int64

	defaultPrevented bool
}

// PreventDefault marks the event so the surface skips its default action
// (e.g. scrolling on touch). Surfaces check DefaultPrevented after dispatch.
func (e *PointerEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// findTouch returns the touch with the given identifier, or ok=false if the
// event no longer carries it.
func findTouch(touches []Touch, id int64) (Touch, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}
