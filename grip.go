package grip

// Vec2 is a 2D vector used for positions, deltas, and grid cell sizes
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// EventFamily identifies which input family produced an event. Move and
// release listeners are always registered for the family that started the
// current gesture, never a fixed one.
type EventFamily uint8

const (
	FamilyMouse EventFamily = iota // mouse button events
	FamilyTouch                    // touch point events
)

// EventKind identifies the phase of a pointer event.
type EventKind uint8

const (
	KindPress   EventKind = iota // button pressed / touch began
	KindMove                     // pointer moved
	KindRelease                  // button released / touch ended
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// EventType identifies a kind of lifecycle notification.
type EventType uint8

const (
	EventDragStart   EventType = iota // fires when a gesture transitions to dragging
	EventDrag                         // fires on each committed move tick
	EventDragEnd                      // fires when a gesture completes
	EventStateChange                  // fires whenever observable state mutates
)

// mouseTouchID is the tracked-touch sentinel recorded for mouse gestures.
const mouseTouchID int64 = 0

// Verdict is a host callback's decision about a pending transition.
// The zero value defers to [Options.ApplyDefault].
type Verdict uint8

const (
	VerdictDefault Verdict = iota // no explicit decision; Options.ApplyDefault applies
	VerdictAccept                 // allow the transition
	VerdictReject                 // veto the transition
)

// Callback is a host veto hook invoked before a start, move, or stop
// transition commits. The original input event and the built drag event are
// both passed so hosts can inspect either.
type Callback func(e *PointerEvent, data DragEvent) Verdict

// Options configures a [Core]. The zero value is usable: no selector
// gating, no grid, scale 1, no callbacks.
type Options struct {
	// SelectionGuard blocks text selection on the owning surface for the
	// duration of each drag.
	SelectionGuard bool

	// AllowAnyButton accepts right and middle mouse presses as gesture
	// starts. By default only the left button starts a gesture.
	AllowAnyButton bool

	// Disabled suppresses all gesture starts. A live gesture is not
	// interrupted by setting it.
	Disabled bool

	// OffsetParent establishes the coordinate reference frame for position
	// resolution. When nil, the bound element's own parent is used.
	OffsetParent Element

	// Grid quantizes move deltas to multiples of the cell size. Nil
	// disables snapping. Moves smaller than one cell are dropped entirely.
	Grid *Vec2

	// Handle restricts gesture starts to presses on elements matching the
	// selector (within the bound element). Empty means no constraint.
	Handle string

	// Cancel rejects gesture starts on elements matching the selector
	// (within the bound element). Empty means no constraint.
	Cancel string

	// Scale divides resolved coordinates, e.g. for zoomed canvases.
	// Values <= 0 are treated as 1.
	Scale float64

	// OnStart, OnMove, and OnStop are invoked before the corresponding
	// transition commits and may veto it. Nil callbacks never veto.
	OnStart Callback
	OnMove  Callback
	OnStop  Callback

	// ApplyDefault decides a transition when a callback returns
	// VerdictDefault. Hosts that install callbacks usually want true.
	ApplyDefault bool
}

// DragEvent is the per-tick payload delivered to callbacks and lifecycle
// handlers. It is built fresh each tick and not retained.
type DragEvent struct {
	Node Element // bound element, for dimension lookup

	X, Y float64 // absolute position in logical coordinates

	DeltaX, DeltaY float64 // X - LastX, Y - LastY

	LastX, LastY float64 // previous committed position
}

// State is a snapshot of a Core's observable sub-state, delivered to
// state-change handlers.
type State struct {
	Dragging     bool
	LastX, LastY float64
}
