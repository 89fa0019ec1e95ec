package grip

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Box ---

// Box is a rectangular element in a Stage's tree. Position is relative to
// the parent; children render (and hit-test) above their parent, later
// siblings above earlier ones. Hosts own what a box looks like; the stage
// only cares about its geometry and selector attributes.
type Box struct {
	Name    string
	ID      string
	Classes []string

	X, Y float64 // position relative to parent
	W, H float64

	parent   *Box
	children []*Box
	stage    *Stage
}

// NewBox creates a detached box. Attach it with [Box.AddChild] from a box
// already in a stage tree.
func NewBox(name string, w, h float64) *Box {
	return &Box{Name: name, W: w, H: h}
}

// AddChild appends child to b's children, on top of existing siblings.
func (b *Box) AddChild(child *Box) {
	child.parent = b
	b.children = append(b.children, child)
	if b.stage != nil {
		child.setStage(b.stage)
	}
}

func (b *Box) setStage(s *Stage) {
	b.stage = s
	for _, c := range b.children {
		c.setStage(s)
	}
}

// Parent returns the box's parent element, or nil at the root.
func (b *Box) Parent() Element {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// Matches reports whether the box matches a selector (see MatchSelector).
func (b *Box) Matches(selector string) bool {
	return MatchSelector(selector, b.Name, b.ID, b.Classes)
}

// Surface returns the owning stage, or nil for a detached box.
func (b *Box) Surface() Surface {
	if b.stage == nil {
		return nil
	}
	return b.stage
}

// Origin returns the box's top-left corner in stage coordinates.
func (b *Box) Origin() (float64, float64) {
	x, y := b.X, b.Y
	for p := b.parent; p != nil; p = p.parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// Size returns the box's dimensions.
func (b *Box) Size() (float64, float64) {
	return b.W, b.H
}

// contains tests a stage-coordinate point against the box bounds. Boxes
// with no dimensions (containers) are not hit-testable.
func (b *Box) contains(x, y float64) bool {
	if b.W <= 0 && b.H <= 0 {
		return false
	}
	ox, oy := b.Origin()
	return x >= ox && x <= ox+b.W && y >= oy && y <= oy+b.H
}

// --- Stage ---

type stageListener struct {
	id     uint32
	family EventFamily
	kind   EventKind
	fn     func(*PointerEvent)
}

// Stage is an ebiten-backed [Surface]: a tree of boxes plus a per-frame
// translation of ebiten mouse and touch state into unified pointer events.
// Call [Stage.Update] once per frame from the host's ebiten.Game.Update.
//
// Stage also implements [Injector]; injected events are queued (the one
// goroutine-safe entry point) and drained at the start of the next Update,
// sharing the normal dispatch path with polled input.
type Stage struct {
	root      *Box
	listeners []stageListener
	nextID    uint32

	selectionBlocked bool

	// Mouse pointer state. The button is captured at press time so it
	// cannot change mid-gesture.
	mouseDown        bool
	mouseSynthesized bool // release already synthesized; swallow the physical one
	mouseButton      MouseButton
	mouseX, mouseY   float64

	// Touch state from the previous frame, for press/move/release edges.
	touchScratch []ebiten.TouchID
	touches      []Touch
	touchBuf     []Touch

	mu    sync.Mutex
	queue []*PointerEvent
}

// NewStage creates a stage with an empty root box.
func NewStage() *Stage {
	s := &Stage{root: &Box{Name: "root"}}
	s.root.stage = s
	return s
}

// Root returns the root box.
func (s *Stage) Root() *Box {
	return s.root
}

// Listen implements [Surface].
func (s *Stage) Listen(family EventFamily, kind EventKind, fn func(*PointerEvent)) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, stageListener{id: id, family: family, kind: kind, fn: fn})
	return func() {
		for i := range s.listeners {
			if s.listeners[i].id == id {
				copy(s.listeners[i:], s.listeners[i+1:])
				s.listeners[len(s.listeners)-1] = stageListener{}
				s.listeners = s.listeners[:len(s.listeners)-1]
				return
			}
		}
	}
}

// BlockSelection implements [Surface]. Ebiten has no text selection to
// suppress; the flag is kept for hosts that render selectable content.
func (s *Stage) BlockSelection(block bool) {
	s.selectionBlocked = block
}

// SelectionBlocked reports whether a drag currently holds the selection
// guard.
func (s *Stage) SelectionBlocked() bool {
	return s.selectionBlocked
}

// Inject queues an externally synthesized event for dispatch on the next
// Update. Safe to call from other goroutines.
func (s *Stage) Inject(e *PointerEvent) {
	s.mu.Lock()
	s.queue = append(s.queue, e)
	s.mu.Unlock()
}

// SynthesizeRelease implements [ReleaseSynthesizer] for the mouse family:
// the release travels the normal dispatch path and the still-held physical
// button is swallowed when it actually comes up. Touch releases cannot be
// synthesized here (touch state is owned by the per-frame poll), so touch
// callers fall back to direct construction.
func (s *Stage) SynthesizeRelease(family EventFamily) error {
	if family != FamilyMouse {
		return fmt.Errorf("stage cannot synthesize a release for family %d", family)
	}
	if !s.mouseDown {
		return fmt.Errorf("no mouse press to release")
	}
	s.mouseSynthesized = true
	s.dispatch(&PointerEvent{
		Kind:   KindRelease,
		Family: FamilyMouse,
		Button: s.mouseButton,
		X:      s.mouseX,
		Y:      s.mouseY,
	})
	return nil
}

// Update drains injected events and polls ebiten input. Call once per frame.
func (s *Stage) Update() {
	s.drainQueue()
	s.pollMouse()
	s.pollTouches()
}

func (s *Stage) drainQueue() {
	s.mu.Lock()
	queued := s.queue
	s.queue = nil
	s.mu.Unlock()
	for _, e := range queued {
		s.dispatch(e)
	}
}

// pollMouse translates ebiten mouse state into press/move/release edges.
func (s *Stage) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	// If the pointer is already down, keep the stored button.
	var pressed bool
	button := s.mouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if !s.mouseDown {
			switch {
			case left:
				button = MouseButtonLeft
			case right:
				button = MouseButtonRight
			default:
				button = MouseButtonMiddle
			}
		}
	}

	moved := x != s.mouseX || y != s.mouseY
	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
		s.mouseButton = button
		s.mouseX, s.mouseY = x, y
		s.dispatch(&PointerEvent{Kind: KindPress, Family: FamilyMouse, Button: button, X: x, Y: y})
	case !pressed && s.mouseDown:
		s.mouseDown = false
		synthesized := s.mouseSynthesized
		s.mouseSynthesized = false
		s.mouseX, s.mouseY = x, y
		if !synthesized {
			s.dispatch(&PointerEvent{Kind: KindRelease, Family: FamilyMouse, Button: button, X: x, Y: y})
		}
	case moved:
		s.mouseX, s.mouseY = x, y
		s.dispatch(&PointerEvent{Kind: KindMove, Family: FamilyMouse, Button: button, X: x, Y: y})
	}
}

// pollTouches diffs the active touch set against the previous frame and
// dispatches one press/release per edge and at most one move per frame.
func (s *Stage) pollTouches() {
	s.touchScratch = ebiten.AppendTouchIDs(s.touchScratch[:0])
	cur := s.touchBuf[:0]
	for _, tid := range s.touchScratch {
		tx, ty := ebiten.TouchPosition(tid)
		cur = append(cur, Touch{ID: int64(tid), X: float64(tx), Y: float64(ty)})
	}

	for _, t := range cur {
		if _, ok := findTouch(s.touches, t.ID); !ok {
			s.dispatch(&PointerEvent{Kind: KindPress, Family: FamilyTouch, Touches: cur, TouchID: t.ID})
		}
	}

	for _, t := range cur {
		if prev, ok := findTouch(s.touches, t.ID); ok && (prev.X != t.X || prev.Y != t.Y) {
			s.dispatch(&PointerEvent{Kind: KindMove, Family: FamilyTouch, Touches: cur})
			break
		}
	}

	for _, prev := range s.touches {
		if _, ok := findTouch(cur, prev.ID); !ok {
			// Release events carry the ended touch at its final position.
			ended := append(append([]Touch(nil), cur...), prev)
			s.dispatch(&PointerEvent{Kind: KindRelease, Family: FamilyTouch, Touches: ended, TouchID: prev.ID})
		}
	}

	s.touches, s.touchBuf = cur, s.touches[:0]
}

// dispatch resolves a missing press target by hit test, then fans the
// event out to matching listeners. Iteration runs over a snapshot so
// listeners may register or deregister during delivery.
func (s *Stage) dispatch(e *PointerEvent) {
	if e.Kind == KindPress && e.Target == nil {
		x, y := e.X, e.Y
		if e.Family == FamilyTouch {
			if t, ok := findTouch(e.Touches, e.TouchID); ok {
				x, y = t.X, t.Y
			}
		}
		if hit := s.hitTest(x, y); hit != nil {
			e.Target = hit
		}
	}
	snapshot := append([]stageListener(nil), s.listeners...)
	for _, l := range snapshot {
		if l.family == e.Family && l.kind == e.Kind {
			l.fn(e)
		}
	}
}

// hitTest finds the topmost box at (x, y), or nil.
func (s *Stage) hitTest(x, y float64) *Box {
	return hitBox(s.root, x, y)
}

// hitBox walks children in reverse order so topmost boxes win.
func hitBox(b *Box, x, y float64) *Box {
	for i := len(b.children) - 1; i >= 0; i-- {
		if hit := hitBox(b.children[i], x, y); hit != nil {
			return hit
		}
	}
	if b.contains(x, y) {
		return b
	}
	return nil
}
