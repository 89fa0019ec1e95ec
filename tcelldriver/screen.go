// Package tcelldriver adapts a tcell terminal screen to a grip.Surface,
// so drag gestures work on cell-based UIs. Only the mouse family exists in
// a terminal; touch listeners simply never fire.
package tcelldriver

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/grip"
)

var errNoPress = errors.New("no mouse press to release")

// --- Region ---

// Region is a rectangular element over terminal cells. Position is
// relative to the parent; later siblings hit-test above earlier ones.
type Region struct {
	Name    string
	ID      string
	Classes []string

	X, Y int // cells, relative to parent
	W, H int

	parent   *Region
	children []*Region
	screen   *Screen
}

// NewRegion creates a detached region.
func NewRegion(name string, w, h int) *Region {
	return &Region{Name: name, W: w, H: h}
}

// AddChild appends child to r's children, on top of existing siblings.
func (r *Region) AddChild(child *Region) {
	child.parent = r
	r.children = append(r.children, child)
	if r.screen != nil {
		child.setScreen(r.screen)
	}
}

func (r *Region) setScreen(s *Screen) {
	r.screen = s
	for _, c := range r.children {
		c.setScreen(s)
	}
}

// Parent returns the region's parent element, or nil at the root.
func (r *Region) Parent() grip.Element {
	if r.parent == nil {
		return nil
	}
	return r.parent
}

// Matches reports whether the region matches a selector.
func (r *Region) Matches(selector string) bool {
	return grip.MatchSelector(selector, r.Name, r.ID, r.Classes)
}

// Surface returns the owning screen, or nil for a detached region.
func (r *Region) Surface() grip.Surface {
	if r.screen == nil {
		return nil
	}
	return r.screen
}

// Origin returns the region's top-left cell in screen coordinates.
func (r *Region) Origin() (float64, float64) {
	x, y := r.X, r.Y
	for p := r.parent; p != nil; p = p.parent {
		x += p.X
		y += p.Y
	}
	return float64(x), float64(y)
}

// Size returns the region's dimensions in cells.
func (r *Region) Size() (float64, float64) {
	return float64(r.W), float64(r.H)
}

func (r *Region) contains(x, y int) bool {
	if r.W <= 0 && r.H <= 0 {
		return false
	}
	ox, oy := r.Origin()
	return x >= int(ox) && x < int(ox)+r.W && y >= int(oy) && y < int(oy)+r.H
}

// --- Screen ---

type listener struct {
	id     uint32
	family grip.EventFamily
	kind   grip.EventKind
	fn     func(*grip.PointerEvent)
}

// Screen wraps a tcell.Screen as a grip.Surface. Feed it the events from
// your poll loop:
//
//	for {
//		ev := ts.PollEvent()
//		if screen.HandleEvent(ev) {
//			continue
//		}
//		// ... keys, resize, ...
//	}
type Screen struct {
	screen    tcell.Screen // nil in tests
	root      *Region
	listeners []listener
	nextID    uint32

	selectionBlocked bool

	// Previous button mask for press/release edge detection; the button is
	// captured at press time.
	buttons      tcell.ButtonMask
	button       grip.MouseButton
	lastX, lastY int
}

// New wraps ts, enabling mouse reporting. A nil ts is allowed for driving
// the screen purely through HandleEvent or Inject.
func New(ts tcell.Screen) *Screen {
	if ts != nil {
		ts.EnableMouse()
	}
	s := &Screen{screen: ts, root: &Region{Name: "root"}}
	s.root.screen = s
	return s
}

// Root returns the root region.
func (s *Screen) Root() *Region {
	return s.root
}

// Listen implements grip.Surface.
func (s *Screen) Listen(family grip.EventFamily, kind grip.EventKind, fn func(*grip.PointerEvent)) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, family: family, kind: kind, fn: fn})
	return func() {
		for i := range s.listeners {
			if s.listeners[i].id == id {
				copy(s.listeners[i:], s.listeners[i+1:])
				s.listeners[len(s.listeners)-1] = listener{}
				s.listeners = s.listeners[:len(s.listeners)-1]
				return
			}
		}
	}
}

// BlockSelection implements grip.Surface. Terminals have no native text
// selection to suppress; the flag is kept for hosts that implement one.
func (s *Screen) BlockSelection(block bool) {
	s.selectionBlocked = block
}

// SelectionBlocked reports whether a drag currently holds the selection
// guard.
func (s *Screen) SelectionBlocked() bool {
	return s.selectionBlocked
}

// Inject implements grip.Injector. Events dispatch synchronously; call it
// from the goroutine that runs the event loop.
func (s *Screen) Inject(e *grip.PointerEvent) {
	s.dispatch(e)
}

// SynthesizeRelease implements grip.ReleaseSynthesizer for the mouse
// family.
func (s *Screen) SynthesizeRelease(family grip.EventFamily) error {
	if family != grip.FamilyMouse || s.buttons == tcell.ButtonNone {
		return errNoPress
	}
	s.buttons = tcell.ButtonNone
	s.dispatch(&grip.PointerEvent{
		Kind:   grip.KindRelease,
		Family: grip.FamilyMouse,
		Button: s.button,
		X:      float64(s.lastX),
		Y:      float64(s.lastY),
	})
	return nil
}

// HandleEvent translates a tcell mouse event into pointer events and
// reports whether it consumed ev. Non-mouse events are ignored.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	m, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	x, y := m.Position()
	mask := m.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	prev := s.buttons

	moved := x != s.lastX || y != s.lastY
	s.lastX, s.lastY = x, y

	switch {
	case mask != tcell.ButtonNone && prev == tcell.ButtonNone:
		s.buttons = mask
		s.button = convertButton(mask)
		s.dispatch(&grip.PointerEvent{
			Kind: grip.KindPress, Family: grip.FamilyMouse,
			Button: s.button, X: float64(x), Y: float64(y),
		})
	case mask == tcell.ButtonNone && prev != tcell.ButtonNone:
		s.buttons = tcell.ButtonNone
		s.dispatch(&grip.PointerEvent{
			Kind: grip.KindRelease, Family: grip.FamilyMouse,
			Button: s.button, X: float64(x), Y: float64(y),
		})
	case moved:
		s.dispatch(&grip.PointerEvent{
			Kind: grip.KindMove, Family: grip.FamilyMouse,
			Button: s.button, X: float64(x), Y: float64(y),
		})
	}
	return true
}

func (s *Screen) dispatch(e *grip.PointerEvent) {
	if e.Kind == grip.KindPress && e.Target == nil {
		if hit := s.hitTest(int(e.X), int(e.Y)); hit != nil {
			e.Target = hit
		}
	}
	// Snapshot so listeners may deregister during delivery.
	snapshot := append([]listener(nil), s.listeners...)
	for _, l := range snapshot {
		if l.family == e.Family && l.kind == e.Kind {
			l.fn(e)
		}
	}
}

// hitTest finds the topmost region at (x, y) in cells, or nil.
func (s *Screen) hitTest(x, y int) *Region {
	return hitRegion(s.root, x, y)
}

func hitRegion(r *Region, x, y int) *Region {
	for i := len(r.children) - 1; i >= 0; i-- {
		if hit := hitRegion(r.children[i], x, y); hit != nil {
			return hit
		}
	}
	if r.contains(x, y) {
		return r
	}
	return nil
}

// convertButton converts a tcell button mask to a grip.MouseButton.
// Button2 is the secondary (right) button in tcell's numbering.
func convertButton(b tcell.ButtonMask) grip.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return grip.MouseButtonLeft
	case b&tcell.Button2 != 0:
		return grip.MouseButtonRight
	default:
		return grip.MouseButtonMiddle
	}
}
