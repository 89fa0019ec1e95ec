package grip

// Shared test doubles: a recording surface and a minimal element tree.

type fakeListener struct {
	id     uint32
	family EventFamily
	kind   EventKind
	fn     func(*PointerEvent)
}

type fakeSurface struct {
	ls     []fakeListener
	nextID uint32

	blocked  bool
	blockLog []bool
}

func (s *fakeSurface) Listen(family EventFamily, kind EventKind, fn func(*PointerEvent)) func() {
	s.nextID++
	id := s.nextID
	s.ls = append(s.ls, fakeListener{id: id, family: family, kind: kind, fn: fn})
	return func() {
		for i := range s.ls {
			if s.ls[i].id == id {
				s.ls = append(s.ls[:i], s.ls[i+1:]...)
				return
			}
		}
	}
}

func (s *fakeSurface) BlockSelection(block bool) {
	s.blocked = block
	s.blockLog = append(s.blockLog, block)
}

// dispatch fans an event out like a real surface, iterating a snapshot so
// listeners may register or remove during delivery.
func (s *fakeSurface) dispatch(e *PointerEvent) {
	snapshot := append([]fakeListener(nil), s.ls...)
	for _, l := range snapshot {
		if l.family == e.Family && l.kind == e.Kind {
			l.fn(e)
		}
	}
}

// count returns the number of listeners for a family and kind.
func (s *fakeSurface) count(family EventFamily, kind EventKind) int {
	n := 0
	for _, l := range s.ls {
		if l.family == family && l.kind == kind {
			n++
		}
	}
	return n
}

// pairs returns the number of move+release listener pairs across families.
func (s *fakeSurface) pairs() int {
	moves := s.count(FamilyMouse, KindMove) + s.count(FamilyTouch, KindMove)
	releases := s.count(FamilyMouse, KindRelease) + s.count(FamilyTouch, KindRelease)
	if moves < releases {
		return moves
	}
	return releases
}

// fakeSynthSurface adds the ReleaseSynthesizer capability: a successful
// synthesis dispatches a release at releaseAt through the listener path.
type fakeSynthSurface struct {
	fakeSurface
	synthErr  error
	synthed   []EventFamily
	releaseAt Vec2
}

func (s *fakeSynthSurface) SynthesizeRelease(family EventFamily) error {
	s.synthed = append(s.synthed, family)
	if s.synthErr != nil {
		return s.synthErr
	}
	s.dispatch(&PointerEvent{
		Kind: KindRelease, Family: family,
		X: s.releaseAt.X, Y: s.releaseAt.Y,
	})
	return nil
}

type fakeElement struct {
	name    string
	id      string
	classes []string

	x, y, w, h float64 // x, y relative to parent

	parent *fakeElement
	surf   Surface
}

func (e *fakeElement) Parent() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *fakeElement) Matches(selector string) bool {
	return MatchSelector(selector, e.name, e.id, e.classes)
}

func (e *fakeElement) Surface() Surface {
	return e.surf
}

func (e *fakeElement) Origin() (float64, float64) {
	x, y := e.x, e.y
	for p := e.parent; p != nil; p = p.parent {
		x += p.x
		y += p.y
	}
	return x, y
}

func (e *fakeElement) Size() (float64, float64) {
	return e.w, e.h
}

// newRig builds a surface with a parent at the surface origin and a
// 100x50 element bound to a fresh core.
func newRig(opts Options) (*fakeSurface, *fakeElement, *Core) {
	surf := &fakeSurface{}
	parent := &fakeElement{name: "parent", surf: surf}
	el := &fakeElement{name: "el", parent: parent, surf: surf, w: 100, h: 50}
	c := New(opts)
	c.Attach(el)
	return surf, el, c
}

// --- Event constructors ---

func mousePress(target Element, x, y float64) *PointerEvent {
	return &PointerEvent{Kind: KindPress, Family: FamilyMouse, Target: target, Button: MouseButtonLeft, X: x, Y: y}
}

func mouseMove(x, y float64) *PointerEvent {
	return &PointerEvent{Kind: KindMove, Family: FamilyMouse, X: x, Y: y}
}

func mouseRelease(x, y float64) *PointerEvent {
	return &PointerEvent{Kind: KindRelease, Family: FamilyMouse, X: x, Y: y}
}

func touchPress(target Element, id int64, x, y float64) *PointerEvent {
	return &PointerEvent{
		Kind: KindPress, Family: FamilyTouch, Target: target,
		Touches: []Touch{{ID: id, X: x, Y: y}}, TouchID: id,
	}
}

func touchMove(touches ...Touch) *PointerEvent {
	return &PointerEvent{Kind: KindMove, Family: FamilyTouch, Touches: touches}
}

func touchRelease(id int64, touches ...Touch) *PointerEvent {
	return &PointerEvent{Kind: KindRelease, Family: FamilyTouch, Touches: touches, TouchID: id}
}
