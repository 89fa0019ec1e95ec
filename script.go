package grip

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ID     int64   `json:"id,omitempty"`     // touch identifier for touch actions
	Button int     `json:"button,omitempty"` // mouse button for press
}

// gestureScript is the top-level JSON structure.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a recorded pointer sequence into an [Injector]. Scripts
// drive gestures in tests and demos without a physical input device.
//
// Supported actions: "press", "move", "release" (mouse family, using x/y
// and an optional button), and "touchpress", "touchmove", "touchrelease"
// (touch family, using x/y plus a touch id). Touch steps maintain the
// active touch set across steps so multi-touch events carry the full list.
type Script struct {
	steps   []scriptStep
	touches []Touch
}

// LoadScript parses a JSON gesture script.
func LoadScript(data []byte) (*Script, error) {
	var script gestureScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	return &Script{steps: script.Steps}, nil
}

// Run injects every step in order. It stops at the first unknown action.
func (s *Script) Run(inj Injector) error {
	for i, step := range s.steps {
		e, err := s.event(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		inj.Inject(e)
	}
	return nil
}

// event translates one step, updating the tracked touch set.
func (s *Script) event(step scriptStep) (*PointerEvent, error) {
	switch step.Action {
	case "press":
		return &PointerEvent{
			Kind: KindPress, Family: FamilyMouse,
			Button: MouseButton(step.Button), X: step.X, Y: step.Y,
		}, nil
	case "move":
		return &PointerEvent{
			Kind: KindMove, Family: FamilyMouse,
			X: step.X, Y: step.Y,
		}, nil
	case "release":
		return &PointerEvent{
			Kind: KindRelease, Family: FamilyMouse,
			Button: MouseButton(step.Button), X: step.X, Y: step.Y,
		}, nil
	case "touchpress":
		s.setTouch(Touch{ID: step.ID, X: step.X, Y: step.Y})
		return &PointerEvent{
			Kind: KindPress, Family: FamilyTouch,
			Touches: s.snapshot(), TouchID: step.ID,
		}, nil
	case "touchmove":
		s.setTouch(Touch{ID: step.ID, X: step.X, Y: step.Y})
		return &PointerEvent{
			Kind: KindMove, Family: FamilyTouch,
			Touches: s.snapshot(),
		}, nil
	case "touchrelease":
		s.setTouch(Touch{ID: step.ID, X: step.X, Y: step.Y})
		// The ended touch stays in this event's list at its final
		// position, then leaves the tracked set.
		ended := s.snapshot()
		s.dropTouch(step.ID)
		return &PointerEvent{
			Kind: KindRelease, Family: FamilyTouch,
			Touches: ended, TouchID: step.ID,
		}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", step.Action)
	}
}

func (s *Script) setTouch(t Touch) {
	for i := range s.touches {
		if s.touches[i].ID == t.ID {
			s.touches[i] = t
			return
		}
	}
	s.touches = append(s.touches, t)
}

func (s *Script) dropTouch(id int64) {
	for i := range s.touches {
		if s.touches[i].ID == id {
			s.touches = append(s.touches[:i], s.touches[i+1:]...)
			return
		}
	}
}

func (s *Script) snapshot() []Touch {
	return append([]Touch(nil), s.touches...)
}
