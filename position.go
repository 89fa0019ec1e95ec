package grip

// resolvePosition extracts the gesture position from a raw event in the
// drag's logical coordinate space: relative to the origin of frame (nil
// means surface origin) and divided by scale.
//
// For the touch family, the touch whose identifier equals touchID is used;
// ok is false when the event no longer carries it, which signals that the
// gesture is no longer valid and the caller's step must abort without
// mutating state. Reads nothing but its arguments and element geometry.
func resolvePosition(e *PointerEvent, touchID int64, frame Element, scale float64) (x, y float64, ok bool) {
	px, py := e.X, e.Y
	if e.Family == FamilyTouch {
		t, found := findTouch(e.Touches, touchID)
		if !found {
			return 0, 0, false
		}
		px, py = t.X, t.Y
	}

	var ox, oy float64
	if frame != nil {
		ox, oy = frame.Origin()
	}
	if scale <= 0 {
		scale = 1
	}
	return (px - ox) / scale, (py - oy) / scale, true
}
