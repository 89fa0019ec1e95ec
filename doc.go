// Package grip is a reusable drag-interaction engine.
//
// Grip tracks press-move-release gestures on one bound element at a time,
// unifying mouse and touch input streams, and reports normalized drag
// coordinates to a host component. The host owns layout and rendering;
// grip owns the gesture state machine, coordinate resolution against an
// optional offset frame and scale factor, grid quantization, and cancelable
// lifecycle callbacks.
//
// # Quick start
//
// Bind a [Core] to an element and subscribe to drag ticks:
//
//	stage := grip.NewStage()
//	box := grip.NewBox("card", 80, 40)
//	stage.Root().AddChild(box)
//
//	core := grip.New(grip.Options{ApplyDefault: true})
//	core.Attach(box)
//	core.OnDrag(func(e *grip.PointerEvent, d grip.DragEvent) {
//		box.X += d.DeltaX
//		box.Y += d.DeltaY
//	})
//
// Call stage.Update from your ebiten.Game.Update each frame; grip handles
// the rest. See examples/boxdrag for a complete host.
//
// # Vetoes
//
// The [Options.OnStart], [Options.OnMove], and [Options.OnStop] callbacks
// run before the corresponding transition commits and may return
// [VerdictReject] to veto it: a vetoed start never begins dragging, a
// vetoed move synthesizes a release so the gesture ends cleanly, and a
// vetoed stop keeps the gesture alive past the user's release.
//
// # Surfaces
//
// Input reaches the engine through the [Surface] and [Element] interfaces.
// [Stage] is the built-in [Ebitengine] surface; tcelldriver provides a
// terminal surface over tcell mouse events; the remote package feeds
// events from a websocket. Hosts with their own input layer implement the
// two interfaces directly.
//
// [Ebitengine]: https://ebitengine.org
package grip
