package grip

import "math"

// snapToGrid rounds a delta vector to the nearest multiple of the grid cell
// size on each axis. A non-positive cell size leaves that axis unsnapped.
// Callers must treat a (0, 0) result as a no-op tick so that movement
// smaller than one cell produces no jitter.
func snapToGrid(grid Vec2, dx, dy float64) (float64, float64) {
	if grid.X > 0 {
		dx = math.Round(dx/grid.X) * grid.X
	}
	if grid.Y > 0 {
		dy = math.Round(dy/grid.Y) * grid.Y
	}
	return dx, dy
}
