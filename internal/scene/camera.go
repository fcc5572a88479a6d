package scene

import (
	"math"

	"github.com/san-kum/starfall/internal/dynamo"
)

const (
	DefaultFOV  = 75.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
	DefaultZ    = 30.0
)

// Camera is a perspective camera on the Z axis looking toward the origin.
type Camera struct {
	Position  dynamo.Vec3
	FOV       float64 // vertical, degrees
	Near, Far float64
	Aspect    float64
	Zoom      float64
}

func NewCamera() *Camera {
	return &Camera{
		Position: dynamo.Vec3{Z: DefaultZ},
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Aspect:   1,
		Zoom:     1,
	}
}

func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Focal returns the projection scale at unit depth.
func (c *Camera) Focal() float64 {
	return c.Zoom / math.Tan(c.FOV*math.Pi/360)
}

// Project converts world coordinates to screen coordinates on a sw x sh surface.
// It returns x, y, the depth in front of the camera, and whether the point is
// inside the frustum and on screen.
func (c *Camera) Project(p dynamo.Vec3, sw, sh int) (int, int, float64, bool) {
	rel := p.Sub(c.Position)
	depth := -rel.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	f := c.Focal()
	ndcX := rel.X * f / (c.Aspect * depth)
	ndcY := rel.Y * f / depth
	sx := int(math.Floor((ndcX + 1) / 2 * float64(sw)))
	sy := int(math.Floor((1 - ndcY) / 2 * float64(sh)))
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// ProjectRadius returns the on-screen radius, in surface pixels, of a sphere of
// radius r at the given depth.
func (c *Camera) ProjectRadius(r, depth float64, sh int) float64 {
	if depth <= 0 {
		return 0
	}
	return r * c.Focal() / depth * float64(sh) / 2
}
