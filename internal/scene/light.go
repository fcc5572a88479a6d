package scene

import "github.com/san-kum/starfall/internal/dynamo"

// Light is the transient point light that flashes at the moment of collision.
type Light struct {
	Position  dynamo.Vec3
	Color     uint32
	Intensity float64
	Range     float64
}

func (*Light) Kind() Kind { return KindFlash }

// RGB splits a 0xRRGGBB color into its channels.
func RGB(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}
