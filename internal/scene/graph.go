package scene

type Kind int

const (
	KindStar Kind = iota
	KindFragment
	KindFlash
	KindBackdrop
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindFragment:
		return "fragment"
	case KindFlash:
		return "flash"
	case KindBackdrop:
		return "backdrop"
	default:
		return "unknown"
	}
}

// Object is anything that can be placed in a Graph.
type Object interface {
	Kind() Kind
}

// Surface draws a graph. Draw is called once per rendered frame.
type Surface interface {
	Draw(g *Graph, cam *Camera)
	Resize(width, height int)
}

type Graph struct {
	objects []Object
	surface Surface
	camera  *Camera
	width   int
	height  int
	frames  int
}

func NewGraph(surface Surface) *Graph {
	return &Graph{
		objects: make([]Object, 0, 512),
		surface: surface,
		camera:  NewCamera(),
	}
}

// Ready reports whether the graph has a surface to draw on.
func (g *Graph) Ready() bool { return g != nil && g.surface != nil }

func (g *Graph) Camera() *Camera { return g.camera }
func (g *Graph) Frames() int     { return g.frames }
func (g *Graph) Len() int        { return len(g.objects) }

// Objects returns the graph contents in insertion order. The slice is shared.
func (g *Graph) Objects() []Object { return g.objects }

func (g *Graph) Add(obj Object) {
	if obj == nil || g.Contains(obj) {
		return
	}
	g.objects = append(g.objects, obj)
}

func (g *Graph) Remove(obj Object) {
	for i, o := range g.objects {
		if o == obj {
			copy(g.objects[i:], g.objects[i+1:])
			g.objects[len(g.objects)-1] = nil
			g.objects = g.objects[:len(g.objects)-1]
			return
		}
	}
}

func (g *Graph) Contains(obj Object) bool {
	for _, o := range g.objects {
		if o == obj {
			return true
		}
	}
	return false
}

func (g *Graph) Count(kind Kind) int {
	n := 0
	for _, o := range g.objects {
		if o.Kind() == kind {
			n++
		}
	}
	return n
}

// Render hands the current frame to the surface.
func (g *Graph) Render() {
	g.frames++
	if g.surface != nil {
		g.surface.Draw(g, g.camera)
	}
}

// Resize forwards a viewport change to the camera and the surface.
func (g *Graph) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.camera.Resize(width, height)
	if g.surface != nil {
		g.surface.Resize(width, height)
	}
}

func (g *Graph) Size() (int, int) { return g.width, g.height }

// Recorder is a surface that only counts what it was asked to draw.
// Headless runs and tests use it.
type Recorder struct {
	Draws         int
	LastObjects   int
	Width, Height int
}

func (r *Recorder) Draw(g *Graph, _ *Camera) {
	r.Draws++
	r.LastObjects = g.Len()
}

func (r *Recorder) Resize(width, height int) {
	r.Width, r.Height = width, height
}
