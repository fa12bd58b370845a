package scene

// Component is the closed set of payload kinds a tagged arena slot can hold.
// The set is sealed: adding a kind means adding a type here, extending
// ComponentKind and KindOf, and widening the kinds constraint — not
// subclassing or registering at runtime.
type Component interface {
	isComponent()
}

// kinds mirrors the Component set for the generic accessors. Keeping it as a
// type-union constraint makes Get[T] and IterKind[T] reject kinds outside
// the closed set at compile time.
type kinds interface {
	Shape | Style | Transform | Text
}

// ComponentKind is the discriminant identifying which payload kind a
// Component carries.
type ComponentKind uint8

const (
	KindShape ComponentKind = iota
	KindStyle
	KindTransform
	KindText

	kindCount = 4
)

func (k ComponentKind) String() string {
	switch k {
	case KindShape:
		return "Shape"
	case KindStyle:
		return "Style"
	case KindTransform:
		return "Transform"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// KindOf returns the discriminant for a component value.
func KindOf(c Component) ComponentKind {
	switch c.(type) {
	case *Shape:
		return KindShape
	case *Style:
		return KindStyle
	case *Transform:
		return KindTransform
	case *Text:
		return KindText
	default:
		panic("scene: component type outside the closed variant set")
	}
}

// ShapeKind selects the geometry a Shape node renders as.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
	ShapeRoundedRect
	ShapeTriangle
)

// CornerRadius holds a per-corner radius for rounded rectangles.
type CornerRadius struct {
	TopLeft  float32
	BotLeft  float32
	BotRight float32
	TopRight float32
}

// UniformCorner returns a CornerRadius with the same radius on every corner.
func UniformCorner(r float32) CornerRadius {
	return CornerRadius{TopLeft: r, BotLeft: r, BotRight: r, TopRight: r}
}

// Shape describes the geometry of a drawable node.
type Shape struct {
	Kind   ShapeKind
	Corner CornerRadius
}

func (*Shape) isComponent() {}

// RGBA is a straight-alpha color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Style describes how a node's geometry is painted.
type Style struct {
	Fill        RGBA
	Stroke      RGBA
	StrokeWidth float32
}

func (*Style) isComponent() {}

// Transform holds a node's placement: position and size in logical pixels,
// rotation in radians around the node center. Layout writes computed values
// here; the renderer and hit-testing read them.
type Transform struct {
	X, Y          float32
	Width, Height float32
	Rotation      float32
}

func (*Transform) isComponent() {}

// Contains reports whether the point lies inside the transform's axis-aligned
// bounds. Rotation is ignored; hit-testing treats rotated nodes by their
// bounding box.
func (t *Transform) Contains(x, y float32) bool {
	return x >= t.X && x < t.X+t.Width &&
		y >= t.Y && y < t.Y+t.Height
}

// Text holds the textual content of a label node.
type Text struct {
	Content  string
	FontSize float32
}

func (*Text) isComponent() {}
