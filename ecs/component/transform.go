package component

// Transform is the render position. For physics bodies with AlignTopLeft it
// is the collider's top-left corner.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
