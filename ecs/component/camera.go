package component

// Camera follows a target entity. ViewW/ViewH are the logical screen size.
type Camera struct {
	Zoom       float64
	Smoothness float64
	ViewW      float64
	ViewH      float64
}

var CameraComponent = NewComponent[Camera]()
