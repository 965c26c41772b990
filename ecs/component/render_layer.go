package component

// Draw order for the scene, lowest first.
const (
	LayerBackground = 0
	LayerTiles      = 10
	LayerHazards    = 20
	LayerPlayer     = 30
)

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
