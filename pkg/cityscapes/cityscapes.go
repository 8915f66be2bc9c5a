// Package cityscapes defines the fixed 19-class Cityscapes taxonomy used by
// the segmentation model, plus the derived class subsets relevant to sidewalk
// analysis. The vocabulary is closed: class ids outside [0, NumClasses) are
// unknown and callers are expected to skip them rather than fail.
package cityscapes

// Class identifies one of the 19 Cityscapes semantic classes. The numeric
// value is the class id emitted by the segmentation model.
type Class int

// The Cityscapes classes, in model output order.
const (
	Road Class = iota
	Sidewalk
	Building
	Wall
	Fence
	Pole
	TrafficLight
	TrafficSign
	Vegetation
	Terrain
	Sky
	Person
	Rider
	Car
	Truck
	Bus
	Train
	Motorcycle
	Bicycle
)

// NumClasses is the size of the class vocabulary.
const NumClasses = 19

var classNames = [NumClasses]string{
	"road", "sidewalk", "building", "wall", "fence", "pole",
	"traffic light", "traffic sign", "vegetation", "terrain",
	"sky", "person", "rider", "car", "truck", "bus", "train",
	"motorcycle", "bicycle",
}

// SidewalkClasses are the walkable-surface classes.
var SidewalkClasses = []Class{Sidewalk, Road}

// ObstructionClasses are the classes that block a pedestrian path. The order
// is fixed and determines the order of obstruction reporting downstream.
var ObstructionClasses = []Class{Car, Truck, Bus, Motorcycle, Bicycle, Person}

// VegetationClasses are the greenery classes.
var VegetationClasses = []Class{Vegetation, Terrain}

// Valid reports whether c is within the known vocabulary.
func (c Class) Valid() bool {
	return c >= 0 && c < NumClasses
}

// String returns the class name, or "unknown" for ids outside the vocabulary.
func (c Class) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return classNames[c]
}

// FromID maps a raw model class id to a Class. ok is false for ids outside
// the vocabulary; such ids are a deliberate no-op for callers.
func FromID(id int) (Class, bool) {
	c := Class(id)
	return c, c.Valid()
}
