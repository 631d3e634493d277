package component

type Camera struct {
	TargetName string
	Zoom       float64
	// Smoothness is the fraction of the remaining distance left after one
	// second; 0 snaps to the target.
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
