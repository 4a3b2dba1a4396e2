package constants

const (
	// Scroll physics defaults. Offsets are in points; one agenda card is
	// ScrollPerInterval points tall.
	ScrollBase        = 50.0  // maximum offset with an empty agenda
	ScrollPerInterval = 60.0  // added to the maximum offset per interval
	ElasticThreshold  = 80.0  // asymptotic overshoot limit past either bound
	ReleaseDecay      = 0.2   // seconds of velocity projected on release
	SpringStiffness   = 150.0 // settle spring stiffness (unit mass)
	SpringDamping     = 15.0  // settle spring damping
	DragSensitivity   = 1.5   // input delta multiplier while dragging
	WheelSensitivity  = 2.0   // input delta multiplier for wheel steps
)
