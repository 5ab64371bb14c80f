package camera

// CameraInputOption is a functional option for configuring a CameraInput.
type CameraInputOption func(*CameraInput)

// WithDistance sets the initial orbit radius.
//
// Parameters:
//   - distance: distance from the origin
//
// Returns:
//   - CameraInputOption: functional option to set the distance
func WithDistance(distance float32) CameraInputOption {
	return func(c *CameraInput) {
		c.Distance = distance
	}
}

// WithYawPitch sets the initial orbit angles.
//
// Parameters:
//   - yaw: horizontal angle in radians
//   - pitch: elevation in radians
//
// Returns:
//   - CameraInputOption: functional option to set the angles
func WithYawPitch(yaw, pitch float32) CameraInputOption {
	return func(c *CameraInput) {
		c.Yaw = yaw
		c.Pitch = pitch
	}
}

// WithSensitivity sets the radians of rotation per pixel of pointer movement.
func WithSensitivity(sensitivity float32) CameraInputOption {
	return func(c *CameraInput) {
		c.sensitivity = sensitivity
	}
}

// WithZoom sets the zoom speed per wheel unit and the distance limits.
//
// Parameters:
//   - speed: distance change per wheel unit
//   - minDistance: the closest allowed orbit radius
//   - maxDistance: the farthest allowed orbit radius
//
// Returns:
//   - CameraInputOption: functional option to set zoom behaviour
func WithZoom(speed, minDistance, maxDistance float32) CameraInputOption {
	return func(c *CameraInput) {
		c.zoomSpeed = speed
		c.minDistance = minDistance
		c.maxDistance = maxDistance
	}
}
