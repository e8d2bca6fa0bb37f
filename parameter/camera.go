package parameter

// Camera follow configuration for the sandbox host
const (
	// CameraFollowLerp is the per-tick blend toward the follow target
	CameraFollowLerp = 0.2

	// CameraEnabled controls whether camera following is active
	// When false, camera stays at (0,0) regardless of actor position
	CameraEnabled = true
)
