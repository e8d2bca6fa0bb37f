package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources such as the audio device
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - configuration from the loaded config
//  3. Start() - acquire devices, launch goroutines
//  4. [runtime operation]
//  5. Stop() - release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// ResourcePublisher is a callback for services to contribute host capabilities
// Services call this with the capability; receiver handles type routing
type ResourcePublisher func(resource any)

// ResourceContributor is implemented by services that expose capabilities to the world
// Optional interface - services not implementing it are skipped during contribution
type ResourceContributor interface {
	Contribute(publish ResourcePublisher)
}
