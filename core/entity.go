package core

// Entity is a stable identifier for a level object
type Entity uint64

// Facing is a horizontal sprite orientation
type Facing int8

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)
