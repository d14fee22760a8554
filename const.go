package srp

import "time"

type statusCode int

const (
	accepted statusCode = iota
	duplicateDelivered
	duplicateBuffered
	outOfWindow
)

const (
	defaultBaseTimeout  = 1 * time.Second
	defaultGrowthFactor = 1.5
	defaultRetryCap     = 4

	defaultStallThreshold    = 4 * time.Second
	defaultStallGrowth       = 1.5
	defaultMaxStallThreshold = 10 * time.Second

	defaultDeadline     = 30 * time.Second
	defaultTickInterval = 5 * time.Millisecond
)
