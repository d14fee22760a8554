package srp

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config describes a single simulation run. WindowSize, LossProbability and
// TotalPackets must be set; every other field falls back to a default.
type Config struct {
	WindowSize      int
	LossProbability float64
	TotalPackets    int

	// Seed feeds the loss source, making runs reproducible.
	Seed int64

	BaseTimeout  time.Duration
	GrowthFactor float64
	RetryCap     int

	StallThreshold    time.Duration
	StallGrowth       float64
	MaxStallThreshold time.Duration

	Deadline     time.Duration
	TickInterval time.Duration

	Clock  Clock
	Logger *zap.Logger
}

func (conf Config) validate() error {
	if conf.WindowSize <= 0 {
		return errors.Errorf("window size must be positive, got %d", conf.WindowSize)
	}
	if conf.LossProbability < 0 || conf.LossProbability > 1 {
		return errors.Errorf("loss probability must be in [0, 1], got %g", conf.LossProbability)
	}
	if conf.TotalPackets <= 0 {
		return errors.Errorf("total packet count must be positive, got %d", conf.TotalPackets)
	}
	return nil
}

func (conf Config) withDefaults() Config {
	if conf.BaseTimeout == 0 {
		conf.BaseTimeout = defaultBaseTimeout
	}
	if conf.GrowthFactor == 0 {
		conf.GrowthFactor = defaultGrowthFactor
	}
	if conf.RetryCap == 0 {
		conf.RetryCap = defaultRetryCap
	}
	if conf.StallThreshold == 0 {
		conf.StallThreshold = defaultStallThreshold
	}
	if conf.StallGrowth == 0 {
		conf.StallGrowth = defaultStallGrowth
	}
	if conf.MaxStallThreshold == 0 {
		conf.MaxStallThreshold = defaultMaxStallThreshold
	}
	if conf.Deadline == 0 {
		conf.Deadline = defaultDeadline
	}
	if conf.TickInterval == 0 {
		conf.TickInterval = defaultTickInterval
	}
	if conf.Clock == nil {
		conf.Clock = SystemClock{}
	}
	if conf.Logger == nil {
		conf.Logger = zap.NewNop()
	}
	return conf
}
