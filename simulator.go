package srp

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Simulator drives one selective-repeat run over a pair of lossy channels.
// It is the only component with a control loop; sender and receiver are
// called synchronously from its tick, so no state is mutated concurrently.
type Simulator struct {
	conf  Config
	clock Clock
	log   *zap.Logger

	sender   *sendWindow
	receiver *recvWindow

	dataChannel *lossyChannel
	ackChannel  *lossyChannel
}

// Result is the outcome of a run. Deadline expiry is a valid outcome, not an
// error: Completed is false and Delivered holds the partial count.
type Result struct {
	Delivered     int
	Transmissions int
	Completed     bool
	Elapsed       time.Duration
}

func NewSimulator(conf Config) (*Simulator, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	conf = conf.withDefaults()

	rng := rand.New(rand.NewSource(conf.Seed))
	log := conf.Logger
	dataChannel := newLossyChannel("data", conf.LossProbability, rng, log)
	ackChannel := newLossyChannel("ack", conf.LossProbability, rng, log)
	policy := timerPolicy{
		baseTimeout:  conf.BaseTimeout,
		growthFactor: conf.GrowthFactor,
		retryCap:     conf.RetryCap,
	}

	return &Simulator{
		conf:        conf,
		clock:       conf.Clock,
		log:         log,
		sender:      newSendWindow(conf.WindowSize, conf.TotalPackets, policy, dataChannel, log),
		receiver:    newRecvWindow(conf.WindowSize, conf.TotalPackets, ackChannel, log),
		dataChannel: dataChannel,
		ackChannel:  ackChannel,
	}, nil
}

// Run executes ticks until the whole window has been delivered or the
// global deadline elapses. Each tick sends whatever the window allows,
// polls one inbound unit per direction, checks per-packet timers and
// yields for one tick interval.
func (sim *Simulator) Run() Result {
	start := sim.clock.Now()
	lastProgress := start
	stallThreshold := sim.conf.StallThreshold

	sim.log.Info("run starting",
		zap.Int("windowSize", sim.conf.WindowSize),
		zap.Float64("lossProbability", sim.conf.LossProbability),
		zap.Int("totalPackets", sim.conf.TotalPackets))

	for !sim.sender.completed() && sim.clock.Now().Sub(start) < sim.conf.Deadline {
		now := sim.clock.Now()

		if sinceProgress := now.Sub(lastProgress); sinceProgress > stallThreshold {
			sim.log.Warn("stall detected",
				zap.Int("base", sim.sender.base),
				zap.Duration("sinceProgress", sinceProgress))
			sim.sender.stallRecover(now)
			lastProgress = now
			stallThreshold = growThreshold(stallThreshold, sim.conf.StallGrowth, sim.conf.MaxStallThreshold)
		}

		if sim.sender.sendNew(now) > 0 {
			lastProgress = now
		}

		if p, ok := sim.dataChannel.tryReceive(); ok {
			sim.receiver.onData(p.seq, now)
		}
		if a, ok := sim.ackChannel.tryReceive(); ok {
			if sim.sender.onAck(a.seq) {
				lastProgress = now
			}
		}

		sim.sender.checkTimeouts(now)
		sim.clock.Sleep(sim.conf.TickInterval)
	}

	result := Result{
		Delivered:     sim.sender.base,
		Transmissions: sim.sender.totalTransmissions,
		Completed:     sim.sender.completed(),
		Elapsed:       sim.clock.Now().Sub(start),
	}
	sim.log.Info("run finished",
		zap.Int("delivered", result.Delivered),
		zap.Int("transmissions", result.Transmissions),
		zap.Bool("completed", result.Completed),
		zap.Duration("elapsed", result.Elapsed))
	return result
}

// growThreshold backs the stall threshold off after each recovery so hard
// loss conditions do not trigger thrashing, bounded by max.
func growThreshold(current time.Duration, growth float64, bound time.Duration) time.Duration {
	grown := time.Duration(float64(current) * growth)
	if grown > bound {
		return bound
	}
	return grown
}
