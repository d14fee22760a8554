package srp

import (
	"math/rand"

	"go.uber.org/zap"
)

// lossyChannel models one direction of an unreliable link. Each transmitted
// unit is dropped independently with the configured probability; surviving
// units are delivered FIFO. Loss is expected behavior, not a fault, so
// transmit reports it through its return value rather than an error.
type lossyChannel struct {
	name            string
	lossProbability float64
	rng             *rand.Rand
	queue           *packetQueue
	log             *zap.Logger
}

func newLossyChannel(name string, lossProbability float64, rng *rand.Rand, log *zap.Logger) *lossyChannel {
	return &lossyChannel{
		name:            name,
		lossProbability: lossProbability,
		rng:             rng,
		queue:           newPacketQueue(),
		log:             log,
	}
}

func (ch *lossyChannel) transmit(p *packet) bool {
	if ch.rng.Float64() < ch.lossProbability {
		ch.log.Debug("unit dropped",
			zap.String("channel", ch.name),
			zap.Int("seq", p.seq))
		return false
	}
	ch.queue.enqueue(p)
	return true
}

// tryReceive never blocks; the caller yields between polls.
func (ch *lossyChannel) tryReceive() (*packet, bool) {
	p := ch.queue.dequeue()
	return p, p != nil
}
