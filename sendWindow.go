package srp

import (
	"time"

	"go.uber.org/zap"
)

// sendWindow owns the sender half of the selective-repeat state machine:
// window base, next sequence number to issue, per-sequence retry counts and
// timers, and the set of acknowledged sequence numbers. Invariant: base <=
// nextSeq <= base+windowSize, so at most windowSize packets are ever
// unacknowledged in flight.
type sendWindow struct {
	windowSize   int
	totalPackets int

	base    int
	nextSeq int

	acked        map[int]bool
	retryCount   map[int]int
	pendingTimer map[int]time.Time

	totalTransmissions int

	policy timerPolicy
	out    *lossyChannel
	log    *zap.Logger
}

func newSendWindow(windowSize, totalPackets int, policy timerPolicy, out *lossyChannel, log *zap.Logger) *sendWindow {
	return &sendWindow{
		windowSize:   windowSize,
		totalPackets: totalPackets,
		acked:        make(map[int]bool),
		retryCount:   make(map[int]int),
		pendingTimer: make(map[int]time.Time),
		policy:       policy,
		out:          out,
		log:          log,
	}
}

// transmit pushes seq onto the data channel and arms its timer. A unit the
// channel drops still counts as a transmission and still gets a timer; the
// sender cannot tell a dropped unit from a delivered one.
func (snd *sendWindow) transmit(seq int, now time.Time) {
	snd.totalTransmissions++
	snd.retryCount[seq]++
	snd.out.transmit(newDataPacket(seq, now))
	snd.pendingTimer[seq] = now
}

// sendNew issues every not-yet-acknowledged sequence number the window
// allows and returns how many were transmitted.
func (snd *sendWindow) sendNew(now time.Time) int {
	sent := 0
	for snd.nextSeq < snd.base+snd.windowSize && snd.nextSeq < snd.totalPackets {
		if !snd.acked[snd.nextSeq] {
			snd.transmit(snd.nextSeq, now)
			sent++
		}
		snd.nextSeq++
	}
	return sent
}

// onAck records seq as acknowledged, clears its retry state and slides base
// over the contiguous acknowledged prefix. Acknowledgments arrive out of
// order under selective repeat, so a single ack does not guarantee any
// slide. Reports whether base advanced.
func (snd *sendWindow) onAck(seq int) bool {
	snd.acked[seq] = true
	delete(snd.pendingTimer, seq)
	delete(snd.retryCount, seq)

	advanced := false
	for snd.acked[snd.base] {
		snd.base++
		advanced = true
	}
	if advanced {
		snd.log.Debug("window advanced",
			zap.Int("base", snd.base),
			zap.Int("ackedSeq", seq))
	}
	return advanced
}

// checkTimeouts retransmits every sequence number whose individual timer has
// expired. Timers are per packet, not per window.
func (snd *sendWindow) checkTimeouts(now time.Time) int {
	var timedOut []int
	for seq, sentAt := range snd.pendingTimer {
		if snd.policy.expired(sentAt, snd.retryCount[seq], now) {
			timedOut = append(timedOut, seq)
		}
	}

	retransmitted := 0
	for _, seq := range timedOut {
		if snd.acked[seq] || seq >= snd.totalPackets {
			continue
		}
		snd.log.Debug("retransmit on timeout",
			zap.Int("seq", seq),
			zap.Int("retries", snd.retryCount[seq]),
			zap.Duration("timeout", snd.policy.timeout(snd.retryCount[seq])))
		snd.transmit(seq, now)
		retransmitted++
	}
	return retransmitted
}

// stallRecover is the safety net against accumulated loss, e.g. a lost ack
// that leaves no live timer covering a dropped packet. It resets nextSeq to
// base and retransmits every unacknowledged sequence number in the window,
// regardless of individual timer state.
func (snd *sendWindow) stallRecover(now time.Time) int {
	snd.nextSeq = snd.base

	end := snd.base + snd.windowSize
	if end > snd.totalPackets {
		end = snd.totalPackets
	}
	retransmitted := 0
	for seq := snd.base; seq < end; seq++ {
		if !snd.acked[seq] {
			snd.transmit(seq, now)
			retransmitted++
		}
	}
	snd.log.Debug("stall recovery",
		zap.Int("base", snd.base),
		zap.Int("retransmitted", retransmitted))
	return retransmitted
}

func (snd *sendWindow) completed() bool {
	return snd.base >= snd.totalPackets
}
