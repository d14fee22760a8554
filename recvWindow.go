package srp

import (
	"time"

	"go.uber.org/zap"
)

// recvWindow owns the receiver half of the state machine: the next in-order
// sequence number and a buffer of out-of-order arrivals. Every buffered
// sequence number lies in [expected, expected+windowSize-1]; the buffer is
// drained the instant expected itself arrives.
type recvWindow struct {
	windowSize   int
	totalPackets int

	expected int
	buffer   map[int]bool

	out *lossyChannel
	log *zap.Logger
}

func newRecvWindow(windowSize, totalPackets int, out *lossyChannel, log *zap.Logger) *recvWindow {
	return &recvWindow{
		windowSize:   windowSize,
		totalPackets: totalPackets,
		buffer:       make(map[int]bool),
		out:          out,
		log:          log,
	}
}

func (rcv *recvWindow) sendAck(seq int, now time.Time) {
	rcv.out.transmit(newAckPacket(seq, now))
}

// onData handles one arriving data unit and returns the run of sequence
// numbers this arrival made deliverable, in order. Duplicates below the
// window are re-acknowledged (their ack was probably lost) but never
// re-buffered; arrivals above the window cannot legally occur and are
// ignored.
func (rcv *recvWindow) onData(seq int, now time.Time) (statusCode, []int) {
	windowEnd := rcv.expected + rcv.windowSize - 1
	if last := rcv.totalPackets - 1; windowEnd > last {
		windowEnd = last
	}

	if seq < rcv.expected {
		rcv.sendAck(seq, now)
		return duplicateDelivered, nil
	}
	if seq > windowEnd {
		rcv.log.Debug("arrival above window ignored",
			zap.Int("seq", seq),
			zap.Int("expected", rcv.expected))
		return outOfWindow, nil
	}
	if rcv.buffer[seq] {
		rcv.sendAck(seq, now)
		return duplicateBuffered, nil
	}

	rcv.buffer[seq] = true
	rcv.sendAck(seq, now)
	return accepted, rcv.drain()
}

func (rcv *recvWindow) drain() []int {
	var run []int
	for rcv.buffer[rcv.expected] {
		delete(rcv.buffer, rcv.expected)
		run = append(run, rcv.expected)
		rcv.expected++
	}
	return run
}
