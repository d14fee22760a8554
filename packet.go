package srp

import "time"

type packetKind byte

const (
	kindData packetKind = iota
	kindAck
)

// packet is the unit exchanged over a lossy channel, either a data segment
// or an acknowledgment. Immutable once created.
type packet struct {
	seq    int
	kind   packetKind
	sentAt time.Time
}

func newDataPacket(seq int, sentAt time.Time) *packet {
	return &packet{seq: seq, kind: kindData, sentAt: sentAt}
}

func newAckPacket(seq int, sentAt time.Time) *packet {
	return &packet{seq: seq, kind: kindAck, sentAt: sentAt}
}

func (p *packet) isAck() bool {
	return p.kind == kindAck
}
