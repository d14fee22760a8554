package srp

import "container/list"

type packetQueue struct {
	list list.List
}

func newPacketQueue() *packetQueue {
	return &packetQueue{}
}

func (q *packetQueue) enqueue(p *packet) {
	q.list.PushBack(p)
}

func (q *packetQueue) dequeue() *packet {
	if q.isEmpty() {
		return nil
	}
	elem := q.list.Front()
	q.list.Remove(elem)
	return elem.Value.(*packet)
}

func (q *packetQueue) isEmpty() bool {
	return q.len() == 0
}

func (q *packetQueue) len() int {
	return q.list.Len()
}
