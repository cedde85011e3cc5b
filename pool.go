// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// Pool is a fixed slab of equal-capacity message slots carved from one
// contiguous arena, with a lock-free MPMC free ring of slot indices.
//
// Alloc pops a free index and Free pushes it back; both are single-CAS
// loops that never park the caller, so the pool is safe from any execution
// context. When the ring is empty, Alloc fails with ErrNoSpace immediately.
//
// The slab replaces a bump-and-reclaim-if-top arena: reclamation order no
// longer matters, every Free returns its slot, and the arena cannot
// fragment. The trade is a fixed per-message argument capacity; captures
// larger than ArgCap fail the allocation with ErrNoSpace.
type Pool struct {
	_    pad
	head atomix.Uint64 // Alloc cursor
	_    pad
	tail atomix.Uint64 // Free cursor
	_    pad
	ring    []freeSlot
	mask    uint64
	size    uint64 // physical ring slots (power of 2)
	msgs    []Message
	arena   []byte
	slotCap int
}

type freeSlot struct {
	seq atomix.Uint64
	idx uint32
	_   [64 - 12]byte // pad to cache line
}

// NewPool creates a message pool backed by an arena of arenaBytes, split
// into slots of argCap argument bytes each. argCap rounds up to a multiple
// of the word size so every capture offset stays aligned.
//
// Panics if the configuration yields no slots.
func NewPool(arenaBytes, argCap int) *Pool {
	if argCap < wordBytes {
		panic("dlog: argCap must be >= word size")
	}
	argCap = (argCap + wordBytes - 1) &^ (wordBytes - 1)
	slots := arenaBytes / argCap
	if slots < 1 {
		panic("dlog: arena smaller than one slot")
	}

	size := uint64(roundToPow2(slots))
	p := &Pool{
		ring:    make([]freeSlot, size),
		mask:    size - 1,
		size:    size,
		msgs:    make([]Message, slots),
		arena:   make([]byte, slots*argCap),
		slotCap: argCap,
	}

	// Ring starts full: positions 0..slots-1 hold the slot indices, the
	// remainder (when slots is not a power of 2) start empty.
	for i := uint64(0); i < size; i++ {
		if i < uint64(slots) {
			p.ring[i].idx = uint32(i)
			p.ring[i].seq.StoreRelaxed(i + 1)
		} else {
			p.ring[i].seq.StoreRelaxed(i)
		}
	}
	p.tail.StoreRelaxed(uint64(slots))

	for i := range p.msgs {
		p.msgs[i].slot = uint32(i)
		p.msgs[i].args = p.arena[i*argCap : (i+1)*argCap : (i+1)*argCap]
	}
	return p
}

// Cap returns the number of message slots.
func (p *Pool) Cap() int {
	return len(p.msgs)
}

// ArgCap returns the argument capacity of one slot in bytes.
func (p *Pool) ArgCap() int {
	return p.slotCap
}

// Alloc carves a message able to hold argsLen capture bytes.
// Returns ErrNoSpace without side effects when the slab is exhausted or
// argsLen exceeds the slot capacity. Never blocks the caller.
func (p *Pool) Alloc(argsLen int) (*Message, error) {
	if argsLen < 0 {
		return nil, ErrInvalidArgument
	}
	if argsLen > p.slotCap {
		return nil, ErrNoSpace
	}
	idx, err := p.popFree()
	if err != nil {
		return nil, err
	}
	msg := &p.msgs[idx]
	msg.argsLen = argsLen
	return msg, nil
}

// Free returns a message's slot to the pool. Always succeeds; nil is
// tolerated. Safe from any execution context.
func (p *Pool) Free(msg *Message) {
	if msg == nil {
		return
	}
	idx := msg.slot
	msg.reset()
	p.pushFree(idx)
}

// message returns the slab message for a slot index previously obtained
// from Alloc. Used by the worker to resolve dequeued handles.
func (p *Pool) message(idx uint32) *Message {
	return &p.msgs[idx]
}

func (p *Pool) popFree() (uint32, error) {
	sw := spin.Wait{}
	for {
		head := p.head.LoadAcquire()
		slot := &p.ring[head&p.mask]
		seq := slot.seq.LoadAcquire()

		if seq == head+1 {
			if p.head.CompareAndSwapAcqRel(head, head+1) {
				idx := slot.idx
				slot.seq.StoreRelease(head + p.size)
				return idx, nil
			}
		} else if int64(seq) < int64(head+1) {
			return 0, ErrNoSpace
		}
		sw.Once()
	}
}

func (p *Pool) pushFree(idx uint32) {
	sw := spin.Wait{}
	for {
		tail := p.tail.LoadAcquire()
		slot := &p.ring[tail&p.mask]
		seq := slot.seq.LoadAcquire()

		if seq == tail {
			if p.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.idx = idx
				slot.seq.StoreRelease(tail + 1)
				return
			}
		} else if int64(seq) < int64(tail) {
			// Ring full: unreachable while every circulating index is
			// unique; only a double free gets here. Drop it.
			return
		}
		sw.Once()
	}
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
