package game

import "sync"

// Pool recycles board buffers of one size so search branches and rollouts
// don't allocate a fresh board each time. It is safe for concurrent use.
type Pool struct {
	size int
	pool sync.Pool
}

func NewPool(size int) *Pool {
	p := &Pool{size: size}
	p.pool.New = func() any {
		return newVoidBoard(size)
	}
	return p
}

// Get returns a private copy of src.
func (p *Pool) Get(src *Board) *Board {
	b := p.pool.Get().(*Board)
	b.CopyFrom(src)
	return b
}

// Put hands b back to the pool; the caller must not use it afterwards.
func (p *Pool) Put(b *Board) {
	if b.size != p.size {
		return
	}
	p.pool.Put(b)
}
