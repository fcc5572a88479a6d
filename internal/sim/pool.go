package sim

import (
	"sync"
	"sync/atomic"

	"github.com/san-kum/starfall/internal/physics"
)

// BurstPool recycles particle buffers between runs.
type BurstPool struct {
	pool  sync.Pool
	size  int
	fresh atomic.Int64
}

func NewBurstPool(size int) *BurstPool {
	p := &BurstPool{size: size}
	p.pool.New = func() interface{} {
		p.fresh.Add(1)
		s := make([]*physics.Particle, 0, size)
		return &s
	}
	return p
}

// Allocated reports how many buffers the pool has had to create.
func (p *BurstPool) Allocated() int64 { return p.fresh.Load() }

func (p *BurstPool) Get() []*physics.Particle {
	s := p.pool.Get().(*[]*physics.Particle)
	return (*s)[:0]
}

func (p *BurstPool) Put(s []*physics.Particle) {
	if cap(s) < p.size {
		return
	}
	clear(s[:cap(s)])
	s = s[:0]
	p.pool.Put(&s)
}
