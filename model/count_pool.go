package model

import "sync"

// CountMap maps a coordinate to the number of alive neighbors it has.
// It is rebuilt every generation and discarded after use.
type CountMap map[Cell]uint8

// CountPool recycles neighbor count maps between generations
type CountPool struct {
	pool sync.Pool
}

func NewCountPool() *CountPool {
	return &CountPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(CountMap)
			},
		},
	}
}

// Get retrieves an empty count map from the pool
func (p *CountPool) Get() CountMap {
	return p.pool.Get().(CountMap)
}

// Put returns a count map to the pool, clearing its contents
func (p *CountPool) Put(m CountMap) {
	if m == nil {
		return
	}
	clear(m)
	p.pool.Put(m)
}
