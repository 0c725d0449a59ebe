package pool

import "sync"

// dynamic is an uncapped pool backed by sync.Pool.
type dynamic struct {
	size int
	p    sync.Pool
}

// NewDynamic builds a pool of buffers of the given size that grows and
// shrinks as needed via sync.Pool.
func NewDynamic(size int) Pool {
	d := &dynamic{size: size}
	d.p.New = func() interface{} { return make([]byte, d.size) }
	return d
}

func (d *dynamic) Get() []byte {
	return d.p.Get().([]byte)
}

func (d *dynamic) Put(b []byte) {
	d.p.Put(b) //nolint:staticcheck // intentional: recycle regardless of capacity drift
}
