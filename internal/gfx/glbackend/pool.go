package glbackend

import "sort"

const maxHandles = 0xffff

// pool hands out uint16 ids, reusing released ones before growing.
type pool[T any] struct {
	items map[uint16]T
	next  uint16
	free  []uint16
}

func (p *pool[T]) add(v T) (uint16, bool) {
	if p.items == nil {
		p.items = make(map[uint16]T)
	}
	var id uint16
	switch {
	case len(p.free) > 0:
		id = p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
	case p.next < maxHandles:
		id = p.next
		p.next++
	default:
		return 0, false
	}
	p.items[id] = v
	return id, true
}

func (p *pool[T]) get(id uint16) (T, bool) {
	v, ok := p.items[id]
	return v, ok
}

func (p *pool[T]) remove(id uint16) (T, bool) {
	v, ok := p.items[id]
	if ok {
		delete(p.items, id)
		p.free = append(p.free, id)
	}
	return v, ok
}

func (p *pool[T]) len() int { return len(p.items) }

// ids returns live ids in ascending order.
func (p *pool[T]) ids() []uint16 {
	out := make([]uint16, 0, len(p.items))
	for id := range p.items {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
