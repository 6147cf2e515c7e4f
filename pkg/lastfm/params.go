package lastfm

import (
	"sort"
	"strconv"
)

// Params holds the parameters of one outgoing call. All values are
// strings; callers format numbers and timestamps before setting them.
type Params map[string]string

// Set stores value under name, replacing any previous value.
func (p Params) Set(name, value string) {
	p[name] = value
}

// SetInt stores the decimal form of value under name.
func (p Params) SetInt(name string, value int) {
	p[name] = strconv.Itoa(value)
}

// Get returns the value stored under name.
func (p Params) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy of p.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Merge copies every entry of other into p.
func (p Params) Merge(other Params) Params {
	for k, v := range other {
		p[k] = v
	}
	return p
}
