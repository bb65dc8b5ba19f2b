// Package cmap provides a concurrent map keyed by strings.
//
// Keys are spread over a power-of-two number of shards by their murmur3
// hash; each shard has its own RWMutex, so operations on different keys
// rarely contend.
//
//	m := cmap.New[*rate.Limiter]()
//	lim, _ := m.GetOrSet(client, rate.NewLimiter(r, b))
package cmap
