package service

import (
	"time"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/storage/memory"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
	"github.com/yndnr/microdog-go/internal/telemetry/metric"
)

// Resolver answers convert challenges for one token record.
type Resolver struct {
	rec     *domain.TokenRecord
	index   *memory.ConvertIndex
	metrics *metric.Registry
	log     logger.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMetrics records resolve outcomes and latency in m.
func WithMetrics(m *metric.Registry) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithLogger sets the logger used for debug output on each lookup.
func WithLogger(l logger.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver indexes the convert table of rec.
func NewResolver(rec *domain.TokenRecord, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		rec:   rec,
		index: memory.NewConvertIndex(rec),
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record returns the record the resolver answers for.
func (r *Resolver) Record() *domain.TokenRecord {
	return r.rec
}

// IndexBuckets returns the number of distinct request hashes indexed.
func (r *Resolver) IndexBuckets() int {
	return r.index.Buckets()
}

// Resolve returns the response of the first entry matching request.
// A miss is reported with ok=false and is not an error.
func (r *Resolver) Resolve(request []byte) (response uint32, ok bool) {
	start := time.Now()
	pos, response, ok := r.index.Lookup(request)

	if r.metrics != nil {
		result := metric.ResultMiss
		if ok {
			result = metric.ResultHit
		}
		r.metrics.RecordResolve(result, time.Since(start).Seconds())
	}
	r.log.Debug("resolve",
		"request", domain.EncodeHex(request),
		"found", ok,
		"entry", pos,
	)
	return response, ok
}

// ResolveHex decodes a hex challenge and resolves it.
func (r *Resolver) ResolveHex(text string) (uint32, error) {
	request, err := domain.DecodeHex(text)
	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordResolve(metric.ResultMalformed, 0)
		}
		return 0, domain.ErrMalformedRequest.WithCause(err)
	}

	response, ok := r.Resolve(request)
	if !ok {
		return 0, domain.ErrRequestNotFound.WithDetails(domain.EncodeHex(request))
	}
	return response, nil
}
