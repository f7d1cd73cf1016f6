package collect

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pktai/pktfilter/filters"
	"github.com/pktai/pktfilter/packet"
)

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrFull indicates that more outstanding packets await publishing
	// than the internal queue can hold; the packet passed to Accept will
	// not be published.
	ErrFull = constError("publish queue is full")
)

type publisher func(context.Context, *Msg) error

// Collecter receives decoded packet views, discards those the compiled
// filter rejects, and publishes the rest.  An internal channel queues
// work so Accept never blocks the decode loop feeding it.
type Collecter struct {
	metrics *Metrics
	match   filters.Expr
	publish publisher
	views   chan *packet.View
}

// NewCollecter returns a Collecter that keeps packets matching expr and
// hands them to publish.  depth controls how many packets may queue
// before Accept starts discarding.
func NewCollecter(expr filters.Expr, publish publisher, depth int) *Collecter {
	c := &Collecter{
		match:   expr,
		publish: publish,
		metrics: NewMetrics(),
		views:   make(chan *packet.View, depth),
	}
	c.metrics.Filter.WithLabelValues(expr.String()).Set(1)
	return c
}

// Accept enqueues one packet for filtering and publishing.  If the queue
// is full the packet is dropped and an error returned.
func (c *Collecter) Accept(v *packet.View) error {
	select {
	case c.views <- v:
		return nil
	default:
		c.metrics.Dropped.Inc()
		return fmt.Errorf("dropping packet %d: %w", v.Number, ErrFull)
	}
}

// Publish blocks, draining the queue: packets failing the filter are
// counted and discarded, the rest are wrapped in a Msg envelope and sent
// through the publisher.
func (c *Collecter) Publish(ctx context.Context) {
	log := zerolog.Ctx(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-c.views:
			if v == nil || !ok {
				log.Info().Msg("channel closed, collecter exiting")
				return
			}
			if !c.match.Match(v) {
				c.metrics.Rejected.Inc()
				log.Debug().Int("no", v.Number).Msg("discarding packet that does not match filter")
				continue
			}
			msg := NewMsg(v)
			if err := c.publish(ctx, msg); err != nil {
				log.Err(err).Interface("msg", msg).Msg("publish failed")
			}
			c.metrics.Published.Inc()
		}
	}
}

// Close marks the end of input.  Publish drains whatever is queued and
// then returns.  Accept must not be called after Close.
func (c *Collecter) Close() { close(c.views) }

// Metrics returns a list of prometheus.Collector interfaces, suitable
// for passing to a prometheus.Registry to export collection metrics.
func (c *Collecter) Metrics() []prometheus.Collector { return c.metrics.List() }
