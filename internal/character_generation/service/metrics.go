package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks generator outcomes and image service calls
type Metrics struct {
	Submissions         int64
	Successes           int64
	SoftFailures        int64
	TransportFailures   int64
	ApplicationFailures int64
	UpstreamCalls       int64
	UpstreamLatency     int64 // Total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		Submissions:         atomic.LoadInt64(&globalMetrics.Submissions),
		Successes:           atomic.LoadInt64(&globalMetrics.Successes),
		SoftFailures:        atomic.LoadInt64(&globalMetrics.SoftFailures),
		TransportFailures:   atomic.LoadInt64(&globalMetrics.TransportFailures),
		ApplicationFailures: atomic.LoadInt64(&globalMetrics.ApplicationFailures),
		UpstreamCalls:       atomic.LoadInt64(&globalMetrics.UpstreamCalls),
		UpstreamLatency:     atomic.LoadInt64(&globalMetrics.UpstreamLatency),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.Submissions, 0)
	atomic.StoreInt64(&globalMetrics.Successes, 0)
	atomic.StoreInt64(&globalMetrics.SoftFailures, 0)
	atomic.StoreInt64(&globalMetrics.TransportFailures, 0)
	atomic.StoreInt64(&globalMetrics.ApplicationFailures, 0)
	atomic.StoreInt64(&globalMetrics.UpstreamCalls, 0)
	atomic.StoreInt64(&globalMetrics.UpstreamLatency, 0)
}

func recordSubmission() {
	atomic.AddInt64(&globalMetrics.Submissions, 1)
}

func recordSuccess() {
	atomic.AddInt64(&globalMetrics.Successes, 1)
}

func recordSoftFailure() {
	atomic.AddInt64(&globalMetrics.SoftFailures, 1)
}

func recordTransportFailure() {
	atomic.AddInt64(&globalMetrics.TransportFailures, 1)
}

func recordApplicationFailure() {
	atomic.AddInt64(&globalMetrics.ApplicationFailures, 1)
}

// recordUpstreamCall records an image service call
func recordUpstreamCall(duration time.Duration) {
	atomic.AddInt64(&globalMetrics.UpstreamCalls, 1)
	atomic.AddInt64(&globalMetrics.UpstreamLatency, duration.Nanoseconds())
}

// AverageUpstreamLatency returns the average latency in milliseconds
func (m Metrics) AverageUpstreamLatency() float64 {
	if m.UpstreamCalls == 0 {
		return 0
	}
	avgNs := float64(m.UpstreamLatency) / float64(m.UpstreamCalls)
	return avgNs / 1e6
}

// FailureRate returns the share of submissions that did not produce an image, as a percentage
func (m Metrics) FailureRate() float64 {
	if m.Submissions == 0 {
		return 0
	}
	failed := m.SoftFailures + m.TransportFailures + m.ApplicationFailures
	return float64(failed) / float64(m.Submissions) * 100
}
