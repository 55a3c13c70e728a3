package server

import (
	"github.com/VictoriaMetrics/metrics"
	"github.com/benjmnxu/ngram/rpc/common"
	gometrics "github.com/rcrowley/go-metrics"
	"time"
)

// process wide counters, exported in prometheus text format on the metrics endpoint
var (
	requestsPublish  = metrics.NewCounter(`ngram_requests_total{kind="publish"}`)
	requestsSearch   = metrics.NewCounter(`ngram_requests_total{kind="search"}`)
	requestsRetrieve = metrics.NewCounter(`ngram_requests_total{kind="retrieve"}`)
	requestsFailed   = metrics.NewCounter("ngram_requests_failed_total")
	requestsDropped  = metrics.NewCounter("ngram_requests_dropped_total")
)

// requestStats keeps latency and outcome statistics of a single server instance
type requestStats struct {
	registry gometrics.Registry

	timers    map[common.RequestType]gometrics.Timer
	failures  gometrics.Counter
	malformed gometrics.Counter
	dropped   gometrics.Counter
}

func newRequestStats() *requestStats {
	r := gometrics.NewRegistry()
	return &requestStats{
		registry: r,
		timers: map[common.RequestType]gometrics.Timer{
			common.ReqTPublish:  gometrics.GetOrRegisterTimer("requests.publish", r),
			common.ReqTSearch:   gometrics.GetOrRegisterTimer("requests.search", r),
			common.ReqTRetrieve: gometrics.GetOrRegisterTimer("requests.retrieve", r),
		},
		failures:  gometrics.GetOrRegisterCounter("responses.failure", r),
		malformed: gometrics.GetOrRegisterCounter("requests.malformed", r),
		dropped:   gometrics.GetOrRegisterCounter("requests.dropped", r),
	}
}

// observe records a dispatched request
func (s *requestStats) observe(reqType common.RequestType, start time.Time, resp *common.Response) {
	if timer, ok := s.timers[reqType]; ok {
		timer.UpdateSince(start)
	}

	switch reqType {
	case common.ReqTPublish:
		requestsPublish.Inc()
	case common.ReqTSearch:
		requestsSearch.Inc()
	case common.ReqTRetrieve:
		requestsRetrieve.Inc()
	}

	if !resp.IsSuccess() {
		s.failures.Inc(1)
		requestsFailed.Inc()
	}
}

// observeMalformed records a request that was framed correctly but could not be decoded
func (s *requestStats) observeMalformed() {
	s.malformed.Inc(1)
	s.failures.Inc(1)
	requestsFailed.Inc()
}

// observeDropped records a connection that was closed without a response
func (s *requestStats) observeDropped() {
	s.dropped.Inc(1)
	requestsDropped.Inc()
}

// handled returns the number of dispatched requests of one type
func (s *requestStats) handled(reqType common.RequestType) int64 {
	if timer, ok := s.timers[reqType]; ok {
		return timer.Count()
	}
	return 0
}

// log writes a summary of the statistics to the server logger
func (s *requestStats) log() {
	for _, reqType := range []common.RequestType{common.ReqTPublish, common.ReqTSearch, common.ReqTRetrieve} {
		t := s.timers[reqType].Snapshot()
		if t.Count() == 0 {
			continue
		}
		Logger.Infof("%-8s: %d requests, mean %s, p99 %s, max %s",
			reqType,
			t.Count(),
			time.Duration(t.Mean()),
			time.Duration(t.Percentile(0.99)),
			time.Duration(t.Max()),
		)
	}
	Logger.Infof("failures: %d, malformed: %d, dropped: %d",
		s.failures.Count(), s.malformed.Count(), s.dropped.Count())
}
