// Singleton so that it's easier to use in other packages
package stats

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/relistan/go-director"
	"github.com/sirupsen/logrus"
)

const (
	RelayBroadcastTotal   = "relay_broadcast_total"
	RelayPublishTotal     = "relay_publish_total"
	RelayPublishErrors    = "relay_publish_errors"
	RelayDecodeErrors     = "relay_decode_errors"
	RelayStreamErrors     = "relay_stream_errors"
	RelayInboundRejected  = "relay_inbound_rejected"
	HubLiveConnections    = "hub_live_connections"
	HubDroppedConnections = "hub_dropped_connections"
)

var (
	ReportInterval = 10 * time.Second

	mutex    = &sync.Mutex{}
	counters = make(map[string]int, 0)

	prometheusMutex    = &sync.RWMutex{}
	prometheusCounters = make(map[string]prometheus.Counter)
	prometheusGauges   = make(map[string]prometheus.Gauge)

	looper director.Looper
)

// InitMetrics sets up the well-known prometheus counters/gauges
func InitMetrics() {
	prometheusMutex.Lock()
	defer prometheusMutex.Unlock()

	prometheusCounters[RelayBroadcastTotal] = promauto.NewCounter(prometheus.CounterOpts{
		Name: RelayBroadcastTotal,
		Help: "Total number of status events broadcast to WebSocket clients",
	})

	prometheusCounters[RelayPublishTotal] = promauto.NewCounter(prometheus.CounterOpts{
		Name: RelayPublishTotal,
		Help: "Total number of platform events published upstream",
	})

	prometheusCounters[RelayPublishErrors] = promauto.NewCounter(prometheus.CounterOpts{
		Name: RelayPublishErrors,
		Help: "Number of failed publish attempts",
	})

	prometheusCounters[RelayDecodeErrors] = promauto.NewCounter(prometheus.CounterOpts{
		Name: RelayDecodeErrors,
		Help: "Number of CDC events that could not be decoded",
	})

	prometheusCounters[RelayStreamErrors] = promauto.NewCounter(prometheus.CounterOpts{
		Name: RelayStreamErrors,
		Help: "Number of times the upstream subscription died",
	})

	prometheusCounters[RelayInboundRejected] = promauto.NewCounter(prometheus.CounterOpts{
		Name: RelayInboundRejected,
		Help: "Number of inbound client messages rejected during validation",
	})

	prometheusCounters[HubDroppedConnections] = promauto.NewCounter(prometheus.CounterOpts{
		Name: HubDroppedConnections,
		Help: "Number of client connections dropped due to send failure or overflow",
	})

	prometheusGauges[HubLiveConnections] = promauto.NewGauge(prometheus.GaugeOpts{
		Name: HubLiveConnections,
		Help: "Number of currently connected WebSocket clients",
	})
}

// Start launches the periodic rate reporter
func Start(reportInterval time.Duration) {
	ReportInterval = reportInterval
	looper = director.NewTimedLooper(director.FOREVER, ReportInterval, make(chan error, 1))

	logrus.Debug("Launching stats reporter")

	go func() {
		looper.Loop(func() error {
			mutex.Lock()
			defer mutex.Unlock()

			for counterName, counterValue := range counters {
				perSecond := counterValue / int(ReportInterval.Seconds())

				logrus.Infof("STATS [%s]: %d / %s (%d/s)\n", counterName, counterValue,
					ReportInterval, perSecond)

				// Reset it
				counters[counterName] = 0
			}

			return nil
		})
	}()
}

// Incr increments an interval counter (reported and reset by the looper)
// and the matching prometheus counter.
func Incr(name string, value int) {
	mutex.Lock()
	counters[name] += value
	mutex.Unlock()

	IncrPromCounter(name, float64(value))
}

// IncrPromCounter increments a prometheus counter by the given amount,
// creating it on the fly if it is not a well-known one.
func IncrPromCounter(key string, amount float64) {
	key = strings.Replace(key, "-", "_", -1)

	prometheusMutex.Lock()
	defer prometheusMutex.Unlock()

	c, ok := prometheusCounters[key]
	if !ok {
		c = promauto.NewCounter(prometheus.CounterOpts{
			Name: key,
			Help: "Auto-created counter",
		})
		prometheusCounters[key] = c
	}

	c.Add(amount)
}

// SetPromGauge sets a prometheus gauge to the given value
func SetPromGauge(key string, value float64) {
	prometheusMutex.Lock()
	defer prometheusMutex.Unlock()

	g, ok := prometheusGauges[key]
	if !ok {
		g = promauto.NewGauge(prometheus.GaugeOpts{
			Name: key,
			Help: "Auto-created gauge",
		})
		prometheusGauges[key] = g
	}

	g.Set(value)
}
