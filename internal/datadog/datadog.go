package datadog

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/tmr-alias/internal/env"
	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

// Client is the subset of the statsd client used here.
type Client interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Incr(name string, tags []string, rate float64) error
}

var dogstatsd Client

func InitMetrics() {
	if env.Cfg == nil || !env.Cfg.EnableDatadog {
		return
	}

	client, err := statsd.New(env.Cfg.DDAgentAddr)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create DogStatsD client")
		return
	}

	client.Namespace = env.Cfg.DDNamespace
	client.Tags = env.Cfg.DDTags
	dogstatsd = client

	log.Info().
		Str("addr", env.Cfg.DDAgentAddr).
		Str("namespace", env.Cfg.DDNamespace).
		Strs("tags", env.Cfg.DDTags).
		Msg("Datadog metrics initialized")
}

// SetClient replaces the client, nil disables metrics.
func SetClient(c Client) {
	dogstatsd = c
}

func Gauge(name string, value float64, tags ...string) {
	if dogstatsd != nil {
		if err := dogstatsd.Gauge(name, value, tags, 1); err != nil {
			log.Warn().Err(err).Str("metric", name).Msg("Failed to emit gauge metric")
		}
	}
}

func Incr(name string, tags ...string) {
	if dogstatsd != nil {
		if err := dogstatsd.Incr(name, tags, 1); err != nil {
			log.Warn().Err(err).Str("metric", name).Msg("Failed to emit count metric")
		}
	}
}

// RecordRun reports one generation: a run counter tagged with the format and
// a gauge per logical timer carrying its target.
func RecordRun(format string, bindings []model.Binding, aliased int) {
	Incr("generate.runs", "format:"+format)

	remapped := 0
	for _, b := range bindings {
		Gauge("binding.target", float64(b.Target), "logical:"+b.Logical.String(), "pin:"+b.Pin.Name())
		if b.AltPin {
			remapped++
		}
	}
	Gauge("bindings.remapped", float64(remapped), "format:"+format)
	Gauge("bindings.aliased", float64(aliased), "format:"+format)
}
