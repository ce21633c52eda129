// Package metrics defines the custom Prometheus metrics for the MyVille
// backend. It is the single source of truth for metric names and labels;
// everything registers against the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "myville"

// PostsCreatedTotal counts created posts, labelled by category.
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of civic issue posts created.",
	},
	[]string{"category"},
)

// VotesToggledTotal counts vote toggles, labelled by direction ("on"/"off").
var VotesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_toggled_total",
		Help:      "Total number of vote toggles, labelled by resulting state.",
	},
	[]string{"direction"},
)

// ChatRequestsTotal counts chat proxy requests, labelled by outcome
// ("ok"/"error").
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of assistant chat requests proxied upstream.",
	},
	[]string{"outcome"},
)

// GeocodeLookupsTotal counts reverse-geocode lookups, labelled by result
// ("cache_hit", "ok", "fallback").
var GeocodeLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_lookups_total",
		Help:      "Total number of reverse geocoding lookups by result.",
	},
	[]string{"result"},
)

// GeoResolveDuration measures how long location acquisition takes.
var GeoResolveDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "geo_resolve_duration_seconds",
		Help:      "Duration of device location acquisition until a fix or timeout.",
		Buckets:   prometheus.DefBuckets,
	},
)
