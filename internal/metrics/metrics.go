// Package metrics defines the custom Prometheus metrics for the miniblog
// service. Metrics register with the default registry at package init; the
// HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "miniblog"

// UsersCreatedTotal counts successfully registered users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// PostsCreatedTotal counts successfully published posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// IntegrityRejectionsTotal counts writes the store refused.
// Label:
//   - reason: "duplicate_username", "dangling_author" or "user_has_posts"
var IntegrityRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "integrity_rejections_total",
		Help:      "Total number of writes rejected by a store constraint, by reason.",
	},
	[]string{"reason"},
)
