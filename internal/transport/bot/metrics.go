package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escrowbot_updates_processed_total",
		Help: "Processed telegram updates by kind.",
	}, []string{"kind"})

	dialogOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escrowbot_dialog_outcomes_total",
		Help: "Finished admin dialog sequences by outcome.",
	}, []string{"outcome"})

	authRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "escrowbot_auth_rejections_total",
		Help: "Gated actions rejected by the authorization gate.",
	})
)
