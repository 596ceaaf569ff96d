package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PointsUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "points_updates_total",
		Help: "Total number of player scoring passes by result",
	}, []string{"result"})

	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "points_awarded_total",
		Help: "Total number of clan points added to player scores",
	})

	MembershipChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_changes_total",
		Help: "Total number of rank, donator and badge role changes",
	}, []string{"op", "status"})

	WiseOldManRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wiseoldman_request_duration_seconds",
		Help:    "Duration of Wise Old Man API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	WiseOldManRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiseoldman_requests_total",
		Help: "Total number of Wise Old Man API requests",
	}, []string{"endpoint", "status"})

	HiscoresRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hiscores_request_duration_seconds",
		Help:    "Duration of official hiscores scraping requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	HiscoresRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiscores_requests_total",
		Help: "Total number of official hiscores scraping requests",
	}, []string{"status"})

	CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commands_handled_total",
		Help: "Total number of slash command interactions by command and outcome",
	}, []string{"command", "status"})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord interaction responses sent",
	}, []string{"status"})
)
