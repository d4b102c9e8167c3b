// Package metrics defines the custom Prometheus metrics of the Campus Event
// Hub API. It is the single source of truth for metric names, labels and help
// strings. HTTP request metrics come from echoprometheus and are not repeated
// here.
//
// Call Register once per registry before the HTTP server starts.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campushub"

// ── Access control ────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected or ignored bearer credentials.
// Label:
//   - mode: "required" (request rejected with 401) or "optional" (request proceeded anonymously)
var AuthFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of missing, malformed or invalid bearer credentials.",
	},
	[]string{"mode"},
)

// ── Event catalog ─────────────────────────────────────────────────────────────

// EventMutationsTotal counts successful catalog writes.
// Label:
//   - operation: "create", "update" or "delete"
var EventMutationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_mutations_total",
		Help:      "Total number of events created, updated or deleted.",
	},
	[]string{"operation"},
)

// ── Registrations ─────────────────────────────────────────────────────────────

// RegistrationAttemptsTotal counts register calls by outcome.
// Label:
//   - result: "created", "conflict", "event_not_found", "invalid" or "error"
var RegistrationAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_attempts_total",
		Help:      "Total number of registration attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// UnregistrationsTotal counts registrations removed by their owners.
var UnregistrationsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unregistrations_total",
		Help:      "Total number of registrations cancelled.",
	},
)

// ── Accounts ──────────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts sign-ups.
// Label:
//   - role: "admin" or "student"
var UsersRegisteredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		AuthFailuresTotal,
		EventMutationsTotal,
		RegistrationAttemptsTotal,
		UnregistrationsTotal,
		UsersRegisteredTotal,
		LoginsTotal,
	}
}

// Register adds every metric to reg. Registering the same metrics twice on one
// registry is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
