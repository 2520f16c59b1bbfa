// Package metrics defines and registers all custom Prometheus metrics for
// the authentication service. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at init time via promauto; the HTTP middleware in the router
// adds per-route request metrics on top.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts successful self-service registrations.
// Admin-provisioned accounts are not included.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful user registrations.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens handed out.
// Label:
//   - type: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, labelled by token type.",
	},
	[]string{"type"},
)

// TokenVerificationsTotal counts bearer-token checks in the auth middleware.
// Label:
//   - result: "success", "expired", "invalid" or "wrong_type"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access-token verifications, labelled by result.",
	},
	[]string{"result"},
)

// RoleUpdatesTotal counts successful admin role changes.
var RoleUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_updates_total",
		Help:      "Total number of user role updates applied.",
	},
)

// PasswordChangesTotal counts successful password changes.
var PasswordChangesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of successful password changes.",
	},
)
