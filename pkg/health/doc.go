// Package health serves liveness and readiness probes.
//
//	h := health.New(
//		health.WithCheck("postgres", db.Healthcheck(pool)),
//		health.WithLogger(log),
//	)
//	r.Get("/health/live", h.Live)
//	r.Get("/health/ready", h.Ready)
//
// Responses are plain text unless the client asks for JSON with
// Accept: application/json or ?format=json.
package health
