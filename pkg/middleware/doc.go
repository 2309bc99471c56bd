// Package middleware provides the net/http middleware of the cargo server.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request metrics
//   - Structured request logging with log/slog
//
// All middleware has the standard func(http.Handler) http.Handler shape and
// is meant for a chi router:
//
//	r := chi.NewRouter()
//	r.Use(chimw.RequestID)
//	r.Use(middleware.RequestLogger(logger))
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// # Context Propagation
//
// OpenTelemetry stores the request span in the request context, so render
// passes and outgoing calls made while serving inherit the trace:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    span := trace.SpanFromContext(r.Context())
//	    span.SetAttributes(attribute.String("page", "home"))
//	}
package middleware
