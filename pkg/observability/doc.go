// Package observability exposes Prometheus collectors for topology loading.
//
//	reg := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(reg)
//	topo, err := ham.Load(ctx, "model.yaml", ham.WithMetrics(metrics))
package observability
