// Package metric exports cgmdust estimator metrics to Prometheus.
package metric
