// Package metrics counts converter operations with Prometheus collectors.
//
// The converter is usually run as a batch tool, so metrics live on a
// private registry and are exported with WriteTextfile rather than served.
package metrics
