// Package resilience groups the fault-tolerance helpers of the service:
// circuitbreaker (per-host breakers in front of feed fetches) and retry
// (backoff for start-up dependencies).
package resilience
