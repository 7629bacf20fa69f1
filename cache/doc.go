// Package cache provides the process-wide, time-boxed read cache over the
// tabular store. Writes elsewhere keep it consistent by invalidating the
// written tab; other processes' writes are only observed after the TTL.
package cache
