// Package timeouts holds the server and probe durations shared by realmkeep
// processes.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Idle closes keep-alive connections that stay quiet this long.
const Idle = 60 * time.Second

// Shutdown limits how long servers drain in-flight requests.
const Shutdown = 5 * time.Second

// HealthProbe caps a healthcheck invocation end to end.
const HealthProbe = 3 * time.Second
