package server

import "time"

// A check-games pass fetches every live feed and posts sequentially, so writes get more room than reads.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 90 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout bounds draining an in-flight pass; tests shorten it.
var shutdownTimeout = 30 * time.Second
