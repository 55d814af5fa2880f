package types

// Version is the application version, overridden at build time via -ldflags.
var Version = "dev"

// ServiceName is reported by health endpoints and CLI metadata.
const ServiceName = "pdgate"
