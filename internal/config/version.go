package config

// Version is the routeviz binary version.
// Set at build time via: -ldflags "-X github.com/naijapath/routeviz/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
