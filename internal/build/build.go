package build

// Version of jflowmap-demo. Set with -ldflags during release builds.
var Version = "0.0.0"
