package utils

// Version is overwritten by the release build with -ldflags "-X".
var Version = "0.1.0-dev"
