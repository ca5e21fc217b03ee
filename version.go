// Package hatch holds build metadata shared by the hatch CLI.
package hatch

// Version is the current hatch release.
const Version = "0.1.0"
