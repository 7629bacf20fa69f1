// Package config holds server configuration (flags and SLEUTH_
// environment variables, bound in main) and the YAML game definition:
// the player roster and the nine bingo squares.
package config
