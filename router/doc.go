// Package router defines the route table using Go 1.22+ mux patterns and
// wires every handler to its middleware chain: request logging on
// everything, session guards on player routes, elevated sessions on admin
// routes.
package router
