// Package middleware provides request logging, JSON response helpers,
// CORS, and the session guards that gate player and admin routes.
package middleware
