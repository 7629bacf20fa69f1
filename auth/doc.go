// Package auth covers login: passcode verification against the players
// tab, admin code verification, and the in-process session registry that
// maps X-Session-Token values to players.
package auth
