/*
Package models defines the tab catalog, the typed row records for each
tab, and the request/response types of the JSON API.

Every tab is an append-only log of string cells. Records convert between
store.Row and typed structs; FromRow parsing trims cells and tolerates
short or malformed rows, because the store enforces nothing beyond tab
width.
*/
package models
