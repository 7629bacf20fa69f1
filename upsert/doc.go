/*
Package upsert implements the row-keyed upsert protocol against the
append-only tabular store.

An upsert reads all rows of a tab (through the cache), finds the first row
whose key columns match, and either overwrites that row in place or
appends a new one, then invalidates the tab's cache entry. After a
successful call a fresh read returns exactly one current row for the key.

The duplicate-row case is a named Policy instead of implicit scan order:
FirstMatch (faithful, default) or RejectDuplicate.
*/
package upsert
