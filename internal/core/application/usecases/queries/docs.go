// Package queries holds the read side: one-shot lookups executed with raw SQL over the
// record store tables. Live views in package views re-run these queries on every change.
package queries
