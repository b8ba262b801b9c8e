// Package sqlite persists console sessions in a local SQLite file so they
// survive restarts of a single console process.
package sqlite
