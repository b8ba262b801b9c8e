// Package session keeps each browser's backend token on the server side.
//
// A browser holds only a signed session id. The token issued by the
// condominium backend lives in a Backend keyed by that id, and handlers reach
// it through a per-request Store.
package session
