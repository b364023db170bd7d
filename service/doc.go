// Package service coordinates the engine: the single-writer book, the
// change log store, the read model, snapshots and trade publication.
// BookService is the only write entry point; Recover must run to
// completion before it accepts traffic.
package service
