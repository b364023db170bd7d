// Package lob implements an in-memory, single-symbol limit order book
// with price-time priority matching and event-sourced recovery.
//
// Resting orders live in a flat slot arena addressed by integer index;
// each price level chains its slots into a FIFO list through intrusive
// next indices, so cancellation is an O(1) tombstone and matching
// walks skip empty slots without relinking. Three interchangeable
// price index backends (bounded dense array, hash map, red-black
// tree) sit behind one interface, so the matching walk is written
// once.
//
// The book is single-writer: one owner serializes all mutating calls.
// Replay and snapshot restore are blocking, state-proportional
// recovery operations and must complete before the book accepts live
// matching traffic.
package lob
