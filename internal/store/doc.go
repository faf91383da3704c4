// Package store keeps the latest queue statistics snapshot and publishes
// updates to subscribers.
//
// This package is internal to minionboard. The dashboard's render sink writes
// every successfully polled payload here; the HTTP server reads the latest
// snapshot for the JSON API and subscribes for Server-Sent Events.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [Snapshot]: Storage representation of one rendered payload
//
// Subscribers receive updates via channels with non-blocking sends (slow
// subscribers will miss updates rather than block the poll loop).
package store
