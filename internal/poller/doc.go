// Package poller provides the stats polling loop for minionboard.
//
// This package is internal to minionboard. It fetches a queue statistics
// payload from a single URL, decodes it, and hands every successfully
// decoded payload to a handler. Cycles are strictly sequential: the next
// request is only issued after the previous one resolved and the fixed
// delay elapsed.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with timeout and size limits
//   - [Loop]: Sequential fetch-decode-wait loop
//   - [Payload]: Decoded statistics, with absent fields left nil
//   - [Cycle]: Outcome of a single poll cycle
//
// Users of the minionboard library should not need to interact with this
// package directly. Configuration is done through the main minionboard package.
package poller
