// Package session houses the volatile session registry backing the local
// runner. Sessions only exist for the lifetime of one script run; durable
// session state for deployed agents is owned by the hosting platform and
// reached through the engine client.
//
// Additional backends could be added alongside InMemoryStore without
// changing calling code, but the demo scripts deliberately discard all
// state between runs.
package session
