/*
Package domain contains the core model of an HMM topology state.

It is kept pure and free of I/O and config-format concerns: parsing lives in
internal/compiler and the owning topology lives in pkg/topology.

# Key Entities

  - Transition: an immutable edge to a named state (or the "end" pseudo-state),
    stored as a natural-log probability.
  - State: a named node owning its outgoing transitions, an optional end
    transition and optional emission models.
  - StateIndex: the read-only name lookup used during finalization.

# Two-phase construction

A State is first populated by name (sparse transitions, parse order). Once the
owning topology has assigned every state an iterator, Finalize rewrites the
transitions into a dense slice where slot k is the transition to the state
whose iterator is k. Finalize runs exactly once per State.
*/
package domain
