// Package service contains the study widget's components: theme controller,
// ambient sound engine, focus timer, stamina meter, notes autosave,
// flashcard viewer and error graveyard, plus the Desk that wires them
// together.
//
// Components share three collaborators, supplied through Deps:
//
//  1. A schedule.Loop. Every public operation runs inside Loop.Do and every
//     repeating task is registered with Loop.Every, so component state is
//     only ever touched from one logical thread.
//  2. A store.KeyValueStore. Each component owns a fixed set of keys and
//     writes through on every mutation. A failed write is logged and the
//     in-memory value stays authoritative.
//  3. An event bus. Components announce changes as events and never hold
//     references to each other; the stamina meter drains on the timer's
//     tick events. Handlers run synchronously on the loop and must not call
//     back into Loop.Do.
package service
