// Package domain contains the study widget's value types and the pure rules
// that govern them: themes and the root class list, the focus timer state
// machine, stamina clamping, the compiled-in flashcard decks and the error
// graveyard. Nothing here performs I/O or schedules work.
package domain
