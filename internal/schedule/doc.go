// Package schedule provides the event loop the widget components run on.
//
// A Loop serializes every callback: direct operations submitted with Do and
// repeating tasks registered with Every never overlap, so component state
// needs no further locking. Repeating tasks return a Handle; once Cancel has
// returned, the task's callback never runs again.
//
// TickerLoop runs on the wall clock. ManualLoop runs on a virtual clock that
// tests advance explicitly.
package schedule
