// Package events provides the notification types the widget components use
// to talk to each other without holding references to one another.
//
// Components emit events through an EventEmitter; other components and the
// websocket feed register as EventHandlers. Emission is synchronous: every
// handler has returned before EmitEvent does, which keeps handlers on the
// same loop callback as the emitter.
package events
