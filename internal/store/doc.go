// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the widget
// components, which only ever see a string-keyed, string-valued store, the
// same contract a browser's local storage offers.
package store
