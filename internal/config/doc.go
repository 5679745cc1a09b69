// Package config loads the desk's settings from defaults, an optional YAML
// file and STUDYDESK_ environment variables, then validates them. Settings
// are grouped by concern: the HTTP server, the storage backend, the widget
// tuning values and the ambient noise chain.
package config
