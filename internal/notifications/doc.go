// Package notifications delivers import events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The Service interface covers the import milestones so the
// orchestrator can emit consistent, user-friendly messages without
// duplicating HTTP glue.
//
// Extend this package if you need alternative transports; import code
// depends only on the simple Service interface.
package notifications
