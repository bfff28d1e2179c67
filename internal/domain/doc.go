// Package domain defines the core business types for the outreach
// scheduling platform.
//
// Types in this package are pure value objects with no behavior beyond
// simple predicates, no database dependencies, and no HTTP concerns.
// They are the shared language between the decision engine
// (internal/schedule), the service layer, and the batch runner. The
// engine consumes them strictly as read-only snapshots.
package domain
