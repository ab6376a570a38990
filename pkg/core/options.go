package core

import "time"

// CommitOption is a function type for configuring Commit operations.
//
// Options are applied using the functional options pattern, allowing
// flexible configuration without requiring all parameters.
type CommitOption func(*CommitOptions)

// CommitOptions contains configuration options for Commit operations.
type CommitOptions struct {
	// Today overrides the current date, anchoring relative date
	// references in the message. Zero means the wall clock.
	Today time.Time

	// Attachments holds URLs of files already uploaded for this message.
	Attachments []string

	// UserID overrides the configured owner for the committed record.
	UserID string
}

// WithToday sets the reference date for a Commit operation.
//
// Example:
//
//	result, _ := client.Commit(ctx, "lunch next Friday",
//	    core.WithToday(time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)))
func WithToday(today time.Time) CommitOption {
	return func(opts *CommitOptions) {
		opts.Today = today
	}
}

// WithAttachments sets the uploaded attachment URLs for a Commit operation.
//
// Example:
//
//	result, _ := client.Commit(ctx, "flyer for the bake sale",
//	    core.WithAttachments([]string{url}))
func WithAttachments(urls []string) CommitOption {
	return func(opts *CommitOptions) {
		opts.Attachments = urls
	}
}

// WithUserID sets the record owner for a Commit operation.
//
// Example:
//
//	result, _ := client.Commit(ctx, "team lunch", core.WithUserID("north-office"))
func WithUserID(userID string) CommitOption {
	return func(opts *CommitOptions) {
		opts.UserID = userID
	}
}

// PlanOption is a function type for configuring Plan, RenderPage, and
// Cleanup operations.
type PlanOption func(*PlanOptions)

// PlanOptions contains configuration options for Plan operations.
type PlanOptions struct {
	// Today overrides the current date used for categorization.
	// Zero means the wall clock.
	Today time.Time
}

// WithTodayForPlan sets the reference date for Plan, RenderPage, and
// Cleanup operations.
//
// Example:
//
//	plan, _ := client.Plan(ctx,
//	    core.WithTodayForPlan(time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)))
func WithTodayForPlan(today time.Time) PlanOption {
	return func(opts *PlanOptions) {
		opts.Today = today
	}
}
