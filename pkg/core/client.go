package core

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/eventmem/eventmem-go/pkg/cleanup"
	"github.com/eventmem/eventmem-go/pkg/extract"
	anthropicExtract "github.com/eventmem/eventmem-go/pkg/extract/anthropic"
	geminiExtract "github.com/eventmem/eventmem-go/pkg/extract/gemini"
	openaiExtract "github.com/eventmem/eventmem-go/pkg/extract/openai"
	"github.com/eventmem/eventmem-go/pkg/publish"
	"github.com/eventmem/eventmem-go/pkg/reconcile"
	"github.com/eventmem/eventmem-go/pkg/store"
	"github.com/eventmem/eventmem-go/pkg/store/markdown"
)

// Client is the main eventmem client.
//
// It wires the record store, the extraction provider, the reconciler, and
// the publication planner into the two high-level operations:
//   - Commit: message -> draft -> create-or-update decision -> persisted record
//   - Plan / RenderPage: records -> categorized view -> static page
//
// The client assumes a single operator driving one commit at a time against
// the store directory; it is not safe for concurrent writers.
//
// Example usage:
//
//	config, _ := core.LoadConfigFromEnv()
//	client, _ := core.NewClient(config)
//	defer client.Close()
//
//	result, _ := client.Commit(ctx, "Team meeting March 1st at 2pm in Room A")
//	fmt.Println(result.Action, result.Identity)
type Client struct {
	// config contains the client configuration.
	config *Config

	// store is the record store for persistence.
	store store.RecordStore

	// extractor is the provider turning messages into drafts.
	extractor extract.Extractor

	// reconciler decides create-versus-update and merges fields.
	reconciler *reconcile.Reconciler

	// planner categorizes records for publication.
	planner *publish.Planner

	// renderer turns plans into the static page.
	renderer *publish.Renderer

	// sweeper removes expired records.
	sweeper *cleanup.Sweeper

	// purger deletes uploaded attachments during cleanup.
	purger cleanup.AttachmentPurger

	// node generates unique IDs for commit operations.
	node *snowflake.Node
}

// ClientOption is a function type for configuring a Client beyond its
// Config, primarily for substituting collaborators in tests.
type ClientOption func(*Client)

// WithExtractor replaces the configured extraction provider.
//
// Extraction is a capability boundary: any implementation of
// extract.Extractor can stand in, including a deterministic test double.
func WithExtractor(ex extract.Extractor) ClientOption {
	return func(c *Client) {
		c.extractor = ex
	}
}

// WithStore replaces the configured record store.
func WithStore(st store.RecordStore) ClientOption {
	return func(c *Client) {
		c.store = st
	}
}

// WithAttachmentPurger sets the purger used by Cleanup to delete uploaded
// attachments. The default leaves attachments untouched.
func WithAttachmentPurger(p cleanup.AttachmentPurger) ClientOption {
	return func(c *Client) {
		c.purger = p
	}
}

// NewClient creates a new eventmem client.
//
// The client is initialized with:
//   - The markdown record store rooted at the configured directory
//   - The configured extraction provider (openai, anthropic, gemini)
//   - The reconciler and publication planner
//
// Parameters:
//   - cfg: Configuration containing store, extractor, and publish settings
//   - opts: Optional collaborator substitutions (test doubles)
//
// Returns a new Client instance, or an error if initialization fails.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		config:     cfg,
		reconciler: reconcile.New(cfg.Store.ExpiryDays),
		planner:    publish.NewPlanner(cfg.Publish.WeekStart),
		renderer:   publish.NewRenderer(cfg.Publish.SiteTitle),
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, NewMemoryError("NewClient", err)
	}
	client.node = node

	for _, opt := range opts {
		opt(client)
	}

	if client.store == nil {
		st, err := markdown.New(&markdown.Config{
			Dir:    cfg.Store.Dir,
			UserID: cfg.Store.UserID,
		})
		if err != nil {
			return nil, NewMemoryError("NewClient", err)
		}
		client.store = st
	}

	client.sweeper = cleanup.NewSweeper(client.store, client.purger, nil)
	return client, nil
}

// ensureExtractor initializes the configured extraction provider on first
// use. Publishing and cleanup never extract, so a client used only for
// those operations needs no API key.
func (c *Client) ensureExtractor() (extract.Extractor, error) {
	if c.extractor == nil {
		ex, err := initExtractor(c.config.Extractor)
		if err != nil {
			return nil, err
		}
		c.extractor = ex
	}
	return c.extractor, nil
}

// initExtractor creates the configured extraction provider.
func initExtractor(cfg ExtractorConfig) (extract.Extractor, error) {
	switch cfg.Provider {
	case "openai":
		return openaiExtract.NewClient(&openaiExtract.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	case "anthropic":
		return anthropicExtract.NewClient(&anthropicExtract.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	case "gemini":
		return geminiExtract.NewClient(&geminiExtract.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	}
	return nil, NewMemoryError("NewClient", ErrInvalidConfig)
}

// Commit records one event message.
//
// The flow is: load the current record set, extract a structured draft
// from the message, reconcile it into a create-or-update decision, and
// persist the resulting record. Validation and write failures abort only
// this commit; the store stays consistent.
//
// Parameters:
//   - ctx: Context for cancellation (honored by the extraction call)
//   - message: Free-form text describing the event
//   - opts: Optional parameters (reference date, attachments, owner)
//
// Returns a CommitResult reporting which action was taken against which
// identity.
func (c *Client) Commit(ctx context.Context, message string, opts ...CommitOption) (*CommitResult, error) {
	options := &CommitOptions{}
	for _, opt := range opts {
		opt(options)
	}
	today := options.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = store.DateOnly(today)

	extractor, err := c.ensureExtractor()
	if err != nil {
		return nil, err
	}

	records, _, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, NewMemoryError("Commit", err)
	}

	// Every occupied identity, not just the parsed records: a malformed
	// document or another owner's record still holds its filename.
	identities, err := c.store.Identities(ctx)
	if err != nil {
		return nil, NewMemoryError("Commit", err)
	}

	draft, err := extractor.Extract(ctx, &extract.Request{
		Message:     message,
		Today:       today,
		Existing:    records,
		Attachments: options.Attachments,
	})
	if err != nil {
		return nil, NewMemoryError("Commit", err)
	}

	action, record, err := c.reconciler.Reconcile(draft, records, identities)
	if err != nil {
		return nil, NewMemoryError("Commit", err)
	}

	if record.UserID == "" {
		record.UserID = options.UserID
		if record.UserID == "" {
			record.UserID = c.config.Store.UserID
		}
	}

	if err := c.store.Save(ctx, record); err != nil {
		return nil, NewMemoryError("Commit", err)
	}

	return &CommitResult{
		CommitID: c.node.Generate().Int64(),
		Action:   action,
		Identity: record.Identity,
		Record:   recordFromStore(record),
	}, nil
}

// Records returns all stored records along with the malformed-document
// reports from the load.
func (c *Client) Records(ctx context.Context) ([]*Record, []MalformedDocument, error) {
	records, malformed, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, nil, NewMemoryError("Records", err)
	}
	return recordsFromStore(records), malformedFromStore(malformed), nil
}

// Plan computes the categorized publication view of the record set.
//
// The plan is a pure value: identical store contents and reference date
// always yield an identical plan.
func (c *Client) Plan(ctx context.Context, opts ...PlanOption) (*PagePlan, error) {
	plan, malformed, err := c.plan(ctx, opts)
	if err != nil {
		return nil, NewMemoryError("Plan", err)
	}
	return planFromPublish(plan, malformed), nil
}

// RenderPage computes the publication plan and renders it as a complete
// static HTML page.
func (c *Client) RenderPage(ctx context.Context, opts ...PlanOption) (string, error) {
	plan, _, err := c.plan(ctx, opts)
	if err != nil {
		return "", NewMemoryError("RenderPage", err)
	}
	page, err := c.renderer.Render(plan)
	if err != nil {
		return "", NewMemoryError("RenderPage", err)
	}
	return page, nil
}

// plan loads the record set and categorizes it.
func (c *Client) plan(ctx context.Context, opts []PlanOption) (*publish.Plan, []store.MalformedDocument, error) {
	options := &PlanOptions{}
	for _, opt := range opts {
		opt(options)
	}
	today := options.Today
	if today.IsZero() {
		today = time.Now()
	}

	records, malformed, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return c.planner.Plan(today, records, malformed), malformed, nil
}

// Cleanup deletes all expired records and purges their attachments.
//
// Returns the identities of the deleted records.
func (c *Client) Cleanup(ctx context.Context, opts ...PlanOption) ([]string, error) {
	options := &PlanOptions{}
	for _, opt := range opts {
		opt(options)
	}
	today := options.Today
	if today.IsZero() {
		today = time.Now()
	}

	deleted, err := c.sweeper.Cleanup(ctx, today)
	if err != nil {
		return deleted, NewMemoryError("Cleanup", err)
	}
	return deleted, nil
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	if c.extractor != nil {
		if err := c.extractor.Close(); err != nil {
			return NewMemoryError("Close", err)
		}
	}
	return c.store.Close()
}
