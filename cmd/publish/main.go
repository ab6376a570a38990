// Command publish generates the static events page from the memories
// directory.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eventmem/eventmem-go/pkg/core"
	"github.com/eventmem/eventmem-go/pkg/store"
)

func main() {
	var (
		dir       = flag.String("memories-dir", "", "directory holding the record documents (overrides MEMORIES_DIR)")
		outputDir = flag.String("output-dir", "", "directory to write index.html into (required)")
		title     = flag.String("title", "", "page title (overrides SITE_TITLE)")
		todayRaw  = flag.String("today", "", "override today's date (YYYY-MM-DD, for testing)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *outputDir == "" {
		logger.Error("missing required -output-dir flag")
		os.Exit(2)
	}

	config, err := core.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dir != "" {
		config.Store.Dir = *dir
	}
	if *title != "" {
		config.Publish.SiteTitle = *title
	}
	var opts []core.PlanOption
	if *todayRaw != "" {
		today, err := store.ParseDate(*todayRaw)
		if err != nil {
			logger.Error("invalid -today value", "value", *todayRaw, "error", err)
			os.Exit(2)
		}
		opts = append(opts, core.WithTodayForPlan(today))
	}

	client, err := core.NewClient(config)
	if err != nil {
		logger.Error("failed to initialize client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()

	plan, err := client.Plan(ctx, opts...)
	if err != nil {
		logger.Error("planning failed", "error", err)
		os.Exit(1)
	}
	for _, m := range plan.Malformed {
		logger.Warn("skipping malformed document", "identity", m.Identity, "reason", m.Reason)
	}

	page, err := client.RenderPage(ctx, opts...)
	if err != nil {
		logger.Error("rendering failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	outPath := filepath.Join(*outputDir, "index.html")
	if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
		logger.Error("failed to write page", "path", outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("page published",
		"path", outPath,
		"this_week", len(plan.ThisWeek),
		"upcoming", len(plan.Upcoming),
		"excluded", plan.ExcludedCount)
}
