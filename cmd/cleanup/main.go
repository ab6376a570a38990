// Command cleanup deletes expired record documents from the memories
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/eventmem/eventmem-go/pkg/core"
	"github.com/eventmem/eventmem-go/pkg/store"
)

func main() {
	var (
		dir      = flag.String("memories-dir", "", "directory holding the record documents (overrides MEMORIES_DIR)")
		todayRaw = flag.String("today", "", "override today's date (YYYY-MM-DD, for testing)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	config, err := core.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dir != "" {
		config.Store.Dir = *dir
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

	deleted, err := client.Cleanup(context.Background(), opts...)
	if err != nil {
		logger.Error("cleanup failed", "error", err, "deleted_before_failure", len(deleted))
		os.Exit(1)
	}

	for _, identity := range deleted {
		fmt.Printf("deleted %s\n", identity)
	}
	logger.Info("cleanup complete", "deleted", len(deleted))
}
