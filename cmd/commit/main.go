// Command commit records one event message into the memories directory.
//
// It loads configuration from the environment (and .env), extracts
// structured event fields from the message, and creates or updates the
// matching record document.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/eventmem/eventmem-go/pkg/core"
	"github.com/eventmem/eventmem-go/pkg/store"
)

// stringList collects repeatable flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var (
		message  = flag.String("message", "", "free-form text describing the event (required)")
		dir      = flag.String("memories-dir", "", "directory holding the record documents (overrides MEMORIES_DIR)")
		todayRaw = flag.String("today", "", "override today's date (YYYY-MM-DD, for testing)")
		userID   = flag.String("user-id", "", "owner of the record (overrides MEMORIES_USER_ID)")
		attach   stringList
	)
	flag.Var(&attach, "attach", "attachment URL to record (repeatable)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *message == "" {
		logger.Error("missing required -message flag")
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
	if *userID != "" {
		config.Store.UserID = *userID
	}

	var opts []core.CommitOption
	if *todayRaw != "" {
		today, err := store.ParseDate(*todayRaw)
		if err != nil {
			logger.Error("invalid -today value", "value", *todayRaw, "error", err)
			os.Exit(2)
		}
		opts = append(opts, core.WithToday(today))
	}
	if len(attach) > 0 {
		opts = append(opts, core.WithAttachments(attach))
	}

	client, err := core.NewClient(config)
	if err != nil {
		logger.Error("failed to initialize client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	result, err := client.Commit(ctx, *message, opts...)
	if err != nil {
		logger.Error("commit failed", "error", err)
		os.Exit(1)
	}

	logger.Info("commit complete",
		"action", result.Action,
		"identity", result.Identity,
		"commit_id", result.CommitID)
	fmt.Printf("%sd %s\n", result.Action, result.Identity)
}
