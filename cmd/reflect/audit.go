package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/reflect-backend/internal/adapter/postgres"
	pgaudit "github.com/heartmarshall/reflect-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

type auditLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AuditEvent, error)
}

func newAuditCmd(opts *cliOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit <user-id>",
		Short: "Print a user's audit events from the postgres sink",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be > 0")
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return fmt.Errorf("database.dsn is not set")
			}

			pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			return printAudit(cmd, pgaudit.New(pool), args[0], limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of events")
	return cmd
}

func printAudit(cmd *cobra.Command, repo auditLister, userID string, limit int) error {
	events, err := repo.ListByUser(cmd.Context(), userID, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintf(out, "no audit events for %s\n", userID)
		return nil
	}
	for _, e := range events {
		fields := make([]string, 0, len(e.Fields))
		for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
			fields = append(fields, k+"="+e.Fields[k])
		}
		fmt.Fprintf(out, "[%s] %s %s\n", e.Timestamp.UTC().Format(time.RFC3339), e.Kind, strings.Join(fields, " "))
	}
	return nil
}
