package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/reflect-backend/internal/domain"
	"github.com/heartmarshall/reflect-backend/internal/service/therapy"
)

type processor interface {
	Process(ctx context.Context, userID, text string) (therapy.Reply, error)
}

type historian interface {
	History(ctx context.Context, userID string) ([]domain.Message, error)
}

func newHistoryCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <user-id>",
		Short: "Print a user's stored conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := opts.build(cmd)
			if err != nil {
				return err
			}
			defer comps.Close() //nolint:errcheck

			return printHistory(cmd, comps.Therapy, args[0])
		},
	}
}

func printHistory(cmd *cobra.Command, svc historian, userID string) error {
	msgs, err := svc.History(cmd.Context(), userID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(msgs) == 0 {
		fmt.Fprintf(out, "no messages for %s\n", userID)
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(out, "[%s] %-9s %s\n", m.Timestamp.UTC().Format(time.RFC3339), m.Role, m.Content)
	}
	return nil
}
