package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newChatCmd(opts *cliOptions) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive support session",
		Long: `Reads messages from stdin and prints each reply.

Type "exit" or "quit" (or send EOF) to end the session. Without --user a
random user id is generated, so each session starts a fresh conversation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			comps, err := opts.build(cmd)
			if err != nil {
				return err
			}
			defer comps.Close() //nolint:errcheck

			if userID == "" {
				userID = uuid.NewString()
			}
			return runChat(cmd, comps.Therapy, userID)
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id to continue a conversation")
	return cmd
}

func runChat(cmd *cobra.Command, svc processor, userID string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ReflectAI session for %s. Type \"exit\" to leave.\n", userID)

	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Take care.")
			return nil
		}

		reply, err := svc.Process(cmd.Context(), userID, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "reflect> %s\n", reply.Text)
	}
}
