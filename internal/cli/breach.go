// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pwd-analyzer/internal/util"
	"pwd-analyzer/pkg/hibp"
)

var (
	breachCmd = &cobra.Command{
		Use:   "breach PASSWORD",
		Short: "Check a password against the Pwned Passwords breach corpus",
		Long: "Check whether a password appears in known credential breaches using the " +
			"haveibeenpwned.com range API. The raw password and its full hash never leave " +
			"this machine; only the first 5 characters of the SHA-1 are sent.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return breachCommand(args[0])
		},
	}
)

func init() {
	breachCmd.Flags().IntVar(&timeoutSeconds, "timeout", 10, "Per-attempt timeout in seconds.")
	breachCmd.Flags().IntVar(&maxRetries, "retries", 3, "Retry ceiling before reporting the check as unavailable.")

	rootCmd.AddCommand(breachCmd)
}

func breachCommand(password string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	// ^C during backoff cancels the check; it is then reported as
	// unavailable, same as exhausted retries.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker := hibp.NewClient(time.Duration(timeoutSeconds)*time.Second, maxRetries)
	res, err := checker.Check(ctx, password)
	if err != nil {
		return err
	}

	renderBreach(res)
	return nil
}
