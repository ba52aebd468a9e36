// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pwd-analyzer/internal/util"
	"pwd-analyzer/pkg/batch"
	"pwd-analyzer/pkg/hibp"
)

var (
	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Analyze a newline-delimited file of passwords",
		RunE: func(cmd *cobra.Command, args []string) error {
			return batchCommand()
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	batchCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Password input file, one password per line (required)")
	batchCmd.MarkFlagRequired("in-file")
	batchCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Worker pool size. If omitted, defaults to the number of logical processors.")
	batchCmd.Flags().BoolVarP(&withBreach, "breach", "b", false, "Also check every password against the breach corpus.")
	batchCmd.Flags().BoolVar(&basicScoring, "basic", false, "Use the built-in scoring heuristic instead of the zxcvbn estimator.")
	batchCmd.Flags().StringVar(&commonFile, "common-file", "", "Supplemental common-passwords word list, one entry per line.")
	batchCmd.Flags().StringVar(&dictFile, "dict-file", "", "Supplemental dictionary word list, one entry per line.")
	batchCmd.Flags().StringVar(&csvFile, "export-csv", "", "Export the results as CSV to the given file.")
	batchCmd.Flags().BoolVar(&includePasswords, "include-passwords", false, "Include the raw passwords in the CSV export. Off by default for a reason.")
	batchCmd.Flags().IntVar(&timeoutSeconds, "timeout", 10, "Per-attempt timeout in seconds for breach lookups.")
	batchCmd.Flags().IntVar(&maxRetries, "retries", 3, "Retry ceiling for breach lookups.")

	rootCmd.AddCommand(batchCmd)
}

func batchCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	passwords, err := readPasswordFile(inputFile)
	if err != nil {
		return err
	}
	if len(passwords) == 0 {
		log.Warn().Msgf("no passwords found in %s", inputFile)
		return nil
	}

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	var checker hibp.Checker
	if withBreach {
		checker = hibp.NewClient(time.Duration(timeoutSeconds)*time.Second, maxRetries)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(analyzer, checker, batch.Config{
		Workers:       threads,
		CheckBreaches: withBreach,
		KeepPasswords: includePasswords,
	})

	log.Info().Msgf("analyzing %d passwords, ^C to stop the process", len(passwords))
	start := time.Now()
	items, runErr := runner.Run(ctx, passwords)
	log.Info().Msgf("analyzed %d passwords in %v", len(items), time.Since(start))

	renderBatchSummary(items)

	if csvFile != "" && len(items) > 0 {
		if err := exportCSV(csvFile, items); err != nil {
			return err
		}
		log.Info().Msgf("Results exported to %s", csvFile)
	}

	if runErr != nil {
		log.Warn().Msgf("batch run was cancelled, results are partial")
	}
	return nil
}

func readPasswordFile(fileName string) ([]string, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}

	defer func(file *os.File) {
		if err = file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing password file")
		}
	}(file)

	var passwords []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			passwords = append(passwords, line)
		}
	}
	return passwords, scanner.Err()
}

func renderBatchSummary(items []batch.Item) {
	counts := make(map[string]int)
	compromised := 0
	for _, item := range items {
		counts[item.Analysis.Level.String()]++
		if item.Breach != nil && item.Breach.Compromised {
			compromised++
		}
	}

	for _, level := range []string{"Very Strong", "Strong", "Medium", "Weak", "Very Weak"} {
		if counts[level] > 0 {
			log.Info().Msgf("%s: %d", level, counts[level])
		}
	}
	if withBreach {
		log.Warn().Msgf("%d of %d passwords found in breach corpus", compromised, len(items))
	}
}

func exportCSV(fileName string, items []batch.Item) error {
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	defer func(file *os.File) {
		if err = file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing CSV export file")
		}
	}(file)

	w := csv.NewWriter(file)

	header := []string{"line", "length", "score", "strength", "entropy_bits", "issues", "suggestions"}
	if includePasswords {
		header = append([]string{"password"}, header...)
	}
	if withBreach {
		header = append(header, "compromised", "breach_count", "risk_level")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, item := range items {
		record := []string{
			strconv.Itoa(item.Index + 1),
			strconv.Itoa(item.Length),
			strconv.Itoa(item.Analysis.Score),
			item.Analysis.Level.String(),
			fmt.Sprintf("%.1f", item.Analysis.EntropyBits),
			strconv.Itoa(len(item.Analysis.Issues)),
			strconv.Itoa(len(item.Analysis.Suggestions)),
		}
		if includePasswords {
			record = append([]string{item.Password}, record...)
		}
		if withBreach {
			if item.Breach != nil && !item.Breach.Unavailable {
				record = append(record,
					strconv.FormatBool(item.Breach.Compromised),
					strconv.FormatUint(item.Breach.Count, 10),
					item.Breach.Risk.String(),
				)
			} else {
				record = append(record, "unknown", "", "")
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
