// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pwd-analyzer/internal/util"
	"pwd-analyzer/pkg/hibp"
	"pwd-analyzer/pkg/strength"
)

var (
	analyzeCmd = &cobra.Command{
		Use:   "analyze [PASSWORD]",
		Short: "Analyze the strength of a password",
		Args: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
					return err
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				// Dummy string
				return analyzeCommand("")
			}
			return analyzeCommand(args[0])
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	analyzeCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode.")
	analyzeCmd.Flags().BoolVarP(&withBreach, "breach", "b", false, "Also check the password against the Pwned Passwords breach corpus.")
	analyzeCmd.Flags().BoolVar(&basicScoring, "basic", false, "Use the built-in scoring heuristic instead of the zxcvbn estimator.")
	analyzeCmd.Flags().StringVar(&commonFile, "common-file", "", "Supplemental common-passwords word list, one entry per line.")
	analyzeCmd.Flags().StringVar(&dictFile, "dict-file", "", "Supplemental dictionary word list, one entry per line.")
	analyzeCmd.Flags().StringVar(&jsonFile, "json", "", "Write the analysis as JSON to the given file.")
	analyzeCmd.Flags().IntVar(&timeoutSeconds, "timeout", 10, "Per-attempt timeout in seconds for the breach lookup.")
	analyzeCmd.Flags().IntVar(&maxRetries, "retries", 3, "Retry ceiling for the breach lookup.")

	rootCmd.AddCommand(analyzeCmd)
}

func analyzeCommand(password string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	var checker hibp.Checker
	if withBreach {
		checker = hibp.NewClient(time.Duration(timeoutSeconds)*time.Second, maxRetries)
	}

	if !interactive {
		return analyzeOne(analyzer, checker, password)
	}

	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a valid password")
			}
			return nil
		},
	}

	log.Info().Msgf("Running interactive session. ^C to exit")
	if err = runInteractiveSession(prompt, analyzer, checker); err != nil {
		if err.Error() == "^C" || err.Error() == "^D" {
			log.Info().Msgf("Goodbye")
		} else {
			log.Error().Err(err).Msgf("Error during interactive session")
		}
		// No return to avoid the default cobra error message
		return nil
	}

	return nil
}

func runInteractiveSession(prompt promptui.Prompt, analyzer *strength.Analyzer, checker hibp.Checker) error {
	for {
		password, err := prompt.Run()
		if err != nil {
			return err
		}

		if err = analyzeOne(analyzer, checker, password); err != nil {
			log.Error().Err(err).Msg("Error during analysis")
		}
	}
}

func analyzeOne(analyzer *strength.Analyzer, checker hibp.Checker, password string) error {
	res, err := analyzer.Analyze(password)
	if err != nil {
		return err
	}

	renderAnalysis(res)

	if checker != nil {
		breach, err := checker.Check(context.Background(), password)
		if err != nil {
			return err
		}
		renderBreach(breach)
	}

	if jsonFile != "" {
		if err := exportJSON(jsonFile, res); err != nil {
			return err
		}
		log.Info().Msgf("Analysis exported to %s", jsonFile)
	}

	return nil
}

func renderAnalysis(res *strength.Result) {
	log.Info().Msgf("Strength: %s (%d/100)", res.Level, res.Score)
	log.Info().Msgf("Length: %d characters, %.0f%% unique", res.Length, res.UniqueCharRatio*100)
	log.Info().Msgf("Entropy: %.1f bits", res.EntropyBits)
	log.Info().Msgf("Character types: lowercase=%t uppercase=%t numbers=%t symbols=%t",
		res.Composition.Lower, res.Composition.Upper, res.Composition.Digit, res.Composition.Symbol)

	for _, issue := range res.Issues {
		log.Warn().Msgf("Issue: %s", issue)
	}
	for _, suggestion := range res.Suggestions {
		log.Info().Msgf("Suggestion: %s", suggestion)
	}

	if res.Backend != nil {
		log.Info().Msgf("Estimated guesses to crack: %.0f", res.Backend.Guesses)
		log.Info().Msgf("Crack time, online throttled (100/h): %s", res.Backend.CrackTimes.OnlineThrottled)
		log.Info().Msgf("Crack time, online unthrottled (10/s): %s", res.Backend.CrackTimes.OnlineUnthrottled)
		log.Info().Msgf("Crack time, offline slow hash (1e4/s): %s", res.Backend.CrackTimes.OfflineSlow)
		log.Info().Msgf("Crack time, offline fast hash (1e10/s): %s", res.Backend.CrackTimes.OfflineFast)
	} else {
		log.Info().Msgf("Estimated crack time (offline attack): %s", strength.EstimateCrackTime(res.EntropyBits))
	}
}

func renderBreach(res *hibp.Result) {
	if res.Unavailable {
		log.Warn().Msgf("Breach check: %s", res.Message)
		return
	}

	if res.Compromised {
		log.Warn().Msgf("Breach check: %s", res.Message)
		log.Warn().Msgf("Risk level: %s", res.Risk)
	} else {
		log.Info().Msgf("Breach check: %s", res.Message)
	}
	log.Info().Msgf("Recommendation: %s", res.Recommendation)
}

// exportJSON writes the analysis to a file. The password itself is not part
// of the result and is never written.
func exportJSON(fileName string, res *strength.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fileName, data, 0o600)
}

func newAnalyzer() (*strength.Analyzer, error) {
	corpus, err := strength.LoadCorpus(strength.CorpusFiles{
		CommonPasswords: commonFile,
		DictionaryWords: dictFile,
	})
	if err != nil {
		return nil, err
	}

	var opts []strength.Option
	if !basicScoring {
		opts = append(opts, strength.WithBackend(strength.NewZxcvbnBackend()))
	}

	return strength.NewAnalyzer(corpus, opts...), nil
}
