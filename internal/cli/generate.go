// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pwd-analyzer/internal/util"
	"pwd-analyzer/pkg/strength"
)

var (
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password from a CSPRNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCommand()
		},
	}
)

func init() {
	generateCmd.Flags().IntVarP(&genLength, "length", "l", 16, "Password length, between 4 and 128.")
	generateCmd.Flags().BoolVar(&noUpper, "no-upper", false, "Exclude uppercase letters.")
	generateCmd.Flags().BoolVar(&noLower, "no-lower", false, "Exclude lowercase letters.")
	generateCmd.Flags().BoolVar(&noDigits, "no-digits", false, "Exclude digits.")
	generateCmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "Exclude symbols.")

	rootCmd.AddCommand(generateCmd)
}

func generateCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	generated, err := strength.Generate(strength.GenerateSpec{
		Length:  genLength,
		Upper:   !noUpper,
		Lower:   !noLower,
		Digits:  !noDigits,
		Symbols: !noSymbols,
	})
	if err != nil {
		return err
	}

	// The password goes to stdout so it can be piped; everything else is a
	// log line.
	fmt.Println(generated.Password)
	log.Info().Msgf("Charset size %d, theoretical entropy %.1f bits", generated.CharsetSize, generated.EntropyBits)

	return nil
}
