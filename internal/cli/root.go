// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwd-analyzer [COMMAND] [OPTIONS]",
		Short: "Analyze password strength and check for breach exposure",
		Long: "Analyze the strength of a password with scoring, pattern and corpus checks, " +
			"and check whether it appears in the Pwned Passwords (haveibeenpwned.com) breach dumps " +
			"using the k-anonymity range API. Only a 5-character hash prefix ever leaves this machine.",
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
}

func Execute() error {
	return rootCmd.Execute()
}
