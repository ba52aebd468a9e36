// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// analyze, batch, serve
	commonFile string
	// analyze, batch, serve
	dictFile string
	// analyze, batch, serve
	basicScoring bool
	// analyze
	interactive bool
	// analyze, batch
	withBreach bool
	// analyze
	jsonFile string
	// analyze, breach, batch, serve
	timeoutSeconds int
	// analyze, breach, batch, serve
	maxRetries int
	// batch
	inputFile string
	// batch
	threads int
	// batch
	csvFile string
	// batch
	includePasswords bool
	// generate
	genLength int
	// generate
	noUpper bool
	// generate
	noLower bool
	// generate
	noDigits bool
	// generate
	noSymbols bool
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
	// serve
	cacheTTLSeconds int
)
