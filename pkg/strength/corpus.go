// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed common_passwords.txt
var builtinCommon string

//go:embed dictionary_words.txt
var builtinDictionary string

// Corpus holds the two read-only word sets the matcher works against: an
// exact-membership common-password list and a dictionary list matched by
// substring. It is immutable once built, so concurrent reads need no
// locking.
type Corpus struct {
	common map[string]struct{}
	dict   map[string]struct{}
	// dictionary words longer than 3 runes, ascending, for deterministic
	// substring scans
	matchWords []string
}

// CorpusFiles optionally supplements the built-in word sets with flat
// newline-delimited lists. Empty paths are skipped.
type CorpusFiles struct {
	CommonPasswords string
	DictionaryWords string
}

// DefaultCorpus builds a corpus from the embedded built-in lists only.
func DefaultCorpus() *Corpus {
	c, _ := LoadCorpus(CorpusFiles{})
	return c
}

// LoadCorpus merges the built-in lists with any supplemental files. Words
// are lower-cased on load; lookups are therefore case-insensitive.
func LoadCorpus(files CorpusFiles) (*Corpus, error) {
	c := &Corpus{
		common: make(map[string]struct{}),
		dict:   make(map[string]struct{}),
	}

	readLines(strings.NewReader(builtinCommon), c.common)
	readLines(strings.NewReader(builtinDictionary), c.dict)

	if files.CommonPasswords != "" {
		if err := mergeFile(files.CommonPasswords, c.common); err != nil {
			return nil, err
		}
		log.Debug().Msgf("merged common passwords from %s, %d entries total", files.CommonPasswords, len(c.common))
	}
	if files.DictionaryWords != "" {
		if err := mergeFile(files.DictionaryWords, c.dict); err != nil {
			return nil, err
		}
		log.Debug().Msgf("merged dictionary words from %s, %d entries total", files.DictionaryWords, len(c.dict))
	}

	for w := range c.dict {
		if len([]rune(w)) > 3 {
			c.matchWords = append(c.matchWords, w)
		}
	}
	sort.Strings(c.matchWords)

	return c, nil
}

// IsCommon reports whether the password is an exact member of the
// common-password set. The check is case-insensitive.
func (c *Corpus) IsCommon(password string) bool {
	_, ok := c.common[strings.ToLower(password)]
	return ok
}

func mergeFile(fileName string, into map[string]struct{}) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}

	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing word list %s", fileName)
		}
	}(file)

	readLines(file, into)
	return nil
}

func readLines(r io.Reader, into map[string]struct{}) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		into[word] = struct{}{}
	}
}
