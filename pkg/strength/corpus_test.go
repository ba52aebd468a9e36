package strength

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCorpusLookups(t *testing.T) {
	c := DefaultCorpus()

	if !c.IsCommon("password") {
		t.Errorf("'password' should be in the built-in common list")
	}
	if !c.IsCommon("PASSWORD") {
		t.Errorf("Common lookup should be case-insensitive")
	}
	if c.IsCommon("zK#9!mQ@4xR&7pL$") {
		t.Errorf("Random password should not be common")
	}
}

func TestLoadCorpusMergesFiles(t *testing.T) {
	dir := t.TempDir()

	commonFile := filepath.Join(dir, "common.txt")
	if err := os.WriteFile(commonFile, []byte("Hunter2\n\n  spaces  \n"), 0o600); err != nil {
		t.Fatalf("Should not fail writing file: %s", err)
	}
	dictFile := filepath.Join(dir, "dict.txt")
	if err := os.WriteFile(dictFile, []byte("Wombat\ncat\n"), 0o600); err != nil {
		t.Fatalf("Should not fail writing file: %s", err)
	}

	c, err := LoadCorpus(CorpusFiles{CommonPasswords: commonFile, DictionaryWords: dictFile})
	if err != nil {
		t.Fatalf("LoadCorpus should not fail: %s", err)
	}

	if !c.IsCommon("hunter2") {
		t.Errorf("Merged common entry should be found lower-cased")
	}
	if !c.IsCommon("spaces") {
		t.Errorf("Merged entries should be trimmed")
	}
	// Built-in entries survive the merge.
	if !c.IsCommon("password") {
		t.Errorf("Built-in common entries should still be present")
	}

	issues := c.CheckCommonPatterns("xxWOMBATxx")
	if !hasKind(issues, IssueDictionaryWord) {
		t.Errorf("Merged dictionary word should match case-insensitively, have %+v", issues)
	}
	// Words of 3 runes or fewer never participate in substring matching.
	if hasKind(c.CheckCommonPatterns("concatenated"), IssueDictionaryWord) {
		t.Errorf("Short dictionary entries should not match as substrings")
	}
}

func TestLoadCorpusMissingFile(t *testing.T) {
	_, err := LoadCorpus(CorpusFiles{CommonPasswords: filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Errorf("LoadCorpus should fail on a missing file")
	}
}
