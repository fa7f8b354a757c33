// Command tables-check lints the sound-change data tables before they are
// compiled into the binaries: symbol typos, duplicate stages, junction
// variants that can never fire, and gaps in the spelling and transcription
// coverage.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"etymon/pkg/orthography"
	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

var exitFunc = os.Exit

type phonemesFile struct {
	Phonemes        []phoneme.Phoneme `json:"phonemes"`
	Transliteration map[string]string `json:"transliteration"`
}

type stagesFile struct {
	Stages []soundlaw.Stage `json:"stages"`
}

type junctionsFile struct {
	Junctions []junctionEntry `json:"junctions"`
}

type junctionEntry struct {
	Name      string          `json:"name"`
	Mandatory bool            `json:"mandatory,omitempty"`
	Variants  []soundlaw.Rule `json:"variants"`
}

type graphemesFile struct {
	Graphemes []orthography.GraphemeRule `json:"graphemes"`
}

type ipaFile struct {
	IPA map[string]string `json:"ipa"`
}

type entriesFile struct {
	Entries []lexiconEntry `json:"entries"`
}

type lexiconEntry struct {
	Key           string `json:"key"`
	Citation      string `json:"citation,omitempty"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

// main runs the command-line interface using the program arguments and exits
// the process with the status code returned by cli.
func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tables-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var tablesDir string
	fs.StringVar(&tablesDir, "tables", "internal/tables/data", "directory holding the table JSON files")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := run(tablesDir); err != nil {
		if _, writeErr := fmt.Fprintf(stderr, "Table validation failed: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	if _, writeErr := fmt.Fprintln(stdout, "Table validation passed."); writeErr != nil {
		return 1
	}
	return 0
}

// validateDir ensures the tables directory is a relative path within the
// repository tree. This mitigates G304 concerns around variable-based file
// inclusion.
func validateDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("empty tables directory")
	}
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("absolute paths not allowed: %s", dir)
	}
	clean := filepath.Clean(dir)
	if strings.Contains(clean, "..") { // prevents traversal outside working dir
		return "", fmt.Errorf("path traversal not allowed: %s", dir)
	}
	return clean, nil
}

func readJSON(dir, name string, v any) error {
	raw, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304: dir validated by validateDir
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// run loads the table files from dir and reports every lint finding at
// once. File-level read or parse failures abort immediately because the
// remaining checks would only cascade from them.
func run(tablesDir string) error {
	dir, err := validateDir(tablesDir)
	if err != nil {
		return err
	}

	var phonemes phonemesFile
	if err := readJSON(dir, "phonemes.json", &phonemes); err != nil {
		return err
	}
	var stages stagesFile
	if err := readJSON(dir, "stages.json", &stages); err != nil {
		return err
	}
	var junctions junctionsFile
	if err := readJSON(dir, "junctions.json", &junctions); err != nil {
		return err
	}
	var graphemes graphemesFile
	if err := readJSON(dir, "graphemes.json", &graphemes); err != nil {
		return err
	}
	var ipa ipaFile
	if err := readJSON(dir, "ipa.json", &ipa); err != nil {
		return err
	}
	var roots entriesFile
	if err := readJSON(dir, "roots.json", &roots); err != nil {
		return err
	}
	var suffixes entriesFile
	if err := readJSON(dir, "suffixes.json", &suffixes); err != nil {
		return err
	}

	vocab, err := phoneme.NewVocabulary(phonemes.Phonemes)
	if err != nil {
		return fmt.Errorf("phonemes.json: %w", err)
	}

	var findings []string
	findings = append(findings, checkTransliteration(phonemes.Transliteration, vocab)...)
	findings = append(findings, checkStages(stages, vocab)...)
	findings = append(findings, checkJunctions(junctions, vocab)...)
	findings = append(findings, checkGraphemes(graphemes, vocab)...)
	findings = append(findings, checkIPA(ipa, vocab)...)
	findings = append(findings, checkEntries("roots.json", roots, vocab)...)
	findings = append(findings, checkEntries("suffixes.json", suffixes, vocab)...)

	if len(findings) > 0 {
		return fmt.Errorf("%d findings\n  %s", len(findings), strings.Join(findings, "\n  "))
	}
	return nil
}

func checkTransliteration(mapping map[string]string, vocab *phoneme.Vocabulary) []string {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var findings []string
	for _, k := range keys {
		if !vocab.Has(mapping[k]) {
			findings = append(findings, fmt.Sprintf("phonemes.json: transliteration %q maps to unknown symbol %q", k, mapping[k]))
		}
	}
	return findings
}

func checkStages(doc stagesFile, vocab *phoneme.Vocabulary) []string {
	var findings []string
	seen := make(map[string]bool, len(doc.Stages))
	for _, stage := range doc.Stages {
		if seen[stage.Name] {
			findings = append(findings, fmt.Sprintf("stages.json: duplicate stage %q", stage.Name))
		}
		seen[stage.Name] = true
		if err := stage.Validate(vocab); err != nil {
			findings = append(findings, fmt.Sprintf("stages.json: %v", err))
		}
	}
	return findings
}

func checkJunctions(doc junctionsFile, vocab *phoneme.Vocabulary) []string {
	var findings []string
	for _, junction := range doc.Junctions {
		if len(junction.Variants) == 0 {
			findings = append(findings, fmt.Sprintf("junctions.json: junction %q has no variants", junction.Name))
			continue
		}
		shapes := make(map[string]string, len(junction.Variants))
		for i, variant := range junction.Variants {
			label := variant.Name
			if label == "" {
				label = fmt.Sprintf("variant %d", i)
			}
			if err := variant.Validate(vocab); err != nil {
				findings = append(findings, fmt.Sprintf("junctions.json: junction %q %s: %v", junction.Name, label, err))
				continue
			}
			shape := variantShape(variant)
			if prev, dup := shapes[shape]; dup {
				findings = append(findings, fmt.Sprintf("junctions.json: junction %q: %s is unreachable, shadowed by %s", junction.Name, label, prev))
				continue
			}
			shapes[shape] = label
		}
	}
	return findings
}

// variantShape renders the parts of a variant that decide whether it
// matches. Variants are tried in order and the first match wins, so two
// variants with the same shape leave the later one dead.
func variantShape(r soundlaw.Rule) string {
	return fmt.Sprintf("%+v|%+v|%+v|%v", r.Match, r.Left, r.Right, r.Same)
}

func checkGraphemes(doc graphemesFile, vocab *phoneme.Vocabulary) []string {
	table, err := orthography.NewTable(vocab, doc.Graphemes)
	if err != nil {
		return []string{fmt.Sprintf("graphemes.json: %v", err)}
	}
	var findings []string
	for _, sym := range table.CoverageGaps(vocab) {
		findings = append(findings, fmt.Sprintf("graphemes.json: symbol %q has no context-free fallback", sym))
	}
	return findings
}

func checkIPA(doc ipaFile, vocab *phoneme.Vocabulary) []string {
	keys := make([]string, 0, len(doc.IPA))
	for k := range doc.IPA {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var findings []string
	for _, k := range keys {
		if !vocab.Has(k) {
			findings = append(findings, fmt.Sprintf("ipa.json: unknown symbol %q", k))
		}
	}
	for _, sym := range vocab.Symbols() {
		if doc.IPA[sym] == "" {
			findings = append(findings, fmt.Sprintf("ipa.json: symbol %q has no transcription", sym))
		}
	}
	return findings
}

func checkEntries(name string, doc entriesFile, vocab *phoneme.Vocabulary) []string {
	var findings []string
	seen := make(map[string]bool, len(doc.Entries))
	for i, entry := range doc.Entries {
		if entry.Key == "" {
			findings = append(findings, fmt.Sprintf("%s: entry %d has no key", name, i))
			continue
		}
		if seen[entry.Key] {
			findings = append(findings, fmt.Sprintf("%s: duplicate key %q", name, entry.Key))
		}
		seen[entry.Key] = true
		if strings.TrimSpace(entry.Pronunciation) == "" {
			findings = append(findings, fmt.Sprintf("%s: entry %q has no pronunciation", name, entry.Key))
			continue
		}
		if _, err := vocab.Parse(entry.Pronunciation); err != nil {
			findings = append(findings, fmt.Sprintf("%s: entry %q: %v", name, entry.Key, err))
		}
	}
	return findings
}
