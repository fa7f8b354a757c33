package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"etymon/internal/blob"
	"etymon/internal/lexicon"
)

// LexiconExport is the serialized shape of a lexicon export.
type LexiconExport struct {
	Roots    []Root   `json:"roots"`
	Suffixes []Suffix `json:"suffixes"`
}

// ExportLexicon serializes every root and suffix in the requested format,
// json or csv.
func (s *Service) ExportLexicon(ctx context.Context, format string) ([]byte, error) {
	var data []byte
	err := s.instrument(ctx, "export_lexicon", func(ctx context.Context) error {
		var export LexiconExport
		if err := s.store.View(ctx, func(view lexicon.TransactionView) error {
			export.Roots = view.ListRoots()
			export.Suffixes = view.ListSuffixes()
			return nil
		}); err != nil {
			return err
		}
		var err error
		data, err = encodeLexicon(export, format)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func encodeLexicon(export LexiconExport, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(export, "", "  ")
	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"kind", "key", "citation", "pronunciation", "meaning"}); err != nil {
			return nil, err
		}
		for _, r := range export.Roots {
			if err := w.Write([]string{"root", r.Key, r.Citation, r.Pron, r.Meaning}); err != nil {
				return nil, err
			}
		}
		for _, sf := range export.Suffixes {
			if err := w.Write([]string{"suffix", sf.Key, sf.Citation, sf.Pron, sf.Meaning}); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want json or csv)", format)
	}
}

// ArchiveReport writes the formatted summary of a derivation to the blob
// store under reports/. Saved derivations archive under their record ID;
// unsaved ones under a digest of the summary text.
func (s *Service) ArchiveReport(ctx context.Context, out DeriveOutcome) (blob.Info, error) {
	var info blob.Info
	err := s.instrument(ctx, "archive_report", func(ctx context.Context) error {
		if s.blobs == nil {
			return fmt.Errorf("no blob store configured")
		}
		summary := FormatSummary(out.Result)
		var id string
		if out.Record != nil {
			id = out.Record.ID
		} else {
			sum := sha256.Sum256([]byte(summary))
			id = hex.EncodeToString(sum[:6])
		}
		var err error
		info, err = s.blobs.Put(ctx, blob.ReportKey(id), strings.NewReader(summary), blob.PutOptions{
			ContentType: "text/plain; charset=utf-8",
			Metadata: map[string]string{
				"spelling": out.Result.Spelling,
				"root":     out.Root.Key,
			},
		})
		return err
	})
	if err != nil {
		return blob.Info{}, err
	}
	return info, nil
}

// ArchiveExport writes a lexicon export to the blob store under exports/,
// stamped with the service clock.
func (s *Service) ArchiveExport(ctx context.Context, format string) (blob.Info, error) {
	data, err := s.ExportLexicon(ctx, format)
	if err != nil {
		return blob.Info{}, err
	}
	var info blob.Info
	err = s.instrument(ctx, "archive_export", func(ctx context.Context) error {
		if s.blobs == nil {
			return fmt.Errorf("no blob store configured")
		}
		contentType := "application/json"
		if format == "csv" {
			contentType = "text/csv"
		}
		var err error
		info, err = s.blobs.Put(ctx, blob.ExportKey(format, s.clock.Now()), bytes.NewReader(data), blob.PutOptions{
			ContentType: contentType,
		})
		return err
	})
	if err != nil {
		return blob.Info{}, err
	}
	return info, nil
}
