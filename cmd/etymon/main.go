// Command etymon derives modern English words from Proto-Indo-European
// roots by running them through the historical sound-change pipeline, and
// manages the backing lexicon store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"etymon/internal/blob"
	"etymon/internal/core"
	"etymon/internal/tables"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

type runOptions struct {
	root     string
	suffix   string
	meaning  string
	seed     int64
	analysis bool
	save     bool
	export   string
	list     bool
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("etymon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts runOptions
	fs.StringVar(&opts.root, "root", "", "PIE root to derive from: key, XSAMPA pronunciation, or English meaning; empty picks one at random")
	fs.StringVar(&opts.suffix, "suffix", "", `PIE suffix: key, pronunciation, or meaning; "random" picks one at random`)
	fs.StringVar(&opts.meaning, "meaning", "", "explicit meaning for the derived word")
	fs.Int64Var(&opts.seed, "seed", 0, "seed for random choices; 0 draws from the clock")
	fs.BoolVar(&opts.analysis, "analysis", false, "derive every root and suffix pairing and print per-period phone sets")
	fs.BoolVar(&opts.save, "save", false, "persist the derivation in the lexicon store")
	fs.StringVar(&opts.export, "export", "", "print the lexicon in the given format (json or csv) instead of deriving")
	fs.BoolVar(&opts.list, "list", false, "list lexicon roots and suffixes instead of deriving")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	modes := 0
	if opts.list {
		modes++
	}
	if opts.export != "" {
		modes++
	}
	if opts.analysis {
		modes++
	}
	if modes > 1 {
		fmt.Fprintln(stderr, "etymon: -list, -export, and -analysis are mutually exclusive")
		return 2
	}
	if err := run(context.Background(), opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "etymon: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, opts runOptions, stdout, stderr io.Writer) error {
	cfg, err := core.LoadConfig()
	if err != nil {
		return err
	}
	engine, err := core.NewDefaultRulesEngine()
	if err != nil {
		return err
	}
	store, err := core.OpenPersistentStore(engine)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	if _, err := core.SeedLexicon(ctx, store); err != nil {
		return fmt.Errorf("seed lexicon: %w", err)
	}

	pipeline, err := tables.Pipeline()
	if err != nil {
		return err
	}
	vocab, err := tables.Vocabulary()
	if err != nil {
		return err
	}

	metrics, err := cfg.MetricsRecorderFor()
	if err != nil {
		return err
	}
	serviceOpts := []core.Option{core.WithMetricsRecorder(metrics)}
	if cfg.Verbose {
		serviceOpts = append(serviceOpts, core.WithLogger(core.NewStdLogger(log.New(stderr, "", log.LstdFlags))))
	}
	// The blob store only joins in when the operator selected a driver;
	// attaching the fs default on every run would litter the working dir.
	archiving := false
	if os.Getenv("ETYMON_BLOB_DRIVER") != "" {
		blobs, err := blob.Open(ctx)
		if err != nil {
			return err
		}
		serviceOpts = append(serviceOpts, core.WithBlobStore(blobs))
		archiving = true
	}
	svc := core.NewService(store, pipeline, vocab, serviceOpts...)

	switch {
	case opts.list:
		return renderLexicon(stdout, svc.ListRoots(), svc.ListSuffixes())
	case opts.export != "":
		data, err := svc.ExportLexicon(ctx, opts.export)
		if err != nil {
			return err
		}
		if _, err := stdout.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(stdout)
		}
		return nil
	case opts.analysis:
		report, err := svc.Analyze(ctx)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, report.Render())
		return err
	default:
		out, err := svc.Derive(ctx, core.DeriveRequest{
			Root:    opts.root,
			Suffix:  opts.suffix,
			Meaning: opts.meaning,
			Seed:    opts.seed,
			Save:    opts.save,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, core.FormatSummary(out.Result))
		if opts.save && archiving {
			info, err := svc.ArchiveReport(ctx, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "report: %s\n", info.Key)
		}
		return nil
	}
}

func renderLexicon(w io.Writer, roots []core.Root, suffixes []core.Suffix) error {
	if _, err := fmt.Fprintln(w, "PIE roots:"); err != nil {
		return err
	}
	for _, r := range roots {
		if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.Key, r.Citation, r.Pron, r.Meaning); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "PIE suffixes:"); err != nil {
		return err
	}
	for _, sf := range suffixes {
		if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", sf.Key, sf.Citation, sf.Pron, sf.Meaning); err != nil {
			return err
		}
	}
	return nil
}
