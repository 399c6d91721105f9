package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/timmattison/safefr/internal"
	"github.com/timmattison/safefr/internal/contexts"
	"github.com/timmattison/safefr/internal/patch"
	"github.com/timmattison/safefr/internal/report"
	"github.com/timmattison/safefr/internal/scan"
	"github.com/timmattison/safefr/internal/sequence"
)

type outcome int

const (
	outcomePatched outcome = iota
	outcomeNotFound
	outcomeAmbiguous
)

// Exit codes
const (
	exitPatched      = 0
	exitInputError   = 1
	exitNotFound     = 2
	exitAmbiguous    = 3
	exitInconsistent = 4
)

var errInput = errors.New("invalid input")

type config struct {
	sequence    string
	file        string
	outputDir   string
	dryRun      bool
	interactive bool
	dump        int
	raw         bool
	workers     int
}

type picker func(lines []report.Line) (report.Line, bool, error)

type app struct {
	logger  *log.Logger
	out     io.Writer
	printer *report.Printer
	pick    picker
}

func newApp(logger *log.Logger, out io.Writer, pick picker) *app {
	return &app{
		logger:  logger,
		out:     out,
		printer: report.New(out),
		pick:    pick,
	}
}

type source struct {
	path string
	data []byte
	perm os.FileMode
}

func (a *app) run(cfg config) (outcome, error) {
	spec, err := sequence.Parse(cfg.sequence)

	if err != nil {
		return 0, fmt.Errorf("%w: %w", errInput, err)
	}

	if !internal.FileExists(cfg.file) {
		return 0, fmt.Errorf("%w: could not find file: %s", errInput, cfg.file)
	}

	mapped, err := internal.MapFile(cfg.file)

	if err != nil {
		return 0, fmt.Errorf("%w: %w", errInput, err)
	}

	defer mapped.Close()

	a.logger.Debug("Mapped input", "file", cfg.file, "size", internal.PrettyPrintBytes(uint64(len(mapped.Data))))

	return a.process(cfg, source{path: cfg.file, data: mapped.Data, perm: mapped.Info.Mode().Perm()}, spec)
}

func (a *app) process(cfg config, src source, spec sequence.Spec) (outcome, error) {
	search := spec.Search()
	searchHex := fmt.Sprintf("%x", search)
	offsets := scan.FindAll(src.data, search)

	switch len(offsets) {
	case 0:
		fmt.Fprintf(a.out, "Could not find sequence %s\n", searchHex)
		return outcomeNotFound, nil
	case 1:
		fmt.Fprintf(a.out, "Found one occurrence of sequence %s at %s\n", searchHex, internal.PrettyPrintOffset(offsets[0]))

		if cfg.dump > 0 {
			a.printer.HexDump(src.data, offsets[0], len(search), cfg.dump)
		}

		return outcomePatched, a.patch(cfg, src, spec)
	}

	fmt.Fprintf(a.out, "Found %s occurrences of sequence %s\n", internal.PrettyPrintInt(int64(len(offsets))), searchHex)

	options := contexts.DefaultOptions()
	options.Tighten = !cfg.raw
	options.Workers = cfg.workers

	triples, err := contexts.FindWithOptions(src.data, offsets, spec, options)

	if err != nil {
		return 0, err
	}

	if cfg.interactive && a.pick != nil {
		return a.pickAndPatch(cfg, src, spec, triples)
	}

	fmt.Fprintln(a.out, "Identify the correct occurrence by its context, listed below, and re-run.")
	a.printer.Contexts(triples, spec.Replace)

	if cfg.dump > 0 {
		// Contexts sorted the triples in place
		for i, triple := range triples {
			fmt.Fprintf(a.out, "\n%2d: %s\n", i, internal.PrettyPrintOffset(triple.Offset))
			a.printer.HexDump(src.data, triple.Offset, len(search), cfg.dump)
		}
	}

	return outcomeAmbiguous, nil
}

func (a *app) pickAndPatch(cfg config, src source, spec sequence.Spec, triples []contexts.Triple) (outcome, error) {
	choice, ok, err := a.pick(report.Lines(triples, spec.Replace))

	if err != nil {
		return 0, err
	}

	if !ok {
		a.logger.Info("Nothing picked, no file written")
		return outcomeAmbiguous, nil
	}

	refined, err := sequence.Parse(choice.Sequence)

	if err != nil {
		return 0, fmt.Errorf("%w: picked sequence %s: %w", contexts.ErrInconsistent, choice.Sequence, err)
	}

	fmt.Fprintf(a.out, "Using sequence %s\n", refined)

	cfg.interactive = false
	result, err := a.process(cfg, src, refined)

	if err == nil && result != outcomePatched {
		// A context from the disambiguator must always be unique
		return 0, fmt.Errorf("%w: picked sequence %s is not unique", contexts.ErrInconsistent, refined)
	}

	return result, err
}

func (a *app) patch(cfg config, src source, spec sequence.Spec) error {
	patched, err := patch.Apply(src.data, spec.Search(), spec.Replacement())

	if err != nil {
		return err
	}

	a.logger.Debug("Input digest", "blake3", patch.Digest(src.data))

	if cfg.dryRun {
		fmt.Fprintf(a.out, "Dry run, would write updated file to: %s\n", patch.OutputPath(cfg.outputDir, src.path))
		return nil
	}

	result, err := patch.Write(cfg.outputDir, src.path, patched, src.perm)

	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Writing updated file to: %s\n", result.Path)
	a.logger.Info("Wrote updated file", "path", result.Path, "size", internal.PrettyPrintBytes(uint64(result.BytesWritten)), "blake3", result.Digest)

	return nil
}

func exitCode(result outcome, err error) int {
	switch {
	case errors.Is(err, contexts.ErrInconsistent):
		return exitInconsistent
	case err != nil:
		return exitInputError
	case result == outcomeNotFound:
		return exitNotFound
	case result == outcomeAmbiguous:
		return exitAmbiguous
	}

	return exitPatched
}
