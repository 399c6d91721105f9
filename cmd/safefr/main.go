package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	pickerui "github.com/timmattison/safefr/internal/picker"
	"github.com/timmattison/safefr/internal/report"
	"github.com/timmattison/safefr/internal/version"
)

func main() {
	var cfg config

	flag.StringVar(&cfg.outputDir, "dir", ".", "Directory to write the updated file to")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "Report what would be written without writing anything")
	flag.BoolVar(&cfg.interactive, "interactive", false, "Pick one of multiple occurrences interactively and patch it")
	flag.IntVar(&cfg.dump, "dump", 0, "Show a hex dump with this many bytes before and after each occurrence")
	flag.BoolVar(&cfg.raw, "raw", false, "Report contexts without shrinking them to the shortest unique form")
	flag.IntVar(&cfg.workers, "workers", 0, "Number of occurrences to process at once (default: number of CPUs)")
	var verbose bool
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "V", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <prefix/find/replace/suffix> <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Safe Find & Replace: replace a hex byte sequence in a file only if it occurs exactly once.\n")
		fmt.Fprintf(os.Stderr, "If it occurs more than once, the shortest unique context of every occurrence is listed\n")
		fmt.Fprintf(os.Stderr, "so the right one can be targeted on a re-run. The input file is never modified,\n")
		fmt.Fprintf(os.Stderr, "the result is written to <file>.mod (or <file>.mod.N if that exists).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  safefr /20/99/ firmware.bin          # Replace the only 0x20 with 0x99\n")
		fmt.Fprintf(os.Stderr, "  safefr '00 ff/aa/bb/01' firmware.bin  # Replace 0xaa between 00ff and 01\n")
		fmt.Fprintf(os.Stderr, "  safefr -interactive /aa/bb/ game.exe  # Pick among several occurrences\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Println(version.String("safefr"))
		os.Exit(0)
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(exitInputError)
	}

	cfg.sequence = flag.Arg(0)
	cfg.file = flag.Arg(1)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: false,
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	pick := func(lines []report.Line) (report.Line, bool, error) {
		return pickerui.Run(lines, pickerui.SystemClipboard)
	}

	result, err := newApp(logger, os.Stdout, pick).run(cfg)

	if err != nil {
		logger.Error("safefr failed", "error", err)
	}

	os.Exit(exitCode(result, err))
}
