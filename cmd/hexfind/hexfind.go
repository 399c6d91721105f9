package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/timmattison/safefr/internal"
	"github.com/timmattison/safefr/internal/report"
	"github.com/timmattison/safefr/internal/scan"
	"github.com/timmattison/safefr/internal/version"
)

func main() {
	var contextBytes = flag.Int("context", 16, "Number of bytes to show before and after the match")
	var allMatches = flag.Bool("all", false, "Show all matches instead of just the first one")
	var showVersion = flag.Bool("version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <hex-string> <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Search for a hex string in a binary file and display a hex dump with surrounding bytes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample: hexfind 0xf9beb4d9 bitcoin_block.dat\n")
		fmt.Fprintf(os.Stderr, "         hexfind 'f9 be b4 d9' bitcoin_block.dat\n")
	}

	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("hexfind"))
		os.Exit(0)
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	hexString := flag.Arg(0)

	pattern, err := decodePattern(hexString)

	if err != nil {
		log.Fatal("Error decoding hex string", "input", hexString, "error", err)
	}

	filename := flag.Arg(1)

	mapped, err := internal.MapFile(filename)

	if err != nil {
		log.Fatal("Error opening file", "file", filename, "error", err)
	}

	defer mapped.Close()

	matches := findMatches(mapped.Data, pattern, *allMatches)

	if len(matches) == 0 {
		fmt.Printf("Pattern '%x' not found in file '%s'\n", pattern, filename)
		return
	}

	printer := report.New(os.Stdout)

	fmt.Printf("Found %s match(es) for pattern '%x' in file '%s'\n\n", internal.PrettyPrintInt(int64(len(matches))), pattern, filename)

	for i, offset := range matches {
		fmt.Printf("Match #%d:\n", i+1)
		fmt.Printf("Offset: %s\n", internal.PrettyPrintOffset(offset))
		printer.HexDump(mapped.Data, offset, len(pattern), *contextBytes)
		fmt.Println()
	}
}

// decodePattern accepts hex with an optional 0x prefix and any whitespace between bytes
func decodePattern(input string) ([]byte, error) {
	compact := strings.Join(strings.Fields(input), "")
	compact = strings.TrimPrefix(strings.TrimPrefix(compact, "0x"), "0X")

	if compact == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	return hex.DecodeString(compact)
}

func findMatches(data []byte, pattern []byte, all bool) []int {
	if all {
		return scan.FindAll(data, pattern)
	}

	if first := scan.First(data, pattern); first >= 0 {
		return []int{first}
	}

	return nil
}
