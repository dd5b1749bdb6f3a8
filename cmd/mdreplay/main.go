// Command mdreplay checks replay equivalence: it re-runs a markdown
// document through a fresh Tokenizer/Assembler pair and compares the
// resulting diff sequence against a previously recorded diff log (as
// written by mdstream's -diff-log), chunk for chunk.
//
// A match confirms the pipeline reproduces the recorded diffs from the
// source bytes alone. Diffs are compared one Apply at a time, so the log
// must have been recorded with the same -chunk size.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"

	"github.com/jcorbin/mdstream/block"
	"github.com/jcorbin/mdstream/internal/socutil"
	"github.com/jcorbin/mdstream/token"
)

func main() {
	var (
		inputPath = flag.String("file", "", "input markdown file (default stdin)")
		diffLog   = flag.String("diff-log", "", "recorded newline-delimited JSON diff log to replay against (required)")
		chunkSize = flag.Int("chunk", 4096, "bytes per simulated Feed chunk for the replay run")
	)
	flag.Parse()

	if *diffLog == "" {
		log.Fatal("-diff-log is required")
	}

	in := io.Reader(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("unable to open %v: %v", *inputPath, err)
		}
		defer f.Close()
		in = f
	}

	logFile, err := os.Open(*diffLog)
	if err != nil {
		log.Fatalf("unable to open %v: %v", *diffLog, err)
	}
	defer logFile.Close()
	dec := json.NewDecoder(logFile)

	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())

	buf := make([]byte, *chunkSize)
	r := bufio.NewReader(in)
	var chunkIndex int
	check := func(cr token.ChunkResult) {
		got := as.Apply(cr)
		if len(got.Changes) == 0 {
			return
		}
		var want block.AssemblerDiff
		if err := dec.Decode(&want); err != nil {
			log.Fatalf("chunk %v: expected a recorded diff but log read failed: %v", chunkIndex, err)
		}
		if !reflect.DeepEqual(got, want) {
			log.Fatalf("chunk %v: replay diverged\n got:  %+v\n want: %+v", chunkIndex, got, want)
		}
		chunkIndex++
	}

	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			check(tok.Feed(buf[:n]))
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			log.Fatalf("read error: %v", rerr)
		}
	}
	check(tok.Finish())

	if err := dec.Decode(new(block.AssemblerDiff)); err != io.EOF {
		log.Fatalf("recorded log has unconsumed diffs beyond the replay")
	}

	out := socutil.PrefixWriter(*diffLog+": ", os.Stdout)
	defer out.Close()
	fmt.Fprintf(out, "replay matched %v diffs\n", chunkIndex)
}
