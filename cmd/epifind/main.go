// Command epifind loads a case/control genotype dataset, runs the
// exhaustive K-order epistasis search, and writes the top-n scoring
// combinations.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/epistasis/buildinfo"
	"github.com/grailbio/epistasis/combin"
	"github.com/grailbio/epistasis/dataset"
	"github.com/grailbio/epistasis/rank"
	"github.com/grailbio/epistasis/resultio"
	"github.com/grailbio/epistasis/search"
	"github.com/pkg/errors"
)

var (
	order      int
	threads    int
	noutputs   int
	ranks      = flag.Int("ranks", 1, "Number of distributed-memory ranks R participating in this search (R >= 1)")
	rankID     = flag.Int("rank-id", 0, "This process's rank id r, in [0, R)")
	rankListen = flag.String("rank-listen", ":0", "Address rank 0 listens on for the inter-rank gather (rank 0 only, R > 1)")
	rank0Addr  = flag.String("rank0-addr", "", "Rank 0's externally reachable address (ranks > 0 only, R > 1)")
	version    bool
)

func init() {
	flag.IntVar(&order, "order", 0, "Combination order K (K >= 2, required)")
	flag.IntVar(&order, "o", 0, "Shorthand for -order")
	flag.IntVar(&threads, "threads", 0, "Worker thread count T (T >= 1; 0 = runtime.NumCPU())")
	flag.IntVar(&threads, "t", 0, "Shorthand for -threads")
	flag.IntVar(&noutputs, "noutputs", 10, "Result count N (N >= 1)")
	flag.IntVar(&noutputs, "n", 10, "Shorthand for -noutputs")
	flag.BoolVar(&version, "version", false, "Print process and library version information and exit")
}

func epifindUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] <input>+ <output>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = epifindUsage
	shutdown := grail.Init()
	defer shutdown()

	if version {
		fmt.Println(buildinfo.Collect())
		os.Exit(0)
	}

	allArgs := flag.Args()
	if len(allArgs) < 2 {
		log.Fatalf("missing positional arguments (<input>+ <output> required); please check flag syntax: '%s'", strings.Join(allArgs, " "))
	}
	inputs, output := allArgs[:len(allArgs)-1], allArgs[len(allArgs)-1]

	os.Exit(run(inputs, output))
}

// run implements the CLI contract of spec.md §6/§7: it returns 0 on
// success, a non-zero code on any error, after printing exactly one
// diagnostic line to stderr.
func run(inputs []string, output string) int {
	if order < 2 {
		fmt.Fprintln(os.Stderr, "epifind: -order/-o must be >= 2")
		return 1
	}
	if threads < 0 {
		fmt.Fprintln(os.Stderr, "epifind: -threads/-t must be >= 1 (or 0 for all hardware threads)")
		return 1
	}
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	if noutputs < 1 {
		fmt.Fprintln(os.Stderr, "epifind: -noutputs/-n must be >= 1")
		return 1
	}
	if *ranks < 1 {
		fmt.Fprintln(os.Stderr, "epifind: -ranks must be >= 1")
		return 1
	}
	if *rankID < 0 || *rankID >= *ranks {
		fmt.Fprintf(os.Stderr, "epifind: -rank-id must be in [0, %d)\n", *ranks)
		return 1
	}

	info := buildinfo.Collect()
	log.Printf("%s rank=%d/%d", info, *rankID, *ranks)

	ds, err := dataset.Load(inputs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "epifind: %v\n", err)
		return 1
	}
	log.Printf("epifind: loaded dataset: %d cases, %d ctrls, %d snps, fingerprint=%x",
		ds.Cases, ds.Ctrls, ds.Snps(), buildinfo.DatasetFingerprint(ds.Cases, ds.Ctrls, ds.Snps()))

	prefixDist := combin.New(ds.Snps(), order-1, *ranks, *rankID)
	local, err := search.RunLocal(ds, order, threads, noutputs, 0, prefixDist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "epifind: %v\n", err)
		return 1
	}

	transport, err := newTransport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "epifind: %v\n", err)
		return 1
	}
	merged, err := rank.MergeAndTruncate(transport, local, noutputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "epifind: %v\n", err)
		return 1
	}
	if *rankID != 0 {
		return 0
	}

	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "epifind: creating %s: %v\n", output, err)
		return 1
	}
	defer out.Close()
	if err := resultio.Write(out, merged); err != nil {
		fmt.Fprintf(os.Stderr, "epifind: %v\n", err)
		return 1
	}
	return 0
}

// newTransport builds the Transport this rank gathers over: an
// in-process LocalTransport for the common R=1 case, or a TCPTransport
// when the caller has launched more than one rank (one process per
// rank-id, coordinated via -rank-listen/-rank0-addr).
func newTransport() (rank.Transport, error) {
	if *ranks == 1 {
		return rank.NewLocalTransports(1)[0], nil
	}
	if *rankID != 0 && *rank0Addr == "" {
		return nil, errors.Errorf("rank %d: -rank0-addr is required when -ranks > 1", *rankID)
	}
	return rank.NewTCPTransport(*rankID, *ranks, *rankListen, *rank0Addr), nil
}
