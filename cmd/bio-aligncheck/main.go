package main

/*
bio-aligncheck prints summary statistics of a BAM or SAM file: mapping rate,
pairing and strand breakdowns, mapq, read-length and insert-size
distributions, and CIGAR operation totals.
*/

import (
	"log"

	"github.com/grailbio/alignstats/alnstats"
	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "bio-aligncheck",
		Short:    "Show detailed alignment statistics of a BAM or SAM file",
		ArgsName: "path",
		LookPath: false,
	}
	flags := checkFlags{
		format:        cmd.Flags.String("format", "text", "Output format: text, tsv or json"),
		out:           cmd.Flags.String("out", "", "Output path. If empty, write to stdout. A .gz suffix compresses the output"),
		fileType:      cmd.Flags.String("type", "", "Input file type, bam or sam. If empty, it is guessed from the path and contents"),
		sampling:      cmd.Flags.String("sampling", alnstats.DefaultOpts.Sampling.String(), "How distributions are kept for medians: histogram (memory bounded by distinct values) or buffer (every value)"),
		maxInsertSize: cmd.Flags.Int("max-insert-size", alnstats.DefaultOpts.MaxInsertSize, "Proper pairs with |TLEN| at or above this value are left out of the insert-size statistics"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("bio-aligncheck takes one pathname argument, but got %v", argv)
		}
		return aligncheck(flags, argv[0], env.Stdout)
	})
	return cmd
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
