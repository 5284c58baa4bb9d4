package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/alignstats/alnstats"
	"github.com/grailbio/alignstats/encoding/bamprovider"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

type checkFlags struct {
	format        *string
	out           *string
	fileType      *string
	sampling      *string
	maxInsertSize *int
}

func parseFlags(flags checkFlags) (alnstats.Format, bamprovider.ProviderOpts, alnstats.Opts, error) {
	var (
		popts bamprovider.ProviderOpts
		opts  = alnstats.DefaultOpts
	)
	format, err := alnstats.ParseFormat(*flags.format)
	if err != nil {
		return format, popts, opts, err
	}
	if *flags.fileType != "" {
		if popts.Type = bamprovider.ParseFileType(*flags.fileType); popts.Type == bamprovider.Unknown {
			return format, popts, opts, fmt.Errorf("unknown input type %q; must be bam or sam", *flags.fileType)
		}
	}
	if opts.Sampling, err = alnstats.ParseSampleMode(*flags.sampling); err != nil {
		return format, popts, opts, err
	}
	if *flags.maxInsertSize <= 0 {
		return format, popts, opts, fmt.Errorf("-max-insert-size must be positive, but got %d", *flags.maxInsertSize)
	}
	opts.MaxInsertSize = *flags.maxInsertSize
	return format, popts, opts, nil
}

// aligncheck computes the statistics of the file at path and writes them to
// the -out file, or to stdout if -out is empty.
func aligncheck(flags checkFlags, path string, stdout io.Writer) error {
	format, popts, opts, err := parseFlags(flags)
	if err != nil {
		return err
	}
	report, err := alnstats.ScanPath(path, popts, opts)
	if err != nil {
		return err
	}
	if *flags.out == "" {
		return report.Write(stdout, format, path)
	}
	return writeReport(*flags.out, report, format, path)
}

func writeReport(outPath string, report *alnstats.Report, format alnstats.Format, name string) (err error) {
	ctx := vcontext.Background()
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return errors.E(err, "couldn't create report file:", outPath)
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = errors.E(e, "error closing report file:", outPath)
		}
	}()
	w := out.Writer(ctx)
	if strings.HasSuffix(outPath, ".gz") {
		gz := gzip.NewWriter(w)
		if err = report.Write(gz, format, name); err == nil {
			err = gz.Close()
		}
	} else {
		err = report.Write(w, format, name)
	}
	if err != nil {
		return errors.E(err, "error writing report file:", outPath)
	}
	log.Printf("%s: wrote %d statistics to %s", name, len(report.Stats), outPath)
	return nil
}
