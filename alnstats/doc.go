// Package alnstats computes single-pass summary statistics over a stream of
// alignment records: mapping rate, pairing and strand breakdowns, mapq,
// read-length and insert-size distributions, and per-operation CIGAR tallies.
//
// A typical use is
//
//   report, err := alnstats.ScanPath(path, bamprovider.ProviderOpts{}, alnstats.DefaultOpts)
//   if err != nil {
//     ...
//   }
//   report.WriteText(os.Stdout, path)
//
// The Accumulator is owned by one goroutine for the whole stream; it is not
// safe for concurrent use.
package alnstats
