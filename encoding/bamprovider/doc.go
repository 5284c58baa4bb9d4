// Package bamprovider provides sequential access to the records of a BAM or
// SAM file.
//
// The Provider is an interface for opening a file of alignment records;
// its Iterator yields every record once, in file order.
package bamprovider
