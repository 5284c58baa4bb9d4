package bamprovider

import (
	"bytes"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/sam"
	"v.io/x/lib/vlog"
)

// ProviderOpts defines options for NewProvider.
type ProviderOpts struct {
	// Type forces the file type. If Unknown, the type is guessed from the
	// path and contents.
	Type FileType
}

// Provider opens a file of alignment records. Thread safe.
type Provider interface {
	// GetHeader returns the header of the file. The callee must not modify
	// the returned header object.
	//
	// REQUIRES: Close has not been called.
	GetHeader() (*sam.Header, error)

	// NewIterator returns an iterator over all records in the file, in file
	// order, including unmapped reads. Errors opening the file are reported
	// by the iterator's Err and Close.
	//
	// REQUIRES: Close has not been called.
	NewIterator() Iterator

	// Close must be called exactly once. It returns any error encountered
	// by the provider, or any iterator created by the provider.
	//
	// REQUIRES: All the iterators created by NewIterator have been closed.
	Close() error
}

// Iterator iterates over sam.Records. Thread compatible.
type Iterator interface {
	// Scan returns where there are any records remaining in the iterator,
	// and if so, advances the iterator to the next record. If the iterator
	// reaches the end of the file, Scan() returns false.  If an error
	// occurs, Scan() returns false and the error can be retrieved by
	// calling Err().
	//
	// REQUIRES: Close has not been called.
	Scan() bool

	// Record returns the current record in the iterator. This must be
	// called only after a call to Scan() returns true. The caller owns the
	// record and may return it with sam.PutInFreePool.
	//
	// REQUIRES: Close has not been called.
	Record() *sam.Record

	// Err returns the error encoutered during iteration, or nil if no error
	// occurred.  An io.EOF error will be translated to nil.
	Err() error

	// Close must be called exactly once. It returns the value of Err().
	Close() error
}

// FileType represents the type of an alignment file.
type FileType int

const (
	// Unknown is a sentinel.
	Unknown FileType = iota
	// BAM file
	BAM
	// SAM text file
	SAM
)

// String implements fmt.Stringer.
func (t FileType) String() string {
	switch t {
	case BAM:
		return "bam"
	case SAM:
		return "sam"
	default:
		return "unknown"
	}
}

// ParseFileType parses the file type string. "bam" returns bamprovider.BAM, for
// example. On error, it returns Unknown.
func ParseFileType(name string) FileType {
	switch name {
	case "bam":
		return BAM
	case "sam":
		return SAM
	default:
		return Unknown
	}
}

var gzipMagic = []byte{0x1f, 0x8b}

// GuessFileType returns the file type from the pathname and/or
// contents. Returns Unknown on error.
func GuessFileType(path string) FileType {
	if strings.HasSuffix(path, ".bam") {
		return BAM
	}
	if strings.HasSuffix(path, ".sam") {
		return SAM
	}
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		vlog.VI(1).Infof("%v: could not detect file type: %v", path, err)
		return Unknown
	}
	defer in.Close(ctx)
	magic := make([]byte, len(gzipMagic))
	if _, err := io.ReadFull(in.Reader(ctx), magic); err != nil {
		vlog.VI(1).Infof("%v: could not detect file type: %v", path, err)
		return Unknown
	}
	// BAM is BGZF-compressed, and BGZF blocks are gzip members.
	if bytes.Equal(magic, gzipMagic) {
		return BAM
	}
	return SAM
}

func mergeOpts(optList []ProviderOpts) ProviderOpts {
	opts := ProviderOpts{}
	for _, o := range optList {
		if o.Type != Unknown {
			opts.Type = o.Type
		}
	}
	return opts
}

// NewProvider creates a Provider object that can handle a BAM or SAM file
// at "path". Unless opts force a type, the file type is autodetected, and
// an undetectable file is read as BAM so that the BAM reader reports the
// actual error.
func NewProvider(path string, optList ...ProviderOpts) Provider {
	opts := mergeOpts(optList)
	fileType := opts.Type
	if fileType == Unknown {
		fileType = GuessFileType(path)
	}
	switch fileType {
	case SAM:
		return NewSAMProvider(path)
	default:
		return NewBAMProvider(path)
	}
}
