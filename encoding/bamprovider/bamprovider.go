package bamprovider

import (
	"io"
	"sync"

	gerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
	"v.io/x/lib/vlog"
)

// recordReader is implemented by *bam.Reader and *sam.Reader.
type recordReader interface {
	Header() *sam.Header
	Read() (*sam.Record, error)
}

// openFunc creates a recordReader on top of the raw file contents. The
// returned closer, if non-nil, releases resources held by the reader.
type openFunc func(in io.Reader) (recordReader, func() error, error)

func openBAM(in io.Reader) (recordReader, func() error, error) {
	r, err := bam.NewReader(in, 1)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}

func openSAM(in io.Reader) (recordReader, func() error, error) {
	r, err := sam.NewReader(in)
	if err != nil {
		return nil, nil, err
	}
	return r, nil, nil
}

// streamProvider implements Provider over a file read front to back.
type streamProvider struct {
	path     string
	fileType FileType
	open     openFunc
	err      gerrors.Once

	mu      sync.Mutex
	nActive int
	header  *sam.Header
}

type streamIterator struct {
	provider *streamProvider
	in       file.File
	reader   recordReader
	closer   func() error

	err  error
	next *sam.Record
}

// GetHeader implements the Provider interface.
func (b *streamProvider) GetHeader() (*sam.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.header != nil {
		return b.header, nil
	}

	ctx := vcontext.Background()
	in, err := file.Open(ctx, b.path)
	if err != nil {
		err = errors.Wrapf(err, "%s: open", b.path)
		b.err.Set(err)
		return nil, err
	}
	defer in.Close(ctx)
	reader, closer, err := b.open(in.Reader(ctx))
	if err != nil {
		err = errors.Wrapf(err, "%s: read %v header", b.path, b.fileType)
		b.err.Set(err)
		return nil, err
	}
	if closer != nil {
		defer closer()
	}
	b.header = reader.Header()
	return b.header, nil
}

// NewIterator implements the Provider interface. If the file cannot be
// opened or its header cannot be parsed, the error is recorded in the
// provider and an error iterator is returned.
func (b *streamProvider) NewIterator() Iterator {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, b.path)
	if err != nil {
		err = errors.Wrapf(err, "%s: open", b.path)
		b.err.Set(err)
		return NewErrorIterator(err)
	}
	reader, closer, err := b.open(in.Reader(ctx))
	if err != nil {
		in.Close(ctx)
		err = errors.Wrapf(err, "%s: read %v header", b.path, b.fileType)
		b.err.Set(err)
		return NewErrorIterator(err)
	}
	b.mu.Lock()
	b.nActive++
	if b.header == nil {
		b.header = reader.Header()
	}
	b.mu.Unlock()
	vlog.VI(1).Infof("%s: opened as %v", b.path, b.fileType)
	return &streamIterator{provider: b, in: in, reader: reader, closer: closer}
}

// Close implements the Provider interface.
func (b *streamProvider) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.nActive > 0 {
		vlog.Fatalf("%d iterators still active for %s", b.nActive, b.path)
	}
	return b.err.Err()
}

func (b *streamProvider) freeIterator(i *streamIterator) {
	b.err.Set(i.Err())
	b.mu.Lock()
	b.nActive--
	if b.nActive < 0 {
		vlog.Fatalf("Negative active count for %s", b.path)
	}
	b.mu.Unlock()
}

// Scan implements the Iterator interface.
func (i *streamIterator) Scan() bool {
	if i.err != nil {
		return false
	}
	i.next, i.err = i.reader.Read()
	if i.err != nil && i.err != io.EOF {
		i.err = errors.Wrapf(i.err, "%s: read record", i.provider.path)
	}
	return i.err == nil
}

// Record implements the Iterator interface.
func (i *streamIterator) Record() *sam.Record {
	return i.next
}

// Err implements the Iterator interface.
func (i *streamIterator) Err() error {
	if i.err == io.EOF {
		return nil
	}
	return i.err
}

// Close implements the Iterator interface.
func (i *streamIterator) Close() error {
	if i.closer != nil {
		if err := i.closer(); err != nil && i.Err() == nil {
			i.err = err
		}
		i.closer = nil
	}
	if i.in != nil {
		if err := i.in.Close(vcontext.Background()); err != nil && i.Err() == nil {
			i.err = err
		}
		i.in = nil
	}
	i.provider.freeIterator(i)
	return i.Err()
}

// BAMProvider implements Provider for BAM files. No index is needed since
// the file is read from start to end. Path may name any file understood by
// github.com/grailbio/base/file.
type BAMProvider struct {
	streamProvider
}

// NewBAMProvider creates a Provider for the BAM file at path.
func NewBAMProvider(path string) *BAMProvider {
	return &BAMProvider{streamProvider{path: path, fileType: BAM, open: openBAM}}
}

// SAMProvider implements Provider for uncompressed SAM text files.
type SAMProvider struct {
	streamProvider
}

// NewSAMProvider creates a Provider for the SAM file at path.
func NewSAMProvider(path string) *SAMProvider {
	return &SAMProvider{streamProvider{path: path, fileType: SAM, open: openSAM}}
}
