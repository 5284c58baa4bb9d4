package alnstats

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/alignstats/encoding/bamprovider"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSAM = `@SQ	SN:chr1	LN:1000
p1	99	chr1	100	60	4M	=	200	104	ACGT	IIII
p1	147	chr1	200	60	2S2M	=	100	-104	ACGT	IIII
m1	0	chr1	300	5	1M1I2M	*	0	0	ACGT	*
u1	4	*	0	0	*	*	0	0	ACGTAC	*
`

func statCount(t *testing.T, r *Report, label string) uint64 {
	s, ok := r.Get(label)
	require.True(t, ok, label)
	return s.Count
}

func statValue(t *testing.T, r *Report, label string) float64 {
	s, ok := r.Get(label)
	require.True(t, ok, label)
	return s.Value
}

// checkTestSAMReport verifies the report of the records in testSAM.
func checkTestSAMReport(t *testing.T, report *Report) {
	assert.EqualValues(t, 4, statCount(t, report, "total"))
	assert.EqualValues(t, 3, statCount(t, report, "mapped"))
	assert.EqualValues(t, 1, statCount(t, report, "unmapped"))
	assert.EqualValues(t, 2, statCount(t, report, "paired"))
	assert.EqualValues(t, 2, statCount(t, report, "proper pair"))
	assert.EqualValues(t, 1, statCount(t, report, "read1"))
	assert.EqualValues(t, 1, statCount(t, report, "read2"))
	assert.EqualValues(t, 1, statCount(t, report, "mapq<=10"))
	assert.EqualValues(t, 2, statCount(t, report, "mapq>30"))
	assert.EqualValues(t, 2, statCount(t, report, "forward strand"))
	assert.EqualValues(t, 1, statCount(t, report, "reverse strand"))
	assert.Equal(t, 75.0, statValue(t, report, "mapping_rate"))
	assert.InDelta(t, 41.666666, statValue(t, report, "avg_mapq"), 1e-5)
	assert.Equal(t, 60.0, statValue(t, report, "median_mapq"))
	assert.Equal(t, 4.5, statValue(t, report, "avg_read_length"))
	assert.Equal(t, 4.0, statValue(t, report, "median_read_length"))
	assert.Equal(t, 104.0, statValue(t, report, "avg_insert_size"))
	assert.EqualValues(t, 9, statCount(t, report, "cigar_M"))
	assert.EqualValues(t, 1, statCount(t, report, "cigar_I"))
	assert.EqualValues(t, 2, statCount(t, report, "cigar_S"))
	_, ok := report.Get("cigar_D")
	assert.False(t, ok)
}

func TestScanSAM(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "test.sam")
	require.NoError(t, ioutil.WriteFile(path, []byte(testSAM), 0644))

	report, err := ScanPath(path, bamprovider.ProviderOpts{}, DefaultOpts)
	require.NoError(t, err)
	checkTestSAMReport(t, report)
}

func writeTestBAM(t *testing.T, path string) {
	in, err := sam.NewReader(strings.NewReader(testSAM))
	require.NoError(t, err)
	out, err := os.Create(path)
	require.NoError(t, err)
	w, err := bam.NewWriter(out, in.Header(), 1)
	require.NoError(t, err)
	for {
		rec, err := in.Read()
		if err != nil {
			break
		}
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
	require.NoError(t, out.Close())
}

func TestScanBAM(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	// No .bam suffix, so the type is detected from the contents.
	path := filepath.Join(tempDir, "test.alignments")
	writeTestBAM(t, path)

	for _, mode := range sampleModes {
		report, err := ScanPath(path, bamprovider.ProviderOpts{}, Opts{Sampling: mode})
		require.NoError(t, err)
		checkTestSAMReport(t, report)
	}
}

func TestScanFakeProvider(t *testing.T) {
	chr1, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1})
	require.NoError(t, err)
	var recs []*sam.Record
	for i := 0; i < 10; i++ {
		r := newSAMRecord(mapped, byte(i*10), 50, 0, match(50))
		r.Name = fmt.Sprintf("r%d", i)
		r.Ref = chr1
		r.Pos = i
		recs = append(recs, r)
	}
	provider := bamprovider.NewFakeProvider(header, recs)
	report, err := Scan(provider.NewIterator(), DefaultOpts)
	require.NoError(t, err)
	require.NoError(t, provider.Close())

	assert.EqualValues(t, 10, statCount(t, report, "total"))
	assert.EqualValues(t, 1, statCount(t, report, "mapq=0"))
	assert.EqualValues(t, 2, statCount(t, report, "mapq<=10"))
	assert.EqualValues(t, 4, statCount(t, report, "mapq<=30"))
	assert.EqualValues(t, 6, statCount(t, report, "mapq>30"))
	assert.Equal(t, 45.0, statValue(t, report, "avg_mapq"))
	assert.Equal(t, 50.0, statValue(t, report, "median_mapq"))
	assert.EqualValues(t, 500, statCount(t, report, "cigar_M"))
	// The input records are left alone.
	assert.Equal(t, "r0", recs[0].Name)
}

func TestScanError(t *testing.T) {
	report, err := Scan(bamprovider.NewErrorIterator(fmt.Errorf("corrupt container")), DefaultOpts)
	assert.Nil(t, report)
	assert.EqualError(t, err, "corrupt container")
}

func TestScanPathErrors(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	report, err := ScanPath(filepath.Join(tempDir, "missing.bam"), bamprovider.ProviderOpts{}, DefaultOpts)
	assert.Error(t, err)
	assert.Nil(t, report)

	garbage := filepath.Join(tempDir, "garbage.bam")
	require.NoError(t, ioutil.WriteFile(garbage, []byte("this is not a BAM file"), 0644))
	report, err = ScanPath(garbage, bamprovider.ProviderOpts{}, DefaultOpts)
	assert.Error(t, err)
	assert.Nil(t, report)
}
