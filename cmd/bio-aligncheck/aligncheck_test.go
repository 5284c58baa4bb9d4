package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSAM = `@SQ	SN:chr1	LN:1000
r1	0	chr1	10	40	5M	*	0	0	ACGTA	*
r2	4	*	0	0	*	*	0	0	ACG	*
`

func newFlags(format, out string) checkFlags {
	var (
		fileType      = ""
		sampling      = "histogram"
		maxInsertSize = 10000
	)
	return checkFlags{
		format:        &format,
		out:           &out,
		fileType:      &fileType,
		sampling:      &sampling,
		maxInsertSize: &maxInsertSize,
	}
}

func writeTestSAM(t *testing.T, dir string) string {
	path := filepath.Join(dir, "in.sam")
	require.NoError(t, ioutil.WriteFile(path, []byte(testSAM), 0644))
	return path
}

func TestAligncheckStdout(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestSAM(t, tmpDir)

	var out bytes.Buffer
	require.NoError(t, aligncheck(newFlags("text", ""), path, &out))
	lines := strings.Split(out.String(), "\n")
	expect.EQ(t, lines[0], "Detailed alignment statistics for "+path+":")
	assert.Contains(t, lines, "total: 2 (100.00%)")
	assert.Contains(t, lines, "mapping_rate: 50.00")
	assert.Contains(t, lines, "avg_read_length: 4.00")
	assert.Contains(t, lines, "median_read_length: 5.00")
	assert.Contains(t, lines, "cigar_M: 5")
}

func TestAligncheckOutFile(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestSAM(t, tmpDir)

	tsvPath := filepath.Join(tmpDir, "out.tsv")
	require.NoError(t, aligncheck(newFlags("tsv", tsvPath), path, nil))
	data, err := ioutil.ReadFile(tsvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "LABEL\tKIND\tCOUNT\tPERCENT\tVALUE\ntotal\tcount\t2\t100.00\t\n"))

	gzPath := filepath.Join(tmpDir, "out.json.gz")
	require.NoError(t, aligncheck(newFlags("json", gzPath), path, nil))
	f, err := os.Open(gzPath)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err = ioutil.ReadAll(gz)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"label": "mapping_rate"`)
}

func TestAligncheckErrors(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestSAM(t, tmpDir)
	var out bytes.Buffer

	assert.Error(t, aligncheck(newFlags("text", ""), filepath.Join(tmpDir, "missing.bam"), &out))
	assert.Error(t, aligncheck(newFlags("yaml", ""), path, &out))

	flags := newFlags("text", "")
	*flags.sampling = "reservoir"
	assert.Error(t, aligncheck(flags, path, &out))

	flags = newFlags("text", "")
	*flags.fileType = "cram"
	assert.Error(t, aligncheck(flags, path, &out))

	flags = newFlags("text", "")
	*flags.maxInsertSize = 0
	assert.Error(t, aligncheck(flags, path, &out))
	assert.Equal(t, 0, out.Len())
}
