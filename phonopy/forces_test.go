package phonopy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forceSetsText = `2
2

1
  0.0100000000000000  0.0000000000000000  0.0000000000000000
  -0.1000000000000000  0.0000000000000000  0.0000000000000000
  0.1000000000000000  0.0000000000000000  0.0000000000000000

2
  0.0000000000000000  0.0100000000000000  0.0000000000000000
  0.0000000000000000  0.2000000000000000  0.0000000000000000
  0.0000000000000000  -0.2000000000000000  0.0000000000000000
`

const forcesFC3Text = `# File: 1
# 1       0.0300000000000000    0.0000000000000000    0.0000000000000000
  -0.3000000000000000  0.0000000000000000  0.0000000000000000
  0.3000000000000000  0.0000000000000000  0.0000000000000000
# File: 2
# 1       0.0300000000000000    0.0000000000000000    0.0000000000000000
# 2       0.0000000000000000    0.0300000000000000    0.0000000000000000
  -0.1000000000000000  -0.4000000000000000  0.0000000000000000
  0.1000000000000000  0.4000000000000000  0.0000000000000000
`

func writeFile(Te *testing.T, name, content string) string {
	path := filepath.Join(Te.TempDir(), name)
	require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzFile(Te *testing.T, name, content string) string {
	path := filepath.Join(Te.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(Te, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(Te, err)
	require.NoError(Te, gz.Close())
	require.NoError(Te, f.Close())
	return path
}

func TestReadForceSets(Te *testing.T) {
	path := writeFile(Te, "FORCE_SETS", forceSetsText)
	assert.True(Te, IsForceSets(path))
	assert.False(Te, IsForcesFC3(path))

	sets, err := ReadForceSets(path)
	require.NoError(Te, err)
	require.Len(Te, sets, 2)
	require.Len(Te, sets[0].Disps, 1)
	assert.Equal(Te, 1, sets[0].Disps[0].Atom)
	assert.Equal(Te, [3]float64{0.01, 0, 0}, sets[0].Disps[0].Vector)
	require.Len(Te, sets[0].Forces, 2)
	assert.Equal(Te, [3]float64{-0.1, 0, 0}, sets[0].Forces[0])
	assert.Equal(Te, 2, sets[1].Disps[0].Atom)
}

func TestReadForceSetsGzip(Te *testing.T) {
	path := writeGzFile(Te, "FORCE_SETS.gz", forceSetsText)
	assert.True(Te, IsForceSets(path))
	sets, err := ReadForceSets(path)
	require.NoError(Te, err)
	assert.Len(Te, sets, 2)
}

func TestReadForcesFC3(Te *testing.T) {
	path := writeFile(Te, "FORCES_FC3", forcesFC3Text)
	assert.True(Te, IsForcesFC3(path))
	assert.False(Te, IsForceSets(path))

	sets, err := ReadForcesFC3(path)
	require.NoError(Te, err)
	require.Len(Te, sets, 2)
	assert.Len(Te, sets[0].Disps, 1)
	require.Len(Te, sets[1].Disps, 2)
	assert.Equal(Te, 2, sets[1].Disps[1].Atom)
	assert.Equal(Te, [3]float64{0, 0.03, 0}, sets[1].Disps[1].Vector)
	require.Len(Te, sets[1].Forces, 2)
	assert.Equal(Te, [3]float64{-0.1, -0.4, 0}, sets[1].Forces[0])
}

func TestReadForcesFC3OutOfOrder(Te *testing.T) {
	bad := `# File: 1
# 1       0.03    0.0    0.0
  -0.3  0.0  0.0
  0.3  0.0  0.0
# File: 3
# 1       0.03    0.0    0.0
  -0.3  0.0  0.0
  0.3  0.0  0.0
`
	path := writeFile(Te, "FORCES_FC3", bad)
	_, err := ReadForcesFC3(path)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "out of order")
}

func TestInconsistentForceSets(Te *testing.T) {
	bad := `# File: 1
# 1       0.03    0.0    0.0
  -0.3  0.0  0.0
  0.3  0.0  0.0
# File: 2
# 1       0.03    0.0    0.0
  -0.3  0.0  0.0
`
	path := writeFile(Te, "FORCES_FC3", bad)
	_, err := ReadForcesFC3(path)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), InconsistentSet)
}

func TestTruncatedForceSets(Te *testing.T) {
	path := writeFile(Te, "FORCE_SETS", "2\n2\n\n1\n")
	_, err := ReadForceSets(path)
	require.Error(Te, err)
}
