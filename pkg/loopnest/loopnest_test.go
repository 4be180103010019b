package loopnest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFileMatmul(t *testing.T) {
	table, err := ScanFile(filepath.Join("testdata", "matmul.c"))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	s1 := table.Lookup("S1")
	assert.Equal(t, 2, s1.Depth)
	assert.Equal(t, []string{"i", "j"}, s1.Iterators)

	s2 := table.Lookup("S2")
	assert.Equal(t, 3, s2.Depth)
	assert.Equal(t, []string{"i", "j", "k"}, s2.Iterators)
}

func TestScanDeclarationInitializer(t *testing.T) {
	src := []byte(`
void f(int n, int *a) {
  #pragma scop
  for (int i = 0; i < n; i++) {
    a[i] = a[i] + 1;
  }
  #pragma endscop
}
`)
	table, err := Scan(src)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	s1 := table.Lookup("S1")
	assert.Equal(t, 1, s1.Depth)
	assert.Equal(t, []string{"i"}, s1.Iterators)
}

func TestScanWithoutPragmasUsesWholeFile(t *testing.T) {
	src := []byte(`
void f(int n, int *a) {
  for (int i = 0; i < n; i++)
    a[i] = 0;
}
`)
	table, err := Scan(src)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"i"}, table.Lookup("S1").Iterators)
}

func TestScanStatementsOutsideRegionIgnored(t *testing.T) {
	src := []byte(`
void f(int n, int *a) {
  a[0] = 1;
  #pragma scop
  for (int i = 0; i < n; i++)
    a[i] = a[i] * 2;
  #pragma endscop
  a[1] = 2;
}
`)
	table, err := Scan(src)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, 1, table.Lookup("S1").Depth)
}

func TestScanUnnamedLoopLevels(t *testing.T) {
	src := []byte(`
void f(int n, int *a) {
  #pragma scop
  while (n > 0) {
    for (int i = 0; i < n; i++)
      a[i] = a[i] - 1;
    n--;
  }
  #pragma endscop
}
`)
	table, err := Scan(src)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	// The while level counts toward depth but has no iterator name.
	s1 := table.Lookup("S1")
	assert.Equal(t, 2, s1.Depth)
	assert.Equal(t, []string{"i"}, s1.Iterators)

	s2 := table.Lookup("S2")
	assert.Equal(t, 1, s2.Depth)
	assert.Empty(t, s2.Iterators)
}
