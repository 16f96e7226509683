// internal/adapters/output/lines_test.go
package output

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"vita/internal/testutil"
)

func TestLineWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)

	for _, name := range []string{"www.hackerone.com", "api.hackerone.com"} {
		require.NoError(t, w.Write(name))
	}
	testutil.AssertEqual(t, buf.Len(), 0, "buffered until close")

	require.NoError(t, w.Close())
	testutil.AssertEqual(t, buf.String(), "www.hackerone.com\napi.hackerone.com\n", "one name per line")
	testutil.AssertEqual(t, w.Count(), 2, "count")

	testutil.AssertNoError(t, w.Close(), "second close is a no-op")
	testutil.AssertErrorIs(t, w.Write("late.hackerone.com"), ErrClosed, "write after close")
}

func TestLineWriter_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Write("x.hackerone.com")
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	testutil.AssertEqual(t, w.Count(), 20, "every write counted")
	testutil.AssertEqual(t, bytes.Count(buf.Bytes(), []byte("\n")), 20, "lines intact")
}

func TestOpenFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "names.txt")

	f, err := OpenFile(path)
	require.NoError(t, err)

	w := NewLineWriter(f)
	require.NoError(t, w.Write("www.hackerone.com"))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	testutil.AssertEqual(t, string(data), "www.hackerone.com\n", "file content")
}

func TestOpenFile_Error(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := OpenFile(filepath.Join(blocker, "names.txt"))
	testutil.AssertError(t, err, "parent is a regular file")
}
