package roster

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src Source) [][]string {
	t.Helper()

	var rows [][]string
	for {
		row, err := src.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestCSVSource(t *testing.T) {
	input := "\ufeffStudent Name,Class Date,Attendance\n" +
		"Alice, 1/5/24,present\n" +
		"\n" +
		"\"Smith, Bob\",1/5/24\n"

	src := NewCSVSource(strings.NewReader(input))

	rows := readAll(t, src)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Student Name", "Class Date", "Attendance"}, rows[0])
	assert.Equal(t, []string{"Alice", "1/5/24", "present"}, rows[1])
	assert.Equal(t, []string{"Smith, Bob", "1/5/24"}, rows[2], "short rows pass through")
	assert.Equal(t, 4, src.Line())
}

func TestCSVSourceMalformedQuote(t *testing.T) {
	src := NewCSVSource(strings.NewReader("a,b\n\"unterminated,c\n"))

	_, err := src.Next()
	require.NoError(t, err)

	_, err = src.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.csv")
	require.NoError(t, os.WriteFile(path, []byte("Student Name\nAlice\n"), 0o600))

	src, err := OpenFile(path)
	require.NoError(t, err)
	defer src.Close()

	rows := readAll(t, src)
	assert.Equal(t, [][]string{{"Student Name"}, {"Alice"}}, rows)

	sum := sha256.Sum256([]byte("Student Name\nAlice\n"))
	assert.Equal(t, hex.EncodeToString(sum[:]), src.Digest())

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestSliceSource(t *testing.T) {
	src := NewSliceSource([][]string{{"a"}, {"b"}})

	assert.Equal(t, [][]string{{"a"}, {"b"}}, readAll(t, src))
	assert.Equal(t, 2, src.Line())

	_, err := src.Next()
	assert.Equal(t, io.EOF, err)
}
