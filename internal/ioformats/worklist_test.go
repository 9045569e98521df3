
package ioformats

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadVerbsLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "lista001.txt")
	write(t, p, "saltar\n\n  brincar \r\nxyzzy")
	verbs, err := ReadVerbs(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"saltar", "brincar", "xyzzy"}, verbs)
}

func TestQueueNextAndPop(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "listalistas.txt")
	write(t, index, "lista001.txt\nlista002.txt\n")
	write(t, filepath.Join(dir, "lista001.txt"), "saltar\nbrincar\n")
	write(t, filepath.Join(dir, "lista002.txt"), "correr\n")

	q := Queue{IndexPath: index}
	batch, verbs, err := q.Next()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lista001.txt"), batch)
	assert.Equal(t, []string{"saltar", "brincar"}, verbs)

	require.NoError(t, q.Pop())
	data, err := os.ReadFile(index)
	require.NoError(t, err)
	assert.Equal(t, "lista002.txt\n", string(data))

	_, verbs, err = q.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"correr"}, verbs)

	require.NoError(t, q.Pop())
	_, _, err = q.Next()
	assert.Error(t, err)
}

func TestRecordAppendAndLoad(t *testing.T) {
	r := Record{Path: filepath.Join(t.TempDir(), "lista_verbos", "verbos_scrapeados.txt")}
	done, err := r.Load()
	require.NoError(t, err)
	assert.Empty(t, done)

	require.NoError(t, r.Append("saltar"))
	require.NoError(t, r.Append("brincar"))
	done, err = r.Load()
	require.NoError(t, err)
	assert.Contains(t, done, "saltar")
	assert.Contains(t, done, "brincar")
	assert.Len(t, done, 2)
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSON(&buf, map[string]string{"verb": "saltar"}, map[string]string{"verb": "<b>"}))
	assert.Equal(t, "{\"verb\":\"saltar\"}\n{\"verb\":\"<b>\"}\n", buf.String())
}
