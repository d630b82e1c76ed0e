// internal/pkg/upload/storage_test.go
package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	content := "policy scan bytes"
	stored, err := storage.Save(strings.NewReader(content), "policy.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.URL, "/files/"))
	assert.True(t, strings.HasSuffix(stored.URL, ".pdf"))
	assert.Equal(t, int64(len(content)), stored.Size)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), stored.SHA256)

	data, err := os.ReadFile(filepath.Join(storage.Dir(), filepath.Base(stored.URL)))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	first, err := storage.Save(strings.NewReader("same"), "a.jpg")
	require.NoError(t, err)
	second, err := storage.Save(strings.NewReader("same"), "a.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first.URL, second.URL)
	assert.Equal(t, first.SHA256, second.SHA256)
}

func TestSaveWithoutExtension(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.Save(strings.NewReader("x"), "README")
	require.NoError(t, err)
	assert.NotContains(t, filepath.Base(stored.URL), ".")
}
