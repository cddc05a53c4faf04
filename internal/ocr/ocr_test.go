package ocr

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	name   string
	args   []string
	stdin  []byte
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	f.stdin, _ = io.ReadAll(stdin)
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func TestExtractImage(t *testing.T) {
	r := &fakeRunner{stdout: "Name:  Jane\tDoe\r\n\r\n\r\n\r\nEmail: jane@example.com  \n"}
	e := NewEngineWithRunner(Config{TessdataDir: "/usr/share/tessdata", PSM: 6}, r, nil)

	res, err := e.ExtractImage(context.Background(), []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "tesseract", r.name)
	assert.Equal(t, []string{"stdin", "stdout", "-l", "eng", "--tessdata-dir", "/usr/share/tessdata", "--psm", "6"}, r.args)
	assert.Equal(t, []byte("png-bytes"), r.stdin)
	assert.Equal(t, "Name: Jane Doe\n\nEmail: jane@example.com", res.Text)
	assert.Equal(t, "image-ocr", res.Method)
	assert.Equal(t, "eng", res.Language)
}

func TestExtractImageFailure(t *testing.T) {
	r := &fakeRunner{stderr: "Error in pixReadMem\n", err: errors.New("exit status 1")}
	e := NewEngineWithRunner(Config{Tesseract: "/opt/tesseract", TesseractLang: "deu"}, r, nil)

	res, err := e.ExtractImage(context.Background(), []byte("junk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract")
	assert.Equal(t, "/opt/tesseract", r.name)
	assert.Equal(t, []string{"stdin", "stdout", "-l", "deu"}, r.args)
	assert.Equal(t, []string{"Error in pixReadMem"}, res.Warnings)
	assert.Empty(t, res.Text)
}

func TestNormalize(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Equal(t, "a b\n\nc", Normalize("  a \t  b  \r\n-----\nc\n\n"))
	assert.Equal(t, "one\n\ntwo", Normalize("one\n\n\n\n\ntwo"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...(truncated)", truncate("abc", 2))
}
