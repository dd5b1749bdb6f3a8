package textbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/mdstream/internal/textbuf"
)

func TestStreamBuffer_Append(t *testing.T) {
	var buf textbuf.StreamBuffer
	start, end := buf.Append([]byte("hello "))
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, end)
	start, end = buf.Append([]byte("world"))
	assert.Equal(t, 6, start)
	assert.Equal(t, 11, end)
	assert.Equal(t, "hello world", string(buf.Bytes()))
}

func TestStreamBuffer_Discard(t *testing.T) {
	var buf textbuf.StreamBuffer
	buf.Append([]byte("line one\nline two\n"))
	buf.Discard(9)
	assert.Equal(t, "line two\n", string(buf.Bytes()))
}
