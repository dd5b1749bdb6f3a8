package mdconform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/mdstream/internal/mdconform"
)

func TestBlockSequence(t *testing.T) {
	src := []byte("# Title\n\nSome paragraph.\n\n- one\n- two\n\n```go\ncode\n```\n\n---\n")
	kinds := mdconform.BlockSequence(src)
	assert.Equal(t, []mdconform.BlockKind{
		mdconform.KindHeading,
		mdconform.KindParagraph,
		mdconform.KindListItem,
		mdconform.KindParagraph,
		mdconform.KindListItem,
		mdconform.KindParagraph,
		mdconform.KindFencedCode,
		mdconform.KindHorizontalRule,
	}, kinds)
}

func TestBlockSequence_Blockquote(t *testing.T) {
	kinds := mdconform.BlockSequence([]byte("> quoted text\n"))
	assert.Equal(t, []mdconform.BlockKind{mdconform.KindBlockquote, mdconform.KindParagraph}, kinds)
}
