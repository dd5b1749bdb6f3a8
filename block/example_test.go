package block_test

import (
	"fmt"

	"github.com/jcorbin/mdstream/block"
	"github.com/jcorbin/mdstream/token"
)

func Example() {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	as.Apply(tok.Feed([]byte("# Title\n\nbody\n")))
	as.Apply(tok.Finish())

	for _, b := range as.MakeSnapshot().Blocks {
		fmt.Println(b.Kind.Tag)
	}
	// Output:
	// Heading
	// Paragraph
}
