package token_test

import (
	"fmt"

	"github.com/jcorbin/mdstream/token"
)

func Example() {
	tok := token.NewTokenizer()
	cr := tok.Feed([]byte("# Title\n"))
	for _, ev := range cr.Events {
		fmt.Println(ev.Tag)
	}
	// Output:
	// BlockStart
	// BlockAppendInline
	// BlockEnd
}
