package block

import (
	"fmt"
	"io"
)

// Format writes a textual representation of the receiver, providing
// improved fmt.Printf display: a verbose multi-line tree when formatted
// with "%+v", a terse single-line listing otherwise.
func (as *Assembler) Format(f fmt.State, _ rune) {
	if as.arena.len() == 0 {
		io.WriteString(f, "-- empty --")
		return
	}
	if f.Flag('+') {
		for i := 0; i < as.arena.len(); i++ {
			e := as.arena.at(i)
			io.WriteString(f, "\n")
			for d := 0; d < e.Depth; d++ {
				io.WriteString(f, "  ")
			}
			if e.Closed {
				fmt.Fprintf(f, "</%+v id=%v>", e.Kind, e.ID)
			} else {
				fmt.Fprintf(f, "<%+v id=%v>", e.Kind, e.ID)
			}
		}
		return
	}
	for i := 0; i < as.arena.len(); i++ {
		e := as.arena.at(i)
		io.WriteString(f, " ")
		if e.Closed {
			fmt.Fprintf(f, "%v#%v", e.Kind, e.ID)
		} else {
			fmt.Fprintf(f, "/%v#%v", e.Kind, e.ID)
		}
	}
}
