package script

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bsscast/bsssim/pkg/bss/core"
)

// WriteTrace renders trace's per-process event blocks to w, in ascending
// process index order:
//
//	begin process pN
//	<event line>
//	...
//	end process pN
//	<blank line>
func WriteTrace(w io.Writer, trace *core.Trace) error {
	for i := 0; i < trace.ProcessCount(); i++ {
		label := "p" + strconv.Itoa(i+1)
		if _, err := fmt.Fprintf(w, "begin process %s\n", label); err != nil {
			return err
		}
		for _, event := range trace.Events(i) {
			if _, err := fmt.Fprintln(w, event); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "end process %s\n\n", label); err != nil {
			return err
		}
	}
	return nil
}
