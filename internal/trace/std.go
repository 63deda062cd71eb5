package trace

import (
	"io"
	"os"
)

func isStd(w io.Writer) bool {
	return w == os.Stderr || w == os.Stdout
}
