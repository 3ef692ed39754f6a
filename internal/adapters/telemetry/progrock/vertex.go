package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Vertex tracks one download on the tape.
type Vertex struct {
	vertex   *progrock.VertexRecorder
	total    int64
	received int64
}

// Progress adds n received bytes.
func (v *Vertex) Progress(n int64) {
	v.received += n
}

// Complete marks the download as finished, successfully or with err.
func (v *Vertex) Complete(err error) {
	if v.total > 0 {
		_, _ = fmt.Fprintf(v.vertex.Stdout(), "%d/%d bytes\n", v.received, v.total)
	} else {
		_, _ = fmt.Fprintf(v.vertex.Stdout(), "%d bytes\n", v.received)
	}
	v.vertex.Done(err)
}
