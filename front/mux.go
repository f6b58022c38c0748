package front

import (
	"net/http"

	"github.com/advdv/tbgate"
	"go.uber.org/zap"
)

// Mux is an alias for tbgate.ServeMux.
type Mux = tbgate.ServeMux

// NewMux creates a new Mux. Responses are buffered without a size limit:
// captured backend payloads (scalar dumps, graph definitions) routinely run
// into tens of megabytes and are replayed whole.
func NewMux(logs *zap.Logger) *Mux {
	return tbgate.NewServeMuxWith(
		-1,
		newZapGateLogger(logs),
		http.NewServeMux(),
		tbgate.NewReverser(),
	)
}
