package httpapi

import (
	"strings"

	"github.com/riskibarqy/match-analyzer/internal/platform/tracing"
)

// Only handler entry points get spans; response helpers run inside them.
var spans = tracing.NewScope("match-analyzer/internal/interfaces/httpapi", "httpapi.", func(name string) bool {
	return strings.HasPrefix(name, "Handler.")
})
