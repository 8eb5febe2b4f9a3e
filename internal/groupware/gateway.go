package groupware

import (
	"context"

	"github.com/teemow/groupware-mcp/internal/config"
	"github.com/teemow/groupware-mcp/internal/normalize"
)

// Gateway is the contract both the live client and the mock satisfy:
// one operation per backend capability. Search operations hand the raw
// response to the normalizer and return uniform record lists.
type Gateway interface {
	SaveEvent(ctx context.Context, input EventInput) (*SaveResult, error)
	SearchEvents(ctx context.Context, query EventQuery) ([]normalize.Record, error)
	SaveContact(ctx context.Context, input ContactInput) (*SaveResult, error)
	SearchContacts(ctx context.Context, query ContactQuery) ([]normalize.Record, error)
	WriteTask(ctx context.Context, input TaskInput) (*SaveResult, error)
	SearchTasks(ctx context.Context, query TaskQuery) ([]normalize.Record, error)

	// SendEmail reports success without contacting the backend. The
	// groupware document protocol has no mail submission endpoint; the
	// stub is preserved deliberately instead of silently inventing a
	// delivery path.
	SendEmail(ctx context.Context, input EmailInput) error
}

// New selects the Gateway implementation for the given configuration:
// the deterministic mock when offline/test mode applies, the live HTTP
// client otherwise. Selection happens once at construction so that test
// and production logic never interleave in one call path.
func New(cfg config.Config) Gateway {
	if cfg.MockMode() {
		return NewMock()
	}
	return NewClient(cfg)
}
