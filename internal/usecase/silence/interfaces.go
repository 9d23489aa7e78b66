package silence

import (
	"context"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
)

// SilenceCreator defines the contract for the outbound silencing API call.
type SilenceCreator interface {
	// CreateSilence posts the silence and returns the ID assigned by the
	// monitoring system.
	CreateSilence(ctx context.Context, req *entity.SilenceRequest) (silenceID string, err error)
}
