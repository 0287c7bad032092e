package core

import (
	"github.com/google/uuid"

	"dmclient/config"
	"dmclient/internal/dmconn"
	"dmclient/internal/metrics"
	"dmclient/internal/transport"
	"dmclient/util"
)

// Build constructs the Runner for a loaded configuration.  Every log
// line of the run carries a fresh run id.
func Build(out config.Outcome, logger *util.Logger) *Runner {
	logger = logger.With("run", uuid.NewString()[:8])
	m := metrics.New()

	return &Runner{
		Outcome: out,
		Connector: &dmconn.Connector{
			Dialer:  buildDialer(out, logger),
			Logger:  logger,
			Metrics: m,
		},
		Pacer:   SleepPacer,
		Logger:  logger,
		Metrics: m,
	}
}

// buildDialer creates the right transport.Dialer for the given
// configuration: through the SSH jump host when one is configured,
// plain TCP otherwise.
func buildDialer(out config.Outcome, logger *util.Logger) transport.Dialer {
	if tun := out.Config().Tunnel; tun != nil {
		return transport.NewJumpDialer(*tun, config.DefaultConnTimeout, logger)
	}
	return &transport.TCPDialer{Timeout: config.DefaultConnTimeout}
}
