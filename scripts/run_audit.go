//go:build integration
// +build integration

package scripts

import (
	"context"
	"log"
	"os"

	"github.com/carebridge/symptom-triage/triage/audit"
	"github.com/carebridge/symptom-triage/triage/config"

	"github.com/rs/zerolog"
)

// RunAudit replays the canned safety cases against a detached pipeline and
// fails loudly if any check does not hold.
func RunAudit() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	runner := audit.NewDetachedRunner(cfg.Audit, logger)
	summary := runner.Run(context.Background())

	for _, res := range summary.Results {
		for _, check := range res.Checks {
			logger.Info().
				Str("case", res.Name).
				Str("check", check.Check).
				Bool("passed", check.Passed).
				Str("evidence", check.Evidence).
				Msg("Check result")
		}
	}

	if summary.Failed > 0 {
		log.Fatalf("audit failed: %d of %d cases", summary.Failed, summary.Total)
	}
	logger.Info().Int("cases", summary.Total).Msg("All audit cases passed")
}
