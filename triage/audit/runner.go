//go:build !prod

package audit

import (
	"context"
	"fmt"

	"github.com/carebridge/symptom-triage/triage/config"
	"github.com/carebridge/symptom-triage/triage/flow"
	"github.com/carebridge/symptom-triage/triage/pipeline"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// CheckResult is one predicate's verdict with its evidence line.
type CheckResult struct {
	Check    string `json:"check"`
	Passed   bool   `json:"passed"`
	Evidence string `json:"evidence"`
}

// CaseResult aggregates one case's check verdicts.
type CaseResult struct {
	Name   string        `json:"name"`
	Passed bool          `json:"passed"`
	Checks []CheckResult `json:"checks"`
	Err    string        `json:"error,omitempty"`
}

// Summary is the aggregate outcome of a full audit run.
type Summary struct {
	Total   int          `json:"total"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Results []CaseResult `json:"results"`
}

// Runner replays the canned cases through a pipeline and evaluates their
// checks concurrently.
type Runner struct {
	pipe           *pipeline.Pipeline
	cases          []Case
	concurrency    int
	validateSchema bool
	logger         zerolog.Logger
}

// NewRunner builds a runner around an existing pipeline. The pipeline should
// not persist anything; use NewDetachedRunner unless a specific wiring is
// under test.
func NewRunner(pipe *pipeline.Pipeline, cfg config.AuditConfig, logger zerolog.Logger) *Runner {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{
		pipe:           pipe,
		cases:          Cases(),
		concurrency:    concurrency,
		validateSchema: cfg.ValidateSchema,
		logger:         logger,
	}
}

// NewDetachedRunner builds a runner with a storage-free pipeline: no-op
// tracer inside the runs, no persistence, default flow limits.
func NewDetachedRunner(cfg config.AuditConfig, logger zerolog.Logger) *Runner {
	limits := flow.DefaultLimits()
	factory := pipeline.NewFactory(&config.Config{
		Flow: config.FlowConfig{
			MaxPainQuestions:    limits.MaxPainQuestions,
			MaxOptionalSymptom:  limits.MaxOptionalSymptom,
			MaxGeneralQuestions: limits.MaxGeneralQuestions,
			MaxTotalQuestions:   limits.MaxTotalQuestions,
			SevereSeverity:      limits.SevereSeverity,
			SevereMinAsked:      limits.SevereMinAsked,
			MinAskedForEnough:   limits.MinAskedForEnough,
		},
		Pipeline: config.PipelineConfig{MemoryExtraction: true},
	}, nil, logger)
	return NewRunner(factory.CreatePipeline(), cfg, logger)
}

// Run executes every case and returns the aggregate summary.
func (r *Runner) Run(ctx context.Context) Summary {
	p := pool.NewWithResults[CaseResult]().WithMaxGoroutines(r.concurrency)

	for _, c := range r.cases {
		c := c
		p.Go(func() CaseResult {
			return r.runCase(ctx, c)
		})
	}

	results := p.Wait()

	summary := Summary{Total: len(results), Results: results}
	for _, res := range results {
		if res.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	event := r.logger.Info()
	if summary.Failed > 0 {
		event = r.logger.Error()
	}
	event.
		Int("total", summary.Total).
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Msg("Audit run complete")

	return summary
}

// runCase replays one conversation and applies its checks.
func (r *Runner) runCase(ctx context.Context, c Case) CaseResult {
	o, err := r.replay(ctx, c)
	if err != nil {
		r.logger.Error().Str("case", c.Name).Err(err).Msg("Audit case failed to run")
		return CaseResult{Name: c.Name, Err: err.Error()}
	}

	result := CaseResult{Name: c.Name, Passed: true}
	for _, tag := range c.Checks {
		fn, ok := checks[tag]
		if !ok {
			result.Passed = false
			result.Checks = append(result.Checks, CheckResult{Check: tag, Evidence: "unknown check tag"})
			continue
		}
		passed, evidence := fn(o)
		result.Checks = append(result.Checks, CheckResult{Check: tag, Passed: passed, Evidence: evidence})
		if !passed {
			result.Passed = false
		}
	}

	if r.validateSchema {
		result.Checks = append(result.Checks, r.schemaCheck(o))
		if !result.Checks[len(result.Checks)-1].Passed {
			result.Passed = false
		}
	}

	r.logger.Info().Str("case", c.Name).Bool("passed", result.Passed).Msg("Audit case evaluated")
	return result
}

// replay feeds the case messages through the pipeline, answering whatever
// question the previous turn asked.
func (r *Runner) replay(ctx context.Context, c Case) (outcome, error) {
	var o outcome

	req := &pipeline.Request{
		MemberID: "audit",
		AgeGroup: c.AgeGroup,
	}

	for i, msg := range c.Messages {
		req.Message = msg
		resp, err := r.pipe.Process(ctx, req)
		if err != nil {
			return o, fmt.Errorf("turn %d: %w", i, err)
		}
		o.responses = append(o.responses, resp)

		ep := resp.Episode
		req.Episode = &ep
		req.AnsweredQuestionID = ""
		if resp.Question != nil {
			req.AnsweredQuestionID = resp.Question.QuestionID
		}
	}
	return o, nil
}

// schemaCheck validates every guidance payload the run produced against the
// serialized contract.
func (r *Runner) schemaCheck(o outcome) CheckResult {
	validated := 0
	for _, resp := range o.responses {
		if resp.Guidance == nil {
			continue
		}
		if err := validateGuidance(resp.Guidance); err != nil {
			return CheckResult{Check: "schema", Evidence: err.Error()}
		}
		validated++
	}
	return CheckResult{Check: "schema", Passed: true, Evidence: fmt.Sprintf("%d guidance payloads validated", validated)}
}
