// Package pipeline orchestrates one turn of the symptom-intake conversation:
// detect the category, record the answer, classify urgency, then either ask
// the next question or compose the guidance payload.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/carebridge/symptom-triage/triage/classify"
	"github.com/carebridge/symptom-triage/triage/detect"
	"github.com/carebridge/symptom-triage/triage/differential"
	"github.com/carebridge/symptom-triage/triage/episode"
	"github.com/carebridge/symptom-triage/triage/flow"
	"github.com/carebridge/symptom-triage/triage/guidance"
	"github.com/carebridge/symptom-triage/triage/memory"
	ports "github.com/carebridge/symptom-triage/triage/pipeline/ports"
)

// Request carries one user message into the pipeline.
type Request struct {
	MemberID string
	Message  string
	ForWhom  string // "me" | "family", only read when starting an episode

	// AgeGroup is who the symptoms are about, when the caller knows it
	// (member profile or an explicit "who is this for" step). Only read
	// when starting an episode.
	AgeGroup episode.AgeGroup

	// Episode is the in-flight episode, or nil to start a new one from
	// this message.
	Episode *episode.Episode

	// AnsweredQuestionID names the question the message answers, when the
	// previous turn asked one. Empty for the opening message.
	AnsweredQuestionID string

	// Profile enables booking prefill in suggested actions.
	Profile *guidance.MemberProfile
}

// Response is the outcome of one pipeline turn. Exactly one of Question and
// Guidance is set: either the flow needs more information or it is done.
type Response struct {
	Episode          episode.Episode
	Assessment       episode.SafetyAssessment
	Question         *flow.Question
	Guidance         *guidance.GuidanceResponse
	OTCSuggestions   []string
	MemoryCandidates []episode.MemoryCandidate
}

// Pipeline wires the intake stages behind a single Process call.
type Pipeline struct {
	controller *flow.Controller
	tracer     ports.Tracer
	episodes   ports.EpisodeStore
	memories   ports.MemoryFactStore
	extraction bool
	persist    bool
}

// New assembles a pipeline from its collaborators. Stores and tracer must be
// non-nil; the factory substitutes no-ops when a concern is disabled.
func New(controller *flow.Controller, tracer ports.Tracer, episodes ports.EpisodeStore, memories ports.MemoryFactStore, extraction, persist bool) *Pipeline {
	return &Pipeline{
		controller: controller,
		tracer:     tracer,
		episodes:   episodes,
		memories:   memories,
		extraction: extraction,
		persist:    persist,
	}
}

// Process runs one turn. The caller passes back the returned episode (and
// the asked question's ID) on the next turn.
func (p *Pipeline) Process(ctx context.Context, req *Request) (resp *Response, err error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("empty message")
	}

	attrs := map[string]any{"member_id": req.MemberID}
	if req.Episode != nil {
		attrs["episode_id"] = req.Episode.ID
	}
	ctx, finish := p.tracer.StartSpan(ctx, "process_message", attrs)
	defer func() { finish(err) }()

	snapshot, err := p.memories.Snapshot(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory snapshot: %w", err)
	}

	ep := p.resolveEpisode(ctx, req, snapshot)
	ep = ep.WithTurn("user", req.Message)

	if req.AnsweredQuestionID != "" {
		ep.Context, ep.FlowState = p.controller.RecordAnswer(ep.Context, ep.FlowState, req.AnsweredQuestionID, req.Message)
	}

	assessment := classify.Classify(ep.AllUserText(), ep.Context.AgeGroup)
	p.tracer.Event(ctx, "classified", map[string]any{
		"urgency":   string(assessment.Urgency),
		"red_flags": len(assessment.RedFlagsDetected),
	})

	resp = &Response{Assessment: assessment}

	// Emergencies skip straight to guidance; every remaining question is
	// less important than the escalation message.
	needGuidance := assessment.Urgency == episode.UrgencyEmergency ||
		p.controller.HasEnoughInformation(ep.Context, ep.FlowState)

	if !needGuidance {
		if q := p.controller.NextQuestion(ep.Context, ep.FlowState, snapshot); q != nil {
			ep = ep.WithTurn("assistant", q.Question)
			resp.Question = q
		} else {
			needGuidance = true
		}
	}

	if needGuidance {
		differentials := differential.Generate(ep.Context, assessment)
		g := guidance.Compose(ep.Context, assessment, differentials, req.Profile)
		ep = ep.WithTurn("assistant", g.Understanding)
		resp.Guidance = &g
		resp.OTCSuggestions = guidance.OTCSuggestions(ep.FlowState.SymptomCategory, assessment.Urgency)
		p.tracer.Event(ctx, "guidance_composed", map[string]any{
			"risk_level":    string(g.RiskLevel),
			"differentials": len(g.Differentials),
		})
	}

	if p.extraction {
		resp.MemoryCandidates = memory.Extract(ep.AllUserText())
	}

	if p.persist {
		if err := p.episodes.Save(ctx, req.MemberID, ep); err != nil {
			return nil, fmt.Errorf("failed to persist episode %s: %w", ep.ID, err)
		}
	}

	resp.Episode = ep
	return resp, nil
}

// resolveEpisode continues the caller's episode or starts a fresh one seeded
// from the message and the member's confirmed facts.
func (p *Pipeline) resolveEpisode(ctx context.Context, req *Request, snapshot episode.MemorySnapshot) episode.Episode {
	if req.Episode != nil {
		return *req.Episode
	}

	category := detect.Detect(req.Message)
	ep := episode.NewEpisode(req.Message, category)
	ep.ForWhom = req.ForWhom
	ep.Context.AgeGroup = req.AgeGroup
	ep.Context = memory.ApplySnapshot(ep.Context, snapshot)

	p.tracer.Event(ctx, "episode_started", map[string]any{
		"episode_id": ep.ID,
		"category":   string(category),
	})
	return ep
}
