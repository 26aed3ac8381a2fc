package testsupport

import (
	"context"

	"autopost/internal/document"
	"autopost/internal/media"
	"autopost/internal/pipeline"
	"autopost/internal/post"
	"autopost/internal/sheet"
)

// ScriptedDecisions answers the pipeline's questions from canned values so
// flows can run without a terminal. Zero values give sensible defaults: the
// suggested start line, the first headline option, the first cutline, and
// publish.
type ScriptedDecisions struct {
	StartLine      int
	Headline       string
	Cutline        *document.CutlineOption
	Actions        []pipeline.Action
	FallbackChoice media.FallbackChoice
	FallbackValue  string

	Confirmed []post.RowStatus

	actionIndex int
}

var _ pipeline.Decisions = (*ScriptedDecisions)(nil)

func (s *ScriptedDecisions) RedactionStart(_ context.Context, _ []string, defaultLine, _ int) (int, error) {
	if s.StartLine > 0 {
		return s.StartLine, nil
	}
	return defaultLine, nil
}

func (s *ScriptedDecisions) ChooseHeadline(_ context.Context, _ sheet.Candidate, _ string, options []document.HeadlineOption) (string, error) {
	if s.Headline != "" {
		return s.Headline, nil
	}
	if len(options) > 0 {
		return options[0].Headline, nil
	}
	return "Untitled", nil
}

func (s *ScriptedDecisions) ChooseCutline(_ context.Context, _ sheet.Candidate, options []document.CutlineOption) (document.CutlineOption, error) {
	if s.Cutline != nil {
		return *s.Cutline, nil
	}
	if len(options) > 0 {
		return options[0], nil
	}
	return document.CutlineOption{}, nil
}

func (s *ScriptedDecisions) ConfirmPost(_ context.Context, status *post.RowStatus) (pipeline.Action, error) {
	s.Confirmed = append(s.Confirmed, *status)
	if s.actionIndex < len(s.Actions) {
		action := s.Actions[s.actionIndex]
		s.actionIndex++
		return action, nil
	}
	return pipeline.ActionPublish, nil
}

func (s *ScriptedDecisions) ImageFallback(context.Context, string) (media.FallbackChoice, string, error) {
	return s.FallbackChoice, s.FallbackValue, nil
}
