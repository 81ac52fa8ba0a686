package handler

import (
	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	assignAuthorWorkflow   = ".github/workflows/assign-author.yml"
	labelConflictsWorkflow = ".github/workflows/label-merge-conflict.yml"
)

// workflowToggle is a confirm setting that keeps or drops one GitHub
// workflow.
type workflowToggle struct {
	Base
	workflow string
}

func (*workflowToggle) Kind() Kind                       { return KindConfirm }
func (*workflowToggle) DependsOn() []string              { return []string{IDCodeProvider} }
func (*workflowToggle) ShouldRun(r *api.Responses) bool  { return isGitHub(r) }
func (*workflowToggle) Default(*api.Responses) api.Value { return api.Bool(true) }
func (h *workflowToggle) Discover() api.Value            { return api.Bool(h.dstExists(h.workflow)) }

func (h *workflowToggle) process(keep bool, t *materialize.Tree) {
	if !keep {
		t.Remove(h.workflow)
	}
}

// AssignAuthorPR toggles assigning pull requests to their authors.
type AssignAuthorPR struct{ workflowToggle }

func newAssignAuthorPR(b Base) *AssignAuthorPR {
	return &AssignAuthorPR{workflowToggle{Base: b, workflow: assignAuthorWorkflow}}
}

func (*AssignAuthorPR) ID() string    { return IDAssignAuthorPR }
func (*AssignAuthorPR) Label() string { return "Auto-assign the author to their PR?" }

func (*AssignAuthorPR) Hint(*api.Responses) string {
	return "Helps to keep the PRs organized."
}

func (h *AssignAuthorPR) Process(r *api.Responses, t *materialize.Tree) error {
	h.process(r.Truth(IDAssignAuthorPR), t)
	return nil
}

// LabelMergeConflictsPR toggles labelling pull requests that conflict with
// their base branch.
type LabelMergeConflictsPR struct{ workflowToggle }

func newLabelMergeConflictsPR(b Base) *LabelMergeConflictsPR {
	return &LabelMergeConflictsPR{workflowToggle{Base: b, workflow: labelConflictsWorkflow}}
}

func (*LabelMergeConflictsPR) ID() string    { return IDLabelMergeConflictsPR }
func (*LabelMergeConflictsPR) Label() string { return "Auto-add a CONFLICT label to a PR when conflicts occur?" }

func (*LabelMergeConflictsPR) Hint(*api.Responses) string {
	return "Helps to quickly identify PRs that need attention."
}

func (h *LabelMergeConflictsPR) Process(r *api.Responses, t *materialize.Tree) error {
	h.process(r.Truth(IDLabelMergeConflictsPR), t)
	return nil
}

// PreserveDocsProject toggles keeping the project documentation.
type PreserveDocsProject struct{ Base }

func (*PreserveDocsProject) ID() string    { return IDPreserveDocsProject }
func (*PreserveDocsProject) Label() string { return "Preserve project documentation?" }
func (*PreserveDocsProject) Kind() Kind    { return KindConfirm }

func (*PreserveDocsProject) Hint(*api.Responses) string {
	return "Helps to maintain the project documentation within the repository."
}

func (h *PreserveDocsProject) Discover() api.Value {
	return api.Bool(h.dstExists("docs/README.md"))
}

func (*PreserveDocsProject) Default(*api.Responses) api.Value { return api.Bool(true) }

func (*PreserveDocsProject) Process(r *api.Responses, t *materialize.Tree) error {
	keep := r.Truth(IDPreserveDocsProject)
	t.Token("DOCS_PROJECT", keep)
	if !keep {
		t.Remove("docs")
	}
	return nil
}

const (
	AIClaude = "claude"
	AINone   = "none"
)

// AICodeInstructions selects whether instructions for AI coding assistants
// ship with the project.
type AICodeInstructions struct{ Base }

func (*AICodeInstructions) ID() string    { return IDAICodeInstructions }
func (*AICodeInstructions) Label() string { return "AI code assistant instructions" }
func (*AICodeInstructions) Kind() Kind    { return KindSelect }

func (*AICodeInstructions) Hint(*api.Responses) string {
	return "Provides AI coding assistants with better context about the project."
}

func (*AICodeInstructions) Options(*api.Responses) []Option {
	return []Option{
		{Value: AIClaude, Label: "Anthropic Claude"},
		{Value: AINone, Label: "None"},
	}
}

func (h *AICodeInstructions) Discover() api.Value {
	if h.dstExists("CLAUDE.md") {
		return api.String(AIClaude)
	}
	return api.String(AINone)
}

func (*AICodeInstructions) Default(*api.Responses) api.Value { return api.String(AINone) }

func (*AICodeInstructions) Process(r *api.Responses, t *materialize.Tree) error {
	claude := r.Str(IDAICodeInstructions) == AIClaude
	t.Token("AI_CODE_INSTRUCTIONS", claude)
	if !claude {
		t.Remove("CLAUDE.md")
	}
	return nil
}
