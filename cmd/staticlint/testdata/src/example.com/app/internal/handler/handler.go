package handler

import "example.com/app/internal/workflow"

type view struct {
	workflow.FormState
	Title string
}

type other struct {
	IsSubmitting bool
}

func render(s workflow.FormState, p *workflow.FormState, v *view, o *other) workflow.FormState {
	s.IsSubmitting = false // want "FormState.IsSubmitting is written outside package workflow"
	p.ShortURLResult = "x" // want "FormState.ShortURLResult is written outside package workflow"
	(p.LongURLInput) = ""  // want "FormState.LongURLInput is written outside package workflow"
	p.Attempts++           // want "FormState.Attempts is written outside package workflow"
	v.LongURLInput = "y"   // want "FormState.LongURLInput is written outside package workflow"
	v.Title = "ok"
	o.IsSubmitting = true
	next := workflow.Edit(s, "https://example.com")
	copied := next
	_ = copied.ShortURLResult
	return workflow.Edit(next, p.LongURLInput)
}
