// Package wizard drives the multi-step data-collection flows used for account
// registration and blood-request posting. A Flow accumulates field values
// across steps, gates forward navigation on per-step validation, branches its
// field set on the selected persona, and performs a single submission side
// effect through a collaborator port.
//
// A Flow is created fresh per form session and is not safe for concurrent
// use; callers drive it from a single goroutine.
package wizard

import (
	"context"
	"errors"
	"fmt"
)

// TotalSteps is the step count shared by every flow category.
const TotalSteps = 3

// Category selects which field subset and validation rules apply.
type Category string

const (
	CategoryDonorSignup    Category = "donor_signup"
	CategoryHospitalSignup Category = "hospital_signup"
	CategoryBloodRequest   Category = "blood_request"
)

// Valid reports whether the category is supported.
func (c Category) Valid() bool {
	switch c {
	case CategoryDonorSignup, CategoryHospitalSignup, CategoryBloodRequest:
		return true
	default:
		return false
	}
}

// signup reports whether the category is one of the two registration personas.
func (c Category) signup() bool {
	return c == CategoryDonorSignup || c == CategoryHospitalSignup
}

// Phase is the submission state of a flow.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

var (
	// ErrNotEditing is returned when a navigation or edit transition is
	// attempted outside the editing phase (e.g. while a submit is in flight).
	ErrNotEditing = errors.New("flow is not accepting input")
	// ErrLastStep is returned when advancing from the final step.
	ErrLastStep = errors.New("already at the last step")
	// ErrFirstStep is returned when retreating from the first step.
	ErrFirstStep = errors.New("already at the first step")
	// ErrNotLastStep is returned when submitting before the final step.
	ErrNotLastStep = errors.New("submit is only permitted from the last step")
	// ErrNotFailed is returned when dismissing a flow that has not failed.
	ErrNotFailed = errors.New("flow has not failed")
	// ErrUnknownField is returned for field names outside the superset of all
	// categories and steps.
	ErrUnknownField = errors.New("unknown field")
	// ErrCategorySwitch is returned when switching between a signup persona
	// and the request-posting category; those are separate forms.
	ErrCategorySwitch = errors.New("category cannot be switched on this flow")
)

// Submitter is the collaborator invoked with the assembled fields when a flow
// submits. Implementations create the account or post the request.
type Submitter interface {
	Submit(ctx context.Context, category Category, fields map[string]string) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, category Category, fields map[string]string) error

func (f SubmitterFunc) Submit(ctx context.Context, category Category, fields map[string]string) error {
	return f(ctx, category, fields)
}

// Options groups parameters for NewFlow.
type Options struct {
	// Category defaults to CategoryDonorSignup when empty.
	Category  Category
	Submitter Submitter
}

// Flow is one form session: current step, accumulated fields, and phase.
type Flow struct {
	category   Category
	step       int
	fields     map[string]string
	phase      Phase
	failReason string
	submitter  Submitter
}

// NewFlow creates a flow at step 1 with all fields empty.
func NewFlow(opts Options) (*Flow, error) {
	category := opts.Category
	if category == "" {
		category = CategoryDonorSignup
	}
	if !category.Valid() {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	if opts.Submitter == nil {
		return nil, errors.New("submitter is required")
	}
	return &Flow{
		category:  category,
		step:      1,
		fields:    make(map[string]string),
		phase:     PhaseEditing,
		submitter: opts.Submitter,
	}, nil
}

// Category returns the active category.
func (f *Flow) Category() Category { return f.category }

// Step returns the current 1-indexed step.
func (f *Flow) Step() int { return f.step }

// Phase returns the submission state.
func (f *Flow) Phase() Phase { return f.phase }

// FailReason returns the collaborator error message after a failed submit.
func (f *Flow) FailReason() string { return f.failReason }

// Field returns the current value of a field.
func (f *Flow) Field(name string) string { return f.fields[name] }

// Fields returns a copy of all entered field values.
func (f *Flow) Fields() map[string]string {
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// SelectCategory switches the persona while editing. Fields shared across
// categories keep their values; fields exclusive to the previous category stop
// being validated. Signup personas are interchangeable; the request-posting
// form is single-category.
func (f *Flow) SelectCategory(c Category) error {
	if f.phase != PhaseEditing {
		return ErrNotEditing
	}
	if !c.Valid() {
		return fmt.Errorf("invalid category %q", c)
	}
	if c == f.category {
		return nil
	}
	if !c.signup() || !f.category.signup() {
		return ErrCategorySwitch
	}
	f.category = c
	return nil
}

// EditField sets a field value. No validation happens on edit; validation is
// evaluated at advance and submit time.
func (f *Flow) EditField(name, value string) error {
	if f.phase != PhaseEditing {
		return ErrNotEditing
	}
	if !knownFields[name] {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.fields[name] = value
	return nil
}

// Advance moves to the next step if every required field for the current
// (category, step) passes validation. On failure the returned error is a
// *ValidationError and the state is unchanged.
func (f *Flow) Advance() error {
	if f.phase != PhaseEditing {
		return ErrNotEditing
	}
	if f.step >= TotalSteps {
		return ErrLastStep
	}
	if verr := validateStep(f.category, f.step, f.fields); verr != nil {
		return verr
	}
	f.step++
	return nil
}

// Retreat moves to the previous step unconditionally; the previous step was
// already valid to get here.
func (f *Flow) Retreat() error {
	if f.phase != PhaseEditing {
		return ErrNotEditing
	}
	if f.step <= 1 {
		return ErrFirstStep
	}
	f.step--
	return nil
}

// Submit validates every step for the active category, then invokes the
// collaborator with the fields snapshot filtered to the category's field set.
// While the collaborator runs the flow is pinned at PhaseSubmitting and
// rejects all other transitions. On collaborator failure the flow moves to
// PhaseFailed and the error is returned; Dismiss recovers to the last step
// with fields intact.
func (f *Flow) Submit(ctx context.Context) error {
	if f.phase != PhaseEditing {
		return ErrNotEditing
	}
	if f.step != TotalSteps {
		return ErrNotLastStep
	}
	if verr := validateAll(f.category, f.fields); verr != nil {
		return verr
	}

	f.phase = PhaseSubmitting
	err := f.submitter.Submit(ctx, f.category, f.payload())
	if err != nil {
		f.phase = PhaseFailed
		f.failReason = err.Error()
		return err
	}
	f.phase = PhaseSucceeded
	f.failReason = ""
	return nil
}

// Dismiss acknowledges a failed submission and returns to the last step with
// all entered data intact.
func (f *Flow) Dismiss() error {
	if f.phase != PhaseFailed {
		return ErrNotFailed
	}
	f.phase = PhaseEditing
	f.failReason = ""
	return nil
}

// Reset discards all entered data and returns to step 1 of the same category.
// Used by "submit another" after a successful submission.
func (f *Flow) Reset() {
	f.step = 1
	f.fields = make(map[string]string)
	f.phase = PhaseEditing
	f.failReason = ""
}

// payload returns the fields snapshot filtered to the active category's field
// set, dropping entries left over from a previous persona.
func (f *Flow) payload() map[string]string {
	set := categoryFieldSet(f.category)
	out := make(map[string]string, len(set))
	for name, value := range f.fields {
		if set[name] {
			out[name] = value
		}
	}
	return out
}
