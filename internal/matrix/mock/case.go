// Package mock provides a concrete multi-stage case implementation for use in
// tests and for CLI-side matrix expansion, where no real training case class
// is linked in.
package mock

import (
	"github.com/google/uuid"
)

// StageCase is an opaque multi-stage case instance. Each constructed case
// carries a unique instance id so tests (and humans reading debug output) can
// tell a reused case apart from a rebuilt one.
type StageCase struct {
	// ID uniquely identifies this case instance.
	ID string
	// Stages is the ordered stage list the case would execute.
	Stages []string
	// ParamFactories is the action-parameter-factories value the case was
	// constructed with, kept verbatim.
	ParamFactories interface{}
}

// CaseFactory implements the case-object contract with a fixed stage list. It
// counts constructions and can be told to fail, which the engine tests use to
// verify cache behavior.
type CaseFactory struct {
	stages      []string
	constructed int

	// ConstructErr, when set, is returned by NewCase instead of a case.
	ConstructErr error
}

// NewCaseFactory creates a factory whose cases execute the given stages in
// order.
func NewCaseFactory(stages ...string) *CaseFactory {
	return &CaseFactory{stages: stages}
}

// Stages returns the ordered stage list.
func (f *CaseFactory) Stages() []string {
	return f.stages
}

// NewCase builds a fresh StageCase tagged with a new uuid.
func (f *CaseFactory) NewCase(paramFactories interface{}) (interface{}, error) {
	if f.ConstructErr != nil {
		return nil, f.ConstructErr
	}
	f.constructed++
	return &StageCase{
		ID:             uuid.NewString(),
		Stages:         append([]string(nil), f.stages...),
		ParamFactories: paramFactories,
	}, nil
}

// Constructed returns how many cases this factory has built.
func (f *CaseFactory) Constructed() int {
	return f.constructed
}
