// Package matrix expands declarative "test bunches" into the full concrete
// test matrix for multi-stage training integration suites, and decides when a
// multi-stage case object holding expensive intermediate artifacts can be
// reused across stages.
//
// # Core Concepts
//
// A test bunch is a declarative parameter group whose model_name and
// dataset_name fields may hold a single value or a list of values. The Helper
// engine expands every bunch into one record per model × dataset × stage
// combination, assigns each a stable human-readable id, and exposes the
// result as the (argnames, argvalues, ids) triple a data-driven test
// parametrization mechanism expects.
//
// The stage list comes from the CaseFactory collaborator: a multi-stage test
// case class declares its ordered stages (for example train, eval, export)
// and knows how to construct a fresh case instance from a set of action
// parameter factories. The Helper keeps a single-slot cache keyed by the
// "case identity" projection of the last requested record, so consecutive
// stage requests for the same model/dataset/training configuration share one
// case instance, and its trained artifacts, without rebuilding.
//
// # Usage
//
// Build a Helper from a ParameterSource (hand-written, a StaticSource, or a
// YAML BunchFile loaded via BunchLoader) plus the suite's CaseFactory:
//
//	helper, err := matrix.NewHelper(source, factory)
//	if err != nil { ... }
//	names, values, ids, err := helper.ExpandMatrix("precommit")
//
// Each test body then calls GetCase with its own parameter record; the helper
// reuses the cached case when the identity keys have not changed since the
// previous call.
//
// The engine is single-threaded by design: the cache is not synchronized and
// correctness of reuse depends on identity keys arriving in the order the
// matrix enumerated them.
package matrix
