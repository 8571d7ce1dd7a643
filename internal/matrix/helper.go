package matrix

import (
	"fmt"
	"strings"
)

// ArgName is the single parameter name the expanded matrix is bound to in a
// data-driven test declaration.
const ArgName = "test_parameters"

// requiredIDNamingKeys must all be present in a source's id naming map.
var requiredIDNamingKeys = []string{KeyTestStage, KeyModelName, KeyDatasetName, KeyUsecase}

// Helper is the engine turning declarative test bunches into the concrete
// (model × dataset × stage) test matrix, and deciding when a multi-stage case
// object can be reused across stages versus when a new one must be built.
//
// A helper validates its ParameterSource once, at construction, and keeps deep
// copies of everything it read; a constructed helper is immune to later
// mutation of the source. The case-reuse cache holds exactly one entry, so
// reuse is last-key-only: callers are expected to request cases in the order
// ExpandMatrix enumerated them, with stage-adjacent requests for the same
// identity key arriving consecutively.
type Helper struct {
	caseFactory CaseFactory

	bunches      []TestBunch
	idNaming     []IDNamingEntry
	identityKeys []string
	defaults     map[string]interface{}

	cache  *caseCache
	logger Logger
}

// NewHelper creates a helper from the given parameter source and case
// factory, with logging disabled. It returns a *ConfigurationError if any
// structural invariant of the source's output is violated.
func NewHelper(source ParameterSource, factory CaseFactory) (*Helper, error) {
	return NewHelperWithLogger(source, factory, NewSilentLogger(false, false))
}

// NewHelperWithLogger creates a helper that reports cache and expansion
// activity through the given logger.
func NewHelperWithLogger(source ParameterSource, factory CaseFactory, logger Logger) (*Helper, error) {
	if source == nil {
		return nil, newConfigurationError("parameter source is nil")
	}
	if factory == nil {
		return nil, newConfigurationError("case factory is nil")
	}
	if logger == nil {
		logger = NewSilentLogger(false, false)
	}

	h := &Helper{
		caseFactory:  factory,
		idNaming:     append([]IDNamingEntry(nil), source.IDNaming()...),
		identityKeys: append([]string(nil), source.CaseIdentityKeys()...),
		defaults:     deepCopyMap(source.DefaultValues()),
		cache:        newCaseCache(logger),
		logger:       logger,
	}

	for _, b := range source.TestBunches() {
		h.bunches = append(h.bunches, deepCopyBunch(b))
	}

	if err := h.validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// validate enforces the structural contract on the copied source output.
func (h *Helper) validate() error {
	seen := make(map[string]bool, len(h.idNaming))
	for i, entry := range h.idNaming {
		if entry.Key == "" {
			return newConfigurationError("id naming entry %d has an empty key", i)
		}
		if entry.Short == "" {
			return newConfigurationError("id naming entry %d (%q) has an empty short name", i, entry.Key)
		}
		if seen[entry.Key] {
			return newConfigurationError("id naming key %q appears more than once", entry.Key)
		}
		seen[entry.Key] = true
	}
	for _, required := range requiredIDNamingKeys {
		if !seen[required] {
			return newConfigurationError("id naming map is missing required key %q", required)
		}
	}

	for i, key := range h.identityKeys {
		if key == "" {
			return newConfigurationError("case identity key %d is empty", i)
		}
	}

	for key := range h.defaults {
		if key == "" {
			return newConfigurationError("default values contain an empty parameter name")
		}
	}

	return nil
}

// Stages returns the ordered stage list declared by the case factory.
func (h *Helper) Stages() []string {
	return h.caseFactory.Stages()
}

// ExpandMatrix expands the test bunches into the full concrete test matrix.
// It returns the fixed one-element argument-name list ([ArgName]), the list of
// expanded parameter records, and the parallel list of generated test ids.
//
// If usecase is non-empty, bunches whose usecase field differs are skipped
// entirely. Output order is fully deterministic: bunch declaration order, then
// model-major model×dataset order, then the factory's stage order. The
// operation is pure; it never touches the case cache, and repeated calls yield
// identical output.
func (h *Helper) ExpandMatrix(usecase string) ([]string, []TestParameters, []string, error) {
	argNames := []string{ArgName}
	var argValues []TestParameters
	var ids []string

	for i, bunch := range h.bunches {
		if bunch == nil {
			return nil, nil, nil, newExpansionError(i, "bunch is not a mapping")
		}

		if usecase != "" {
			bunchUsecase, _ := bunch[KeyUsecase].(string)
			if bunchUsecase != usecase {
				continue
			}
		}

		modelNames, err := normalizeNameList(i, KeyModelName, bunch[KeyModelName])
		if err != nil {
			return nil, nil, nil, err
		}
		datasetNames, err := normalizeNameList(i, KeyDatasetName, bunch[KeyDatasetName])
		if err != nil {
			return nil, nil, nil, err
		}

		for _, model := range modelNames {
			for _, dataset := range datasetNames {
				for _, stage := range h.caseFactory.Stages() {
					params := deepCopyBunch(bunch)
					params[KeyTestStage] = stage
					params[KeyModelName] = model
					params[KeyDatasetName] = dataset
					record := TestParameters(params)
					h.fillDefaultValues(record)
					argValues = append(argValues, record)
					ids = append(ids, h.generateTestID(record))
				}
			}
		}
	}

	h.logger.Debug("matrix: expanded %d bunches into %d records (usecase filter %q)\n",
		len(h.bunches), len(argValues), usecase)
	return argNames, argValues, ids, nil
}

// GetCase returns the case object backing the given parameter record. If the
// record's identity-key projection equals the one that produced the currently
// cached case, that case is returned unchanged so intermediate artifacts
// survive across stages. Otherwise a new case is built via the case factory
// and replaces the cache entry.
//
// A construction error is returned verbatim and leaves the previous cache
// entry untouched.
func (h *Helper) GetCase(params TestParameters, paramFactories interface{}) (interface{}, error) {
	identity := make(TestParameters, len(h.identityKeys))
	for _, key := range h.identityKeys {
		identity[key] = params[key]
	}

	if h.cache.hasSameParams(identity) {
		h.logger.Info("helper: case parameters unchanged, reusing cached case\n")
		return h.cache.get(), nil
	}

	h.logger.Info("helper: case parameters changed, building a new case\n")
	testCase, err := h.caseFactory.NewCase(paramFactories)
	if err != nil {
		return nil, err
	}
	h.cache.set(identity, testCase)
	return testCase, nil
}

// fillDefaultValues applies the source defaults to any field that is missing,
// nil, or holds the UnsetValue placeholder.
func (h *Helper) fillDefaultValues(params TestParameters) {
	for key, defaultValue := range h.defaults {
		val, ok := params[key]
		if !ok || val == nil || val == UnsetValue {
			params[key] = deepCopyValue(defaultValue)
		}
	}
}

// generateTestID derives the stable human-readable id for one expanded
// record: short-value pairs in id naming order, joined by commas.
func (h *Helper) generateTestID(params TestParameters) string {
	parts := make([]string, 0, len(h.idNaming))
	for _, entry := range h.idNaming {
		parts = append(parts, fmt.Sprintf("%s-%v", entry.Short, params[entry.Key]))
	}
	return strings.Join(parts, ",")
}

// normalizeNameList wraps a scalar model/dataset field as a one-element list
// and flattens list-typed fields to strings. A missing field or an empty list
// cannot be expanded and aborts the whole matrix.
func normalizeNameList(bunch int, key string, value interface{}) ([]string, error) {
	var out []string
	switch tv := value.(type) {
	case nil:
		return nil, newExpansionError(bunch, "field %q is missing", key)
	case string:
		out = []string{tv}
	case []string:
		out = append(out, tv...)
	case []interface{}:
		for j, el := range tv {
			s, ok := el.(string)
			if !ok {
				return nil, newExpansionError(bunch, "field %q element %d is %T, want string", key, j, el)
			}
			out = append(out, s)
		}
	default:
		return nil, newExpansionError(bunch, "field %q is %T, want string or list of strings", key, value)
	}
	if len(out) == 0 {
		return nil, newExpansionError(bunch, "field %q expands to an empty list", key)
	}
	return out, nil
}
