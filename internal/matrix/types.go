package matrix

// UnsetValue is the distinguished placeholder a bunch may carry in place of a
// real value. Fields holding it are replaced by the source's default during
// expansion, the same as fields that are missing entirely.
const UnsetValue = "unset"

// Well-known parameter keys. Every id naming map must cover at least these
// four; expansion overwrites the first three on every generated record.
const (
	KeyTestStage   = "test_stage"
	KeyModelName   = "model_name"
	KeyDatasetName = "dataset_name"
	KeyUsecase     = "usecase"
)

// TestBunch is one declarative parameter group describing a family of test
// combinations. The model_name and dataset_name fields may each hold a single
// value or a list of values ("expand over all of these"); usecase is a plain
// filter tag; any other keys are passed through verbatim into every expanded
// record.
type TestBunch map[string]interface{}

// TestParameters is one fully expanded, concrete parameter record: exactly one
// (model, dataset, stage) triple drawn from one bunch, plus pass-through
// fields, plus defaults filled in.
type TestParameters map[string]interface{}

// IDNamingEntry pairs a parameter key with the short display name used for it
// in generated test ids. The order of entries fixes the id layout.
type IDNamingEntry struct {
	// Key is the parameter name in the expanded record.
	Key string `yaml:"key"`
	// Short is the display name used in the generated id.
	Short string `yaml:"short"`
}

// ParameterSource provides the raw configuration for building a test matrix.
// It is consulted exactly once, at Helper construction, and its return values
// are deep-copied into the helper's own state, so later mutation of the source
// cannot affect an already-constructed helper.
type ParameterSource interface {
	// TestBunches returns the ordered list of declarative test bunches.
	TestBunches() []TestBunch
	// IDNaming returns the ordered key/short-name pairs used to generate
	// test ids. It must cover at least test_stage, model_name,
	// dataset_name and usecase.
	IDNaming() []IDNamingEntry
	// CaseIdentityKeys returns the parameter names that decide whether two
	// records share one underlying case object. Stage is deliberately not
	// one of them.
	CaseIdentityKeys() []string
	// DefaultValues returns per-parameter defaults applied to any record
	// whose field is missing, nil, or holds UnsetValue.
	DefaultValues() map[string]interface{}
}

// CaseFactory is the contract a multi-stage test case class must satisfy. The
// engine queries the ordered stage list during matrix expansion and constructs
// case instances on demand; beyond these two capabilities the case object is
// opaque to the engine.
type CaseFactory interface {
	// Stages returns the ordered list of stage names a case executes.
	Stages() []string
	// NewCase builds a fresh case instance. The action parameter factories
	// value is passed through unchanged; factories rather than structs so
	// expensive parameters are only materialized when a case is actually
	// built.
	NewCase(paramFactories interface{}) (interface{}, error)
}

// Logger provides the observability hook for the engine. Implementations must
// be safe to call from the single goroutine driving the helper.
type Logger interface {
	// Debug logs debug-level messages (only shown when debug=true)
	Debug(format string, args ...interface{})
	// Info logs info-level messages (shown when verbose=true or debug=true)
	Info(format string, args ...interface{})
	// Error logs error-level messages (always shown)
	Error(format string, args ...interface{})
	// IsDebugEnabled returns whether debug logging is enabled
	IsDebugEnabled() bool
	// IsVerboseEnabled returns whether verbose logging is enabled
	IsVerboseEnabled() bool
}
