package matrix

// Default training-parameter keys beyond the required four.
const (
	KeyNumTrainingIters = "num_training_iters"
	KeyBatchSize        = "batch_size"
)

// DefaultIDNaming returns the conventional id naming map for training test
// suites: stage first, then model, dataset, iteration count, batch size and
// usecase.
func DefaultIDNaming() []IDNamingEntry {
	return []IDNamingEntry{
		{Key: KeyTestStage, Short: "ACTION"},
		{Key: KeyModelName, Short: "model"},
		{Key: KeyDatasetName, Short: "dataset"},
		{Key: KeyNumTrainingIters, Short: "num_iters"},
		{Key: KeyBatchSize, Short: "batch"},
		{Key: KeyUsecase, Short: "usecase"},
	}
}

// DefaultIdentityKeys returns the parameters that conventionally define case
// identity: everything that changes the trained artifact, but not the stage.
func DefaultIdentityKeys() []string {
	return []string{KeyModelName, KeyDatasetName, KeyNumTrainingIters, KeyBatchSize}
}

// DefaultValues returns the conventional shortened-run defaults.
func DefaultValues() map[string]interface{} {
	return map[string]interface{}{
		KeyNumTrainingIters: 1,
		KeyBatchSize:        2,
	}
}

// StaticSource is a ParameterSource built from plain values. The zero value is
// not useful; use NewDefaultSource or fill all four fields.
type StaticSource struct {
	Bunches  []TestBunch
	Naming   []IDNamingEntry
	Identity []string
	Defaults map[string]interface{}
}

// NewDefaultSource wraps the given bunches with the conventional id naming,
// identity keys and default values.
func NewDefaultSource(bunches []TestBunch) *StaticSource {
	return &StaticSource{
		Bunches:  bunches,
		Naming:   DefaultIDNaming(),
		Identity: DefaultIdentityKeys(),
		Defaults: DefaultValues(),
	}
}

func (s *StaticSource) TestBunches() []TestBunch { return s.Bunches }

func (s *StaticSource) IDNaming() []IDNamingEntry { return s.Naming }

func (s *StaticSource) CaseIdentityKeys() []string { return s.Identity }

func (s *StaticSource) DefaultValues() map[string]interface{} { return s.Defaults }
