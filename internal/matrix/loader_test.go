package matrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBunchFile writes a YAML bunch file into dir and returns its path.
func writeBunchFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const detectionBunchYAML = `name: object-detection
description: Detection precommit and nightly bunches
bunches:
  - model_name:
      - mobilenet_ssd
      - mobilenet_atss
    dataset_name: coco_shortened
    usecase: precommit
  - model_name: resnet_vfnet
    dataset_name:
      - coco_shortened
      - voc_small
    usecase: nightly
    num_training_iters: 100
stages:
  - train
  - eval
  - export
`

func TestLoadFile(t *testing.T) {
	path := writeBunchFile(t, t.TempDir(), "detection.yaml", detectionBunchYAML)

	loader := NewBunchLoader(false)
	file, err := loader.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "object-detection", file.Name)
	require.Len(t, file.Bunches, 2)
	assert.Equal(t, "precommit", file.Bunches[0][KeyUsecase])
	assert.Equal(t, []string{"train", "eval", "export"}, file.StageList())

	// Omitted sections fall back to the conventional defaults.
	assert.Equal(t, DefaultIDNaming(), file.IDNaming())
	assert.Equal(t, DefaultIdentityKeys(), file.CaseIdentityKeys())
	assert.Equal(t, DefaultValues(), file.DefaultValues())
}

func TestLoadFileOverrides(t *testing.T) {
	content := `name: segmentation
bunches:
  - model_name: unet
    dataset_name: cityscapes_small
    usecase: nightly
id_naming:
  - key: test_stage
    short: STAGE
  - key: model_name
    short: model
  - key: dataset_name
    short: data
  - key: usecase
    short: usecase
identity_keys:
  - model_name
  - dataset_name
defaults:
  batch_size: 8
stages:
  - train
`
	path := writeBunchFile(t, t.TempDir(), "segmentation.yaml", content)

	file, err := NewBunchLoader(false).LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []IDNamingEntry{
		{Key: KeyTestStage, Short: "STAGE"},
		{Key: KeyModelName, Short: "model"},
		{Key: KeyDatasetName, Short: "data"},
		{Key: KeyUsecase, Short: "usecase"},
	}, file.IDNaming())
	assert.Equal(t, []string{KeyModelName, KeyDatasetName}, file.CaseIdentityKeys())
	assert.Equal(t, map[string]interface{}{KeyBatchSize: 8}, file.DefaultValues())
	assert.Equal(t, []string{"train"}, file.StageList())
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeBunchFile(t, dir, "a.yaml", detectionBunchYAML)
	writeBunchFile(t, dir, "b.yml", `name: classification
bunches:
  - model_name: efficientnet
    dataset_name: imagenette
    usecase: precommit
`)
	// Non-YAML files are ignored.
	writeBunchFile(t, dir, "README.md", "not yaml")

	files, err := NewBunchLoader(false).Load(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := NewBunchLoader(false).Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "bunches:\n  - model_name: m\n    dataset_name: d\n",
			wantErr: "name is required",
		},
		{
			name:    "no bunches",
			content: "name: empty\n",
			wantErr: "at least one bunch",
		},
		{
			name:    "bunch missing model_name",
			content: "name: x\nbunches:\n  - dataset_name: d\n",
			wantErr: "model_name is required",
		},
		{
			name:    "bunch missing dataset_name",
			content: "name: x\nbunches:\n  - model_name: m\n",
			wantErr: "dataset_name is required",
		},
		{
			name:    "empty stage name",
			content: "name: x\nbunches:\n  - model_name: m\n    dataset_name: d\nstages:\n  - train\n  - \"\"\n",
			wantErr: "name must not be empty",
		},
		{
			name:    "malformed yaml",
			content: "name: [unclosed\n",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBunchFile(t, t.TempDir(), "bad.yaml", tt.content)
			_, err := NewBunchLoader(false).LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBunchFileAsParameterSource(t *testing.T) {
	path := writeBunchFile(t, t.TempDir(), "detection.yaml", detectionBunchYAML)
	file, err := NewBunchLoader(false).LoadFile(path)
	require.NoError(t, err)

	factory := &fakeFactory{stages: file.StageList()}
	helper, err := NewHelper(file, factory)
	require.NoError(t, err)

	_, values, ids, err := helper.ExpandMatrix("precommit")
	require.NoError(t, err)

	// 2 models × 1 dataset × 3 stages.
	assert.Len(t, values, 6)
	assert.Equal(t,
		"ACTION-train,model-mobilenet_ssd,dataset-coco_shortened,num_iters-1,batch-2,usecase-precommit",
		ids[0])
}

func TestFilterByUsecase(t *testing.T) {
	files := []*BunchFile{
		{
			Name:    "a",
			Bunches: []TestBunch{{KeyUsecase: "precommit"}},
		},
		{
			Name:    "b",
			Bunches: []TestBunch{{KeyUsecase: "nightly"}},
		},
		{
			Name:    "c",
			Bunches: []TestBunch{{KeyUsecase: "precommit"}, {KeyUsecase: "nightly"}},
		},
	}

	assert.Len(t, FilterByUsecase(files, ""), 3)

	precommit := FilterByUsecase(files, "precommit")
	require.Len(t, precommit, 2)
	assert.Equal(t, "a", precommit[0].Name)
	assert.Equal(t, "c", precommit[1].Name)
}
