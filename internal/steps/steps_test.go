package steps

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStage(t *testing.T) {
	assert.Equal(t, 1, KindInstallPackages.Stage())
	assert.Equal(t, 2, KindCloneRepo.Stage())
	assert.Equal(t, 5, KindAwaitToken.Stage())
	assert.Equal(t, 8, KindInstallUnit.Stage())
	assert.Equal(t, 8, KindReloadUnits.Stage())
	assert.Equal(t, 8, KindEnableService.Stage())
	assert.Equal(t, 8, KindStartService.Stage())
	assert.Equal(t, 0, KindUnknown.Stage())
}

func TestFailureKind(t *testing.T) {
	cases := map[Kind]error{
		KindInstallPackages: ErrDependencyInstall,
		KindInstallDeps:     ErrDependencyInstall,
		KindCloneRepo:       ErrSourceFetch,
		KindEnterDir:        ErrPath,
		KindCreateEnv:       ErrEnvironmentCreation,
		KindInstallUnit:     ErrServiceRegistration,
		KindReloadUnits:     ErrServiceRegistration,
		KindEnableService:   ErrServiceRegistration,
		KindStartService:    ErrServiceRegistration,
		KindWriteEnv:        nil,
		KindAwaitToken:      nil,
	}
	for k, want := range cases {
		assert.Equal(t, want, k.FailureKind(), "kind %v", k)
	}
}

func TestStepValidate(t *testing.T) {
	assert.Error(t, Step{}.Validate())
	assert.NoError(t, Step{Todo: KindCloneRepo, Target: "https://example.test/r.git"}.Validate())
}

func TestStepJSON(t *testing.T) {
	s := Step{Todo: KindCloneRepo, Target: "https://example.test/r.git"}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "clone-repo", decoded["todo"])
	assert.Equal(t, float64(2), decoded["stage"])
	assert.Equal(t, "https://example.test/r.git", decoded["target"])
}

func TestIsServiceStep(t *testing.T) {
	assert.True(t, KindEnableService.IsServiceStep())
	assert.True(t, KindReloadUnits.IsServiceStep())
	assert.False(t, KindCloneRepo.IsServiceStep())
}
