package provisioner

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"selenite.systems/groundwork/internal/steps"
)

func TestPlan(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)
	rig := newTestRig(t, c)

	pl, err := rig.p.Plan(ctx)
	require.NoError(t, err)
	require.NoError(t, pl.Validate())

	wantKinds := []steps.Kind{
		steps.KindInstallPackages,
		steps.KindCloneRepo,
		steps.KindEnterDir,
		steps.KindWriteEnv,
		steps.KindAwaitToken,
		steps.KindCreateEnv,
		steps.KindInstallDeps,
		steps.KindInstallUnit,
		steps.KindReloadUnits,
		steps.KindEnableService,
		steps.KindStartService,
	}
	require.Equal(t, len(wantKinds), pl.Size())
	for i, s := range pl.Steps() {
		assert.Equal(t, wantKinds[i], s.Todo, "step %v", i)
	}

	assert.Equal(t, c.RepoURL, pl.Steps()[1].Target)
	assert.Equal(t, c.InstallDir, pl.Steps()[2].Target)
	assert.Equal(t, c.EnvFilePath(), pl.Steps()[3].Target)
	assert.Equal(t, c.ServiceName, pl.Steps()[10].Target)

	// a fresh host has no env file, so the plan carries a pure insert
	assert.NotEmpty(t, pl.Steps()[3].DiffContent)

	assert.Contains(t, pl.Pretty(), "clone-repo")

	raw, err := pl.ToJson()
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, pl.Size())
	assert.Equal(t, "clone-repo", decoded[1]["todo"])
}

func TestPlanSave(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)
	rig := newTestRig(t, c)

	pl, err := rig.p.Plan(ctx)
	require.NoError(t, err)
	require.NoError(t, rig.p.SavePlan(pl, "plan.toml"))
}
