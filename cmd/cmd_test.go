package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/tagger/internal/config"
	"github.com/pders01/tagger/internal/testutil"
)

// testEnv is a command wired to buffers and an in-memory file system
type testEnv struct {
	cmd    *cobra.Command
	out    *bytes.Buffer
	errOut *bytes.Buffer
	tree   *testutil.TempTree
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("LC_ALL", "en_US.UTF-8")

	oldFs, oldCfgFile := appFs, cfgFile
	appFs = afero.NewMemMapFs()
	cfgFile = ""
	t.Cleanup(func() {
		appFs, cfgFile = oldFs, oldCfgFile
		viper.Reset()
	})

	viper.Reset()
	viper.SetFs(appFs)
	config.SetDefaults(viper.GetViper())

	env := &testEnv{
		cmd:    &cobra.Command{},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		tree:   testutil.NewTempTree(t, appFs),
	}
	env.cmd.SetOut(env.out)
	env.cmd.SetErr(env.errOut)

	return env
}
