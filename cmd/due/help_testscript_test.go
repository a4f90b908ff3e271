package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/duecli/due/internal/testsupport"
)

func TestHelpScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/help",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
