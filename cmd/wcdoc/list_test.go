package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/wcdoc"
	"github.com/fwojciec/wcdoc/build"
	main "github.com/fwojciec/wcdoc/cmd/wcdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDeps(records []wcdoc.Record, stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Builder: &build.Builder{
			Source:     testSource(records, nil),
			Classifier: wcdoc.NewClassifier(wcdoc.DefaultExtensionRules()...),
		},
	}
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists entities with main path and extra families", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := (&main.ListCmd{}).Run(listDeps(testRecords(), stdout, stderr))

		require.NoError(t, err)
		assert.Equal(t,
			"element  ons-button  core/src/elements/ons-button.js  +angular1,vue\n"+
				"object  ons.notification  core/src/ons/notification.js\n",
			stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("filters by kind", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := (&main.ListCmd{Kind: "object"}).Run(listDeps(testRecords(), stdout, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Equal(t, "object  ons.notification  core/src/ons/notification.js\n", stdout.String())
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		err := (&main.ListCmd{Kind: "attribute"}).Run(listDeps(testRecords(), &bytes.Buffer{}, stderr))

		assert.Equal(t, wcdoc.EINVALID, wcdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), `unknown kind "attribute"`)
	})

	t.Run("shows message when no entities exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := (&main.ListCmd{}).Run(listDeps(nil, stdout, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No entities found.")
	})

	t.Run("returns load error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := listDeps(nil, &bytes.Buffer{}, stderr)
		deps.Builder.Source = testSource(nil, wcdoc.Errorf(wcdoc.ENOTFOUND, "records file %q not found", "x.json"))

		err := (&main.ListCmd{}).Run(deps)

		assert.Equal(t, wcdoc.ENOTFOUND, wcdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), `records file "x.json" not found`)
	})
}
