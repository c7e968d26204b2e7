package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/codelearn/internal/auth"
	"github.com/p-n-ai/codelearn/internal/content"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEARN_CONTENT_PATH", "")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidate_Embedded(t *testing.T) {
	catalog, err := content.LoadEmbedded()
	require.NoError(t, err)

	out, err := runCmd(t, "validate")
	require.NoError(t, err)

	want := fmt.Sprintf("ok: %d topics, %d lessons, %d exercises (digest %s)\n",
		len(catalog.Topics()), len(catalog.Lessons()), len(catalog.Exercises()), catalog.Digest())
	assert.Equal(t, want, out)
}

func TestValidate_BadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("lessons:\n  - id: orphan\n    topic_id: nowhere\n"), 0o644))

	_, err := runCmd(t, "validate", "--content", dir)
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	out, err := runCmd(t, "stats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "TOPIC"))

	catalog, err := content.LoadEmbedded()
	require.NoError(t, err)
	assert.Len(t, lines, len(catalog.Topics())+1)
	assert.Contains(t, out, "python")
}

func TestCollectStats(t *testing.T) {
	catalog, err := content.LoadEmbedded()
	require.NoError(t, err)

	lessons, exercises := 0, 0
	for _, s := range collectStats(catalog) {
		lessons += s.Lessons
		for _, n := range s.Exercises {
			exercises += n
		}
		if s.Lessons > 0 {
			assert.Positive(t, s.Minutes, "topic %s", s.Topic.ID)
		}
	}
	assert.Equal(t, len(catalog.Lessons()), lessons)
	assert.Equal(t, len(catalog.Exercises()), exercises)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := runCmd(t, "export", "--out", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Topics", "Lessons", "Exercises"}, f.GetSheetList())
}

func TestExport_EmptyOut(t *testing.T) {
	_, err := runCmd(t, "export", "--out", "")
	assert.ErrorContains(t, err, "--out is required")
}

func TestToken(t *testing.T) {
	t.Setenv("LEARN_AUTH_JWT_SECRET", "cli-secret")

	out, err := runCmd(t, "token", "learner-7", "--ttl", "1h")
	require.NoError(t, err)

	issuer, err := auth.NewIssuer("cli-secret", time.Hour)
	require.NoError(t, err)
	userID, err := issuer.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "learner-7", userID)
}

func TestToken_RequiresUser(t *testing.T) {
	_, err := runCmd(t, "token")
	assert.Error(t, err)
}
