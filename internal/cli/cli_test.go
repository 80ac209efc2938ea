package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
	"github.com/MrSnakeDoc/linkhub/internal/version"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	// Flag variables outlive a single Execute.
	directoryFile = ""
	searchCategory = domain.CategoryAll
	searchHashtags = 3
	searchJSON = false

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchCmd(t *testing.T) {
	out, _, err := execute(t, "search", "aadhaar")
	require.NoError(t, err)

	assert.Contains(t, out, "UIDAI ([Aadhaar])")
	assert.Contains(t, out, "link [Aadhaar] with PAN")
	assert.Contains(t, out, "#aadhaarupdate #downloadaadhaar #uid")
	assert.Contains(t, out, "2 link(s) in All")
	assert.Less(t, strings.Index(out, "Income Tax"), strings.Index(out, "UIDAI"), "authored order is kept")
}

func TestSearchCmdCategory(t *testing.T) {
	out, _, err := execute(t, "search", "aadhaar", "-c", "Identity")
	require.NoError(t, err)
	assert.Contains(t, out, "UIDAI ([Aadhaar])")
	assert.NotContains(t, out, "Income Tax")
	assert.Contains(t, out, "1 link(s) in Identity")

	out, _, err = execute(t, "search", "--category", "Identity")
	require.NoError(t, err)
	assert.Contains(t, out, "3 link(s) in Identity")
}

func TestSearchCmdNoMatch(t *testing.T) {
	out, _, err := execute(t, "search", "zzz-no-such-term")
	require.NoError(t, err)
	assert.Equal(t, "No links match your search.\n", out)
}

func TestSearchCmdJSON(t *testing.T) {
	out, _, err := execute(t, "search", "gst verify", "--json")
	require.NoError(t, err)

	var got []domain.Link
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "GST Portal", got[0].Title)
	assert.Equal(t, "https://www.gst.gov.in", got[0].URL)
}

func TestSearchCmdTooManyArgs(t *testing.T) {
	_, _, err := execute(t, "search", "gst", "portal")
	assert.Error(t, err)
}

func TestCategoriesCmd(t *testing.T) {
	out, _, err := execute(t, "categories")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"All", "Agriculture", "Digital Services", "Education",
		"Employment", "Identity", "Tax & Business", "Transport",
	}, lines)
}

func TestFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.yaml")
	data := `links:
  - id: a
    title: eSanjeevani
    url: https://esanjeevani.mohfw.gov.in
    category: Health
    keywords: [telemedicine]
  - id: b
    title: Broken
    url: not a url
    category: Health
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	out, errOut, err := execute(t, "categories", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "All\nHealth\n", out)
	assert.Contains(t, errOut, "warning: skipping invalid entry")

	out, _, err = execute(t, "search", "TELE", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "eSanjeevani")
	assert.Contains(t, out, "#telemedicine")

	_, _, err = execute(t, "categories", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	originalVersion := version.Version
	version.Version = "test-version-1.0.0"
	defer func() { version.Version = originalVersion }()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "linkhub test-version-1.0.0")
}

func TestRenderSegments(t *testing.T) {
	assert.Equal(t, "[GST] Portal", renderSegments(domain.Highlight("GST Portal", "gst")))
	assert.Equal(t, "GST Portal", renderSegments(domain.Highlight("GST Portal", "")))
	assert.Equal(t, "", renderSegments(domain.Highlight("", "gst")))
}
