package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/speakeasy-api/recentfile/internal/recent"
	"github.com/speakeasy-api/recentfile/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func resolutions() []*recent.Resolution {
	return []*recent.Resolution{
		{
			Path:        "a.txt",
			Source:      recent.SourceBase,
			Reason:      recent.ReasonIdentical,
			ContentHash: "3b18e512dba79e4c8300dd08aeb37f8e728b8dad",
			Content:     []byte("hello\n"),
		},
		{
			Path:        "b|c.txt",
			Source:      recent.SourceHead,
			Reason:      recent.ReasonChangedInHead,
			ContentHash: "456",
			ForkPoint:   "fork-point-sha",
			Content:     []byte("world\n"),
		},
	}
}

type decoded struct {
	Path        string `json:"path" yaml:"path"`
	Source      string `json:"source" yaml:"source"`
	Reason      string `json:"reason" yaml:"reason"`
	ContentHash string `json:"contentHash" yaml:"contentHash"`
	ForkPoint   string `json:"forkPoint" yaml:"forkPoint"`
	Size        int    `json:"size" yaml:"size"`
	Content     string `json:"content" yaml:"content"`
}

func TestRender_Raw(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, report.FormatRaw, resolutions()[:1]))
	assert.Equal(t, "hello\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, report.FormatJSON, resolutions()))

	var out []decoded
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)

	assert.Equal(t, decoded{
		Path:        "b|c.txt",
		Source:      "head",
		Reason:      "changed-in-head",
		ContentHash: "456",
		ForkPoint:   "fork-point-sha",
		Size:        6,
		Content:     "world\n",
	}, out[1])
	assert.Empty(t, out[0].ForkPoint)
}

func TestRender_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, report.FormatYAML, resolutions()))

	var out []decoded
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "a.txt", out[0].Path)
	assert.Equal(t, "base", out[0].Source)
	assert.Equal(t, "hello\n", out[0].Content)
}

func TestRender_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, report.FormatText, resolutions()))

	out := buf.String()
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "(identical) 3b18e512dba7 6 B")
	assert.Contains(t, out, "fork-point fork-point-s")
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := report.Render(&bytes.Buffer{}, report.Format("xml"), resolutions())
	assert.EqualError(t, err, `unknown output format "xml" (available options: [raw, text, yaml, json])`)
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	expected := "" +
		"| Path       | Source | Reason          | Content hash | Fork point   | Size |\n" +
		"| ---------- | ------ | --------------- | ------------ | ------------ | ---- |\n" +
		"| `a.txt`    | base   | identical       | 3b18e512dba7 |              | 6 B  |\n" +
		"| `b\\|c.txt` | head   | changed-in-head | 456          | fork-point-s | 6 B  |"

	assert.Equal(t, expected, report.Markdown(resolutions()))
}
