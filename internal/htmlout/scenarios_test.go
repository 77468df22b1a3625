package htmlout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/mcudoc/refdoc/internal/docast"
)

// scenarioFixture is one concrete end-to-end rendering scenario, authored as
// a YAML golden fixture under testdata/scenarios and decoded with yaml.v2.
type scenarioFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Contains    []string `yaml:"contains"`
	NotContains []string `yaml:"not_contains"`
}

// scenarioBuilders maps a fixture's name to the AST it exercises. Only the
// scenarios whose input is practical to construct directly from docast
// nodes live here; the table/continuation/register scenarios are covered by
// internal/table and internal/normalize's own fixtures instead, and the
// rotated-header scenario has no test.
var scenarioBuilders = map[string]func() *docast.Node{
	"single_paragraph": buildSingleParagraphScenario,
	"bulleted_list":    buildBulletedListScenario,
}

func buildSingleParagraphScenario() *docast.Node {
	document := docast.NewNode(docast.KindDocument)
	para := docast.NewNode(docast.KindPara)
	text := docast.NewNode(docast.KindText)
	line := charLineOf("Hello World.", false)
	lineNode := docast.NewNode(docast.KindLine)
	lineNode.Obj = &line
	text.Append(lineNode)
	para.Append(text)
	document.Append(para)
	return document
}

func buildBulletedListScenario() *docast.Node {
	document := docast.NewNode(docast.KindDocument)
	list := docast.NewNode(docast.KindListB)

	itemA := docast.NewNode(docast.KindElement)
	itemA.Append(textOf("A"))

	nested := docast.NewNode(docast.KindListB)
	itemB := docast.NewNode(docast.KindElement)
	itemB.Append(textOf("B"))
	nested.Append(itemB)
	itemA.Append(nested)

	itemC := docast.NewNode(docast.KindElement)
	itemC.Append(textOf("C"))

	list.Append(itemA)
	list.Append(itemC)
	document.Append(list)
	return document
}

func textOf(s string) *docast.Node {
	text := docast.NewNode(docast.KindText)
	line := charLineOf(s, false)
	lineNode := docast.NewNode(docast.KindLine)
	lineNode.Obj = &line
	text.Append(lineNode)
	return text
}

func TestScenarioFixturesRenderExpectedHTML(t *testing.T) {
	entries, err := os.ReadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, entries, "expected at least one scenario fixture")

	for _, entry := range entries {
		entry := entry
		t.Run(entry.Name(), func(t *testing.T) {
			raw, err := os.ReadFile(filepath.Join("testdata/scenarios", entry.Name()))
			require.NoError(t, err)

			var fixture scenarioFixture
			require.NoError(t, yaml.Unmarshal(raw, &fixture))

			build, ok := scenarioBuilders[fixture.Name]
			require.True(t, ok, "no builder registered for scenario %q", fixture.Name)

			document := build()
			out := renderToString(t, FormatDocument(document, "../style.css"))

			for _, want := range fixture.Contains {
				require.True(t, strings.Contains(out, want), "scenario %q: output missing %q\n%s", fixture.Name, want, out)
			}
			for _, unwanted := range fixture.NotContains {
				require.False(t, strings.Contains(out, unwanted), "scenario %q: output unexpectedly contains %q\n%s", fixture.Name, unwanted, out)
			}
		})
	}
}
