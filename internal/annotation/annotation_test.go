package annotation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
)

// parseUnit parses a document holding a single trans-unit and returns that
// unit's node.
func parseUnit(t *testing.T, unitXML string) *mqxliff.Unit {
	t.Helper()
	content := fmt.Sprintf(`<?xml version="1.0"?>
<xliff xmlns:mq="MQXliff"><file><body>%s</body></file></xliff>`, unitXML)
	doc, err := mqxliff.ParseReader(strings.NewReader(content))
	require.NoError(t, err)
	units := doc.Units()
	require.Len(t, units, 1)
	return units[0]
}

func TestLocate_DirectWarning(t *testing.T) {
	unit := parseUnit(t, `<trans-unit id="5">
		<source>hello</source><target>hallo</target>
		<mq:errorwarning mq:errorcode="03091"/>
	</trans-unit>`)

	found := Locate(unit.Node(), WarningTags)
	require.NotEmpty(t, found)
	assert.Equal(t, "mq:errorwarning", found[0].Name())
	assert.Equal(t, "03091", found[0].Code())
}

func TestLocate_ContainerVariants(t *testing.T) {
	containers := []string{"mq:warnings5", "mq:warnings40", "mq:warnings", "warnings", "warningcontainer"}

	for _, container := range containers {
		t.Run(container, func(t *testing.T) {
			unit := parseUnit(t, fmt.Sprintf(`<trans-unit id="5">
				<source>hello</source><target>hallo</target>
				<%s><mq:errorwarning mq:errorcode="03091"/></%s>
			</trans-unit>`, container, container))

			found := Locate(unit.Node(), WarningTags)
			assert.NotEmpty(t, found, "warnings inside %s should be located", container)
		})
	}
}

func TestLocate_SkipsIgnored(t *testing.T) {
	unit := parseUnit(t, `<trans-unit id="5">
		<source>hello</source><target>hallo</target>
		<mq:errorwarning mq:errorcode="03091" mq:errorwarning-ignored="errorwarning-ignored"/>
	</trans-unit>`)

	assert.Empty(t, Locate(unit.Node(), WarningTags))
}

func TestLocate_BareSpellings(t *testing.T) {
	unit := parseUnit(t, `<trans-unit id="5">
		<source>hello</source><target>hallo</target>
		<errorwarning errorcode="03100"/>
		<warning code="03101"/>
	</trans-unit>`)

	found := Locate(unit.Node(), WarningTags)
	assert.Len(t, found, 2)
}

func TestIsIgnored_Markers(t *testing.T) {
	tests := []struct {
		name    string
		attrs   string
		ignored bool
	}{
		{"no markers", `mq:errorcode="03091"`, false},
		{"ignored flag", `mq:errorwarning-ignored="errorwarning-ignored"`, true},
		{"skip marker", `mq:skipflag="yes"`, true},
		{"handled marker", `handled-by="reviewer"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := parseUnit(t, fmt.Sprintf(`<trans-unit id="1">
				<mq:errorwarning %s/>
			</trans-unit>`, tt.attrs))
			ann := Wrap(mqxliff.FindFirst(unit.Node(), "errorwarning"))
			assert.Equal(t, tt.ignored, ann.IsIgnored())
		})
	}
}

func TestMarkIgnored(t *testing.T) {
	unit := parseUnit(t, `<trans-unit id="1">
		<mq:errorwarning mq:errorcode="03091"/>
	</trans-unit>`)
	ann := Wrap(mqxliff.FindFirst(unit.Node(), "errorwarning"))

	require.False(t, ann.IsIgnored())
	ann.MarkIgnored("operator", "resolved manually")
	assert.True(t, ann.IsIgnored())

	user, ok := ann.AttrContaining("ignore-user")
	require.True(t, ok)
	assert.Equal(t, "operator", user)

	note, ok := ann.AttrContaining("ignore-note")
	require.True(t, ok)
	assert.Equal(t, "resolved manually", note)

	// Marking twice must not change the outcome.
	ann.MarkIgnored("automated", "")
	assert.True(t, ann.IsIgnored())
}

func TestMatchesCode(t *testing.T) {
	unit := parseUnit(t, `<trans-unit id="1">
		<mq:errorwarning mq:errorcode="03091" mq:shorttext="Terminology check"/>
	</trans-unit>`)
	ann := Wrap(mqxliff.FindFirst(unit.Node(), "errorwarning"))

	assert.True(t, ann.MatchesCode([]string{"03091"}))
	assert.True(t, ann.MatchesCode([]string{"terminology"}))
	assert.False(t, ann.MatchesCode([]string{"03100"}))
}

func TestText_FallsBackToChildElements(t *testing.T) {
	unit := parseUnit(t, `<trans-unit id="1">
		<mq:errorwarning><mq:description>Inconsistent with segment 3</mq:description></mq:errorwarning>
	</trans-unit>`)
	ann := Wrap(mqxliff.FindFirst(unit.Node(), "errorwarning"))

	assert.Equal(t, "Inconsistent with segment 3", ann.Text())
}

func TestIgnoreRemaining(t *testing.T) {
	content := `<?xml version="1.0"?>
<xliff xmlns:mq="MQXliff"><file><body>
	<trans-unit id="1">
		<source>a</source><target>b</target>
		<mq:errorwarning mq:errorcode="03091"/>
	</trans-unit>
	<trans-unit id="2">
		<source>c</source><target>d</target>
		<mq:errorwarning mq:errorcode="02000"/>
	</trans-unit>
	<trans-unit id="3">
		<source>e</source><target>f</target>
		<mq:errorwarning mq:errorcode="02001" mq:errorwarning-ignored="errorwarning-ignored"/>
	</trans-unit>
</body></file></xliff>`
	doc, err := mqxliff.ParseReader(strings.NewReader(content))
	require.NoError(t, err)

	excluded := map[string]bool{"03091": true}
	assert.Equal(t, 1, IgnoreRemaining(doc, excluded))

	// Second pass: nothing left to flag, the excluded code stays visible.
	assert.Equal(t, 0, IgnoreRemaining(doc, excluded))

	unit1 := doc.Units()[0]
	assert.NotEmpty(t, Locate(unit1.Node(), WarningTags), "excluded code must stay unignored")
}
