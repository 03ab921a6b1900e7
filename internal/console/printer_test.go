package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alpdilgen/memoq-qa-resolver/internal/detect"
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
	"github.com/alpdilgen/memoq-qa-resolver/internal/resolve"
)

func TestPrinter_CategoryFindings(t *testing.T) {
	content := `<?xml version="1.0"?>
<xliff xmlns:mq="MQXliff"><file><body>
	<trans-unit id="10">
		<source>Read the guide</source>
		<target>Lesen Sie das Dokument</target>
		<mq:errorwarning mq:errorcode="03091" mq:localizationargs="guide&#9;Handbuch"/>
	</trans-unit>
</body></file></xliff>`
	doc, err := mqxliff.ParseReader(strings.NewReader(content))
	require.NoError(t, err)

	findings := detect.NewTerminology(zap.NewNop()).Detect(doc)
	require.NotEmpty(t, findings)

	var out bytes.Buffer
	p := NewPrinter(&out)
	p.ScanHeader("sample.mqxliff", len(doc.Units()))
	p.CategoryFindings("terminology", findings)

	rendered := out.String()
	assert.Contains(t, rendered, "sample.mqxliff")
	assert.Contains(t, rendered, "terminology: 1 error(s)")
	assert.Contains(t, rendered, "segment 10")
	assert.Contains(t, rendered, "Read the guide")
	assert.Contains(t, rendered, "Handbuch")
}

func TestPrinter_RunSummary(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.RunSummary(resolve.Stats{Total: 5, Fixed: 2, Ignored: 3}, 4, "sample.mqxliff", "report.txt")

	rendered := out.String()
	assert.Contains(t, rendered, "Run complete")
	assert.Contains(t, rendered, "5 processed, 2 fixed, 3 ignored")
	assert.Contains(t, rendered, "sample.mqxliff")
	assert.Contains(t, rendered, "report.txt")
}

func TestPrinter_RunSummary_NothingSaved(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.RunSummary(resolve.Stats{}, 0, "", "")

	rendered := out.String()
	assert.Contains(t, rendered, "0 processed")
	assert.NotContains(t, rendered, "Saved:")
	assert.NotContains(t, rendered, "Remaining warnings ignored")
}
