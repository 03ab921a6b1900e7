package mqxliff

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="utf-8"?>
<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2" xmlns:mq="MQXliff" version="1.2">
  <file source-language="en" target-language="de" datatype="x-undefined" original="sample.docx">
    <body>
      <trans-unit id="1">
        <source>The quick brown fox</source>
        <target>Der schnelle braune Fuchs</target>
      </trans-unit>
      <trans-unit id="2">
        <source>Save the file</source>
        <target>Speichern Sie die Datei<mq:meta>hidden metadata</mq:meta></target>
      </trans-unit>
      <trans-unit id="3">
        <source>No translation yet</source>
      </trans-unit>
    </body>
  </file>
</xliff>`

func TestParseReader_Units(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	units := doc.Units()
	require.Len(t, units, 3)

	assert.Equal(t, "1", units[0].ID())
	assert.Equal(t, "2", units[1].ID())
	assert.Equal(t, "3", units[2].ID())

	assert.Equal(t, "The quick brown fox", units[0].SourceText())
	assert.Equal(t, "Der schnelle braune Fuchs", units[0].TargetText())
}

func TestTargetText_ExcludesMetadata(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	unit := doc.Units()[1]
	assert.Equal(t, "Speichern Sie die Datei", unit.TargetText())
	assert.NotContains(t, unit.TargetText(), "hidden metadata")
}

func TestReplaceTarget(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	unit := doc.Units()[0]
	require.NoError(t, unit.ReplaceTarget("Der flinke braune Fuchs"))

	assert.Equal(t, "Der flinke braune Fuchs", unit.TargetText())
	assert.Contains(t, doc.Serialize(), "Der flinke braune Fuchs")
	assert.NotContains(t, doc.Serialize(), "Der schnelle braune Fuchs")
}

func TestReplaceTarget_DiscardsInlineMarkup(t *testing.T) {
	content := `<?xml version="1.0"?>
<xliff xmlns:mq="MQXliff">
  <trans-unit id="7">
    <source>bold text</source>
    <target><bpt id="1">{}</bpt>fetter Text<ept id="1">{}</ept></target>
  </trans-unit>
</xliff>`
	doc, err := ParseReader(strings.NewReader(content))
	require.NoError(t, err)

	unit := doc.Units()[0]
	require.NoError(t, unit.ReplaceTarget("neuer Text"))

	assert.Equal(t, "neuer Text", unit.TargetText())
	assert.NotContains(t, doc.Serialize(), "bpt")
}

func TestReplaceTarget_NoTargetElement(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	unit := doc.Units()[2]
	err = unit.ReplaceTarget("anything")
	require.Error(t, err)

	var mutErr *MutationError
	require.True(t, errors.As(err, &mutErr))
	assert.Equal(t, "3", mutErr.UnitID)

	// The document must be untouched after a failed mutation.
	assert.NotContains(t, doc.Serialize(), "anything")
}

func TestSerialize_SingleDeclaration(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	out := doc.Serialize()
	assert.Equal(t, 1, strings.Count(out, "<?xml"))
	assert.True(t, strings.HasPrefix(out, "<?xml"))
}

func TestParse_CreatesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mqxliff")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	doc, err := Parse(path)
	require.NoError(t, err)
	assert.Len(t, doc.Units(), 3)

	backups, err := filepath.Glob(path + ".backup-*")
	require.NoError(t, err)
	require.Len(t, backups, 1)

	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, string(data))
}

func TestLoad_NoBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mqxliff")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Units(), 3)

	backups, err := filepath.Glob(path + ".backup-*")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.mqxliff"))
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.mqxliff")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, doc.Units()[0].ReplaceTarget("Der flinke braune Fuchs"))

	outPath := filepath.Join(dir, "out.mqxliff")
	require.NoError(t, doc.Save(outPath))

	reloaded, err := Load(outPath)
	require.NoError(t, err)
	units := reloaded.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "Der flinke braune Fuchs", units[0].TargetText())
	assert.Equal(t, "Speichern Sie die Datei", units[1].TargetText())
}

func TestFindFirst(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	unit := doc.Units()[0]
	source := FindFirst(unit.Node(), "source")
	require.NotNil(t, source)
	assert.Equal(t, "source", source.Data)

	assert.Nil(t, FindFirst(unit.Node(), "nonexistent"))
}

func TestWalkElements_StopsEarly(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	visited := 0
	WalkElements(doc.Root(), func(el *xmlquery.Node) bool {
		visited++
		return el.Data != "source"
	})

	// The walk stops at the first source element; the full document has
	// many more elements than that.
	full := 0
	WalkElements(doc.Root(), func(*xmlquery.Node) bool {
		full++
		return true
	})
	assert.Less(t, visited, full)
}
