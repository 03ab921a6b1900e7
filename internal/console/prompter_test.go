package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpdilgen/memoq-qa-resolver/internal/extract"
	"github.com/alpdilgen/memoq-qa-resolver/internal/oracle"
	"github.com/alpdilgen/memoq-qa-resolver/internal/resolve"
)

func sampleRequest() resolve.Request {
	return resolve.Request{
		Category:   "terminology",
		UnitID:     "10",
		Index:      1,
		Total:      2,
		SourceText: "Read the guide",
		TargetText: "Lesen Sie das Dokument",
		Term: &extract.TermRecord{
			SourceTerm:        "guide",
			TargetSuggestions: []string{"Handbuch"},
		},
		Decision: oracle.Decision{
			NeedsFix:    true,
			NewText:     "Lesen Sie das Handbuch",
			Explanation: "term missing",
		},
	}
}

func TestAsk_Actions(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		action resolve.Action
	}{
		{"fix short", "f\n", resolve.ActionFix},
		{"fix long", "fix\n", resolve.ActionFix},
		{"ignore", "i\n", resolve.ActionIgnore},
		{"skip", "s\n", resolve.ActionSkip},
		{"uppercase", "F\n", resolve.ActionFix},
		{"whitespace", "  f  \n", resolve.ActionFix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			resp, err := p.Ask(sampleRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.action, resp.Action)
		})
	}
}

func TestAsk_RepromptsOnUnknownInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("x\nq\nf\n"), &out)

	resp, err := p.Ask(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, resolve.ActionFix, resp.Action)
}

func TestAsk_Edit(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("e\nEigener Text\n"), &out)

	resp, err := p.Ask(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, resolve.ActionEdit, resp.Action)
	assert.Equal(t, "Eigener Text", resp.ManualText)
}

func TestAsk_EditEmptyCancelsToSkip(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("e\n\n"), &out)

	resp, err := p.Ask(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, resolve.ActionSkip, resp.Action)
}

func TestAsk_EOFErrors(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	_, err := p.Ask(sampleRequest())
	require.Error(t, err)
}

func TestAsk_ShowsErrorContext(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("s\n"), &out)

	_, err := p.Ask(sampleRequest())
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "Read the guide")
	assert.Contains(t, rendered, "Lesen Sie das Dokument")
	assert.Contains(t, rendered, "guide")
	assert.Contains(t, rendered, "Lesen Sie das Handbuch")
	assert.Contains(t, rendered, "segment 10")
}
