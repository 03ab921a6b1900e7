package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsistency_LocalizationArgs(t *testing.T) {
	ann := parseAnnotation(t, `<mq:errorwarning mq:errorcode="03100"
		mq:localizationargs="Der Hund&#9;Der Hundt"/>`)

	rec := Consistency(ann)
	require.NotNil(t, rec)
	assert.Equal(t, "Der Hund", rec.ConsistentText)
	assert.Equal(t, "Der Hundt", rec.InconsistentText)
}

func TestConsistency_LabeledAttrs(t *testing.T) {
	ann := parseAnnotation(t, `<mq:errorwarning mq:errorcode="03100"
		mq:shorttext="Inconsistent translation for Der Hundt"
		mq:longdesc="The same segment was also translated as: Der Hund"/>`)

	rec := Consistency(ann)
	require.NotNil(t, rec)
	assert.Equal(t, "Der Hund", rec.ConsistentText)
	assert.Equal(t, "Der Hundt", rec.InconsistentText)
}

func TestConsistency_LooseAttrs(t *testing.T) {
	ann := parseAnnotation(t, `<mq:errorwarning mq:errorcode="03100"
		currenttranslation="Der Hundt" expectedtranslation="Der Hund"
		relatedsegments="3;5"/>`)

	rec := Consistency(ann)
	require.NotNil(t, rec)
	assert.Equal(t, "Der Hund", rec.ConsistentText)
	assert.Equal(t, "Der Hundt", rec.InconsistentText)
	assert.Equal(t, []string{"3", "5"}, rec.RelatedSegments)
}

func TestConsistency_InconsistentAttrDoesNotFeedConsistentSide(t *testing.T) {
	// "inconsistent" contains "consist"; the attr must land on the
	// inconsistent side only.
	ann := parseAnnotation(t, `<mq:errorwarning mq:errorcode="03100"
		inconsistenttext="Der Hundt"/>`)

	rec := Consistency(ann)
	require.NotNil(t, rec)
	assert.Equal(t, "Der Hundt", rec.InconsistentText)
	assert.Empty(t, rec.ConsistentText)
}

func TestConsistency_NoUsableFields(t *testing.T) {
	ann := parseAnnotation(t, `<mq:errorwarning mq:errorcode="03100"/>`)
	assert.Nil(t, Consistency(ann))
}

func TestConsistencyFromText(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		consistent   string
		inconsistent string
		segments     []string
	}{
		{
			name:         "inconsistent with segment",
			text:         `Inconsistent with segment 12: 'Der Hund' vs 'Der Hundt'`,
			consistent:   "Der Hund",
			inconsistent: "Der Hundt",
			segments:     []string{"12"},
		},
		{
			name:         "labeled phrasings",
			text:         `Inconsistent translation for Der Hundt. The same segment was also translated as: Der Hund`,
			consistent:   "Der Hund",
			inconsistent: "Der Hundt",
			segments:     nil,
		},
		{
			name:         "should be pair",
			text:         `'Der Hundt' should be 'Der Hund'`,
			consistent:   "Der Hund",
			inconsistent: "Der Hundt",
			segments:     nil,
		},
		{
			name:         "tab separated",
			text:         "Der Hund\tDer Hundt",
			consistent:   "Der Hund",
			inconsistent: "Der Hundt",
			segments:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ConsistencyRecord{}
			ConsistencyFromText(tt.text, rec)
			assert.Equal(t, tt.consistent, rec.ConsistentText)
			assert.Equal(t, tt.inconsistent, rec.InconsistentText)
			assert.Equal(t, tt.segments, rec.RelatedSegments)
		})
	}
}

func TestConsistencyFromText_SegmentReferences(t *testing.T) {
	rec := &ConsistencyRecord{
		ConsistentText:   "Der Hund",
		InconsistentText: "Der Hundt",
	}
	ConsistencyFromText("See segment 7 for the previous wording", rec)

	assert.Equal(t, []string{"7"}, rec.RelatedSegments)
	assert.Equal(t, "Der Hund", rec.ConsistentText)
}

func TestConsistencyRecord_Empty(t *testing.T) {
	assert.True(t, (&ConsistencyRecord{}).Empty())
	assert.True(t, (&ConsistencyRecord{RelatedSegments: []string{"1"}}).Empty())
	assert.False(t, (&ConsistencyRecord{ConsistentText: "x"}).Empty())
	assert.False(t, (&ConsistencyRecord{InconsistentText: "y"}).Empty())
}
