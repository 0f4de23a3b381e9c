package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/cultiva/internal/model"
)

func TestFormatters(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatSuccess("saved"), SuccessIcon)
	assert.Contains(t, FormatError("failed"), ErrorIcon)
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("note"), "note")
	assert.Contains(t, FormatTitle("Icônes"), "Icônes")
	assert.Contains(t, FormatPrompt("Continue?"), "Continue? →")
}

func TestRenderBox(t *testing.T) {
	box := RenderBox("Forecast", "3 estimates")
	assert.Contains(t, box, "Forecast")
	assert.Contains(t, box, "3 estimates")
}

func TestCategorySwatch(t *testing.T) {
	swatch := CategorySwatch("tubercules")
	assert.Contains(t, swatch, SwatchBlock)
	assert.Contains(t, swatch, "tubercules")

	// Unknown categories still render with the default color
	assert.Contains(t, CategorySwatch("inconnue"), "inconnue")
}

func TestFormatConfidence(t *testing.T) {
	for _, c := range []model.Confidence{model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh} {
		assert.Contains(t, FormatConfidence(c), string(c))
	}
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, 3, "Estimating")
	p.Increment()
	p.Increment()
	p.Increment()
	p.Finish()

	assert.Contains(t, out.String(), "Estimating")
	assert.Contains(t, out.String(), "3/3")
}
