package assoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasureThresholdGate(t *testing.T) {
	t.Parallel()

	measure := tableMeasure{
		"near|near": 2,
		"far|far":   8,
	}

	t.Run("minimise admits at or below threshold", func(t *testing.T) {
		t.Parallel()
		gate := NewMeasureThresholdGate(measure, 2, true)
		assert.True(t, gate.Admit(keyItem("near"), keyItem("near")))
		assert.False(t, gate.Admit(keyItem("far"), keyItem("far")))
	})

	t.Run("maximise admits at or above threshold", func(t *testing.T) {
		t.Parallel()
		gate := NewMeasureThresholdGate(measure, 8, false)
		assert.True(t, gate.Admit(keyItem("far"), keyItem("far")))
		assert.False(t, gate.Admit(keyItem("near"), keyItem("near")))
	})

	t.Run("incomparable pair is inadmissible", func(t *testing.T) {
		t.Parallel()
		gate := NewMeasureThresholdGate(measure, 100, true)
		assert.False(t, gate.Admit(keyItem("x"), keyItem("y")))
	})
}
