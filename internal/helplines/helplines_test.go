package helplines

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllReturnsCopy(t *testing.T) {
	lines := All()
	assert.Len(t, lines, 6)

	lines[0].Number = "000"
	assert.Equal(t, "9152987821", All()[0].Number)
}

func TestAroundTheClock(t *testing.T) {
	lines := AroundTheClock()
	assert.Len(t, lines, 4)
	for _, h := range lines {
		assert.True(t, h.Available24x7(), h.Name)
	}
}

func TestEmergencyTipsMentionServices(t *testing.T) {
	tips := EmergencyTips()
	assert.NotEmpty(t, tips)
	assert.Contains(t, tips[len(tips)-1], "102 (Ambulance)")
}

func TestFormat(t *testing.T) {
	out := Format(AroundTheClock())
	assert.Equal(t, 4, strings.Count(out, "\n"))
	assert.Contains(t, out, "- AASRA: 9820466726 (24/7)")
}
