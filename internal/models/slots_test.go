package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	assert.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "17:30", slots[len(slots)-1])
}

func TestIsValidSlot(t *testing.T) {
	assert.True(t, IsValidSlot("09:00"))
	assert.True(t, IsValidSlot("12:30"))
	assert.True(t, IsValidSlot("17:30"))

	assert.False(t, IsValidSlot("08:30"))
	assert.False(t, IsValidSlot("18:00"))
	assert.False(t, IsValidSlot("10:15"))
	assert.False(t, IsValidSlot("9:00"))
	assert.False(t, IsValidSlot(""))
}
