package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameWordSetClear(t *testing.T) {
	tests := []struct {
		name      string
		initial   FrameWord
		setBits   []int
		clearBits []int
		expected  FrameWord
	}{
		{"Set and Clear bits", 0, []int{1, 3, 5}, []int{3}, 34},
		{"Set bits only", 0, []int{0, 2, 4}, []int{}, 21},
		{"Clear bits only", 255, []int{}, []int{0, 1, 2}, 248},
		{"High bits", 0, []int{10, 11}, []int{}, 3072},
		{"No operations", 15, []int{}, []int{}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.initial
			for _, bit := range tt.setBits {
				w.Set(bit)
			}
			for _, bit := range tt.clearBits {
				w.Clear(bit)
			}
			assert.Equal(t, tt.expected, w)
		})
	}
}

func TestFrameWordForEach(t *testing.T) {
	w := FrameWord(10) // 1010 in binary
	var result []bool
	w.ForEach(func(bit bool) {
		result = append(result, bit)
	}, 4)
	assert.Equal(t, []bool{false, true, false, true}, result)
}

func TestFrameWordString(t *testing.T) {
	assert.Equal(t, "010000000011", FrameWord(0b110000000010).String())
}
