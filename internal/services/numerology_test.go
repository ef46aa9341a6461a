package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratik-mahalle/numera/internal/domain/report"
)

// fixedRand returns the queued values in order, then repeats the last
type fixedRand struct {
	values []int
	calls  int
}

func (f *fixedRand) IntN(n int) int {
	v := f.values[len(f.values)-1]
	if f.calls < len(f.values) {
		v = f.values[f.calls]
	}
	f.calls++
	return v % n
}

func TestReduce(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "1990-01-15", want: 8}, // 1+9+9+0+0+1+1+5 = 26 -> 8
		{in: "2000-09-09", want: 2}, // 2+9+9 = 20 -> 2
		{in: "1980-01-08", want: 9}, // 1+9+8+1+8 = 27 -> 0 -> 9
		{in: "Jane Doe", want: 9},
		{in: "", want: 9},
		{in: "R2D2", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.in))
		})
	}
}

func TestCalculator_Calculate(t *testing.T) {
	calc := NewCalculator(&fixedRand{values: []int{1, 6, 3}})

	got := calc.Calculate(report.InputData{FullName: "Agent 47 Smith", DateOfBirth: "1990-01-15"})

	assert.Equal(t, 8, got.LifePathNumber)
	assert.Equal(t, 2, got.DestinyNumber) // 4+7 = 11 -> 2
	assert.Equal(t, 9, got.PersonalityNumber)
	assert.Equal(t, []int{8, 2, 9}, got.LuckyNumbers)
	assert.Equal(t, []int{9, 1}, got.CompatibleNumbers)
	assert.Equal(t, []string{"purple", "violet", "indigo"}, got.LuckyColors)
	assert.Equal(t, "Gold", got.LuckyColor)
	assert.Equal(t, 7, got.LuckyNumber)
	assert.Equal(t, 4, got.PersonalYear)
	assert.Contains(t, got.Summary, "Life Path is 8")
}

func TestCalculator_RandomFieldsStayInRange(t *testing.T) {
	calc := NewCalculator(nil)
	in := report.InputData{FullName: "Jane Doe", DateOfBirth: "1990-01-15"}

	for i := 0; i < 200; i++ {
		got := calc.Calculate(in)
		assert.Contains(t, Palette, got.LuckyColor)
		assert.GreaterOrEqual(t, got.LuckyNumber, 1)
		assert.LessOrEqual(t, got.LuckyNumber, 9)
		assert.GreaterOrEqual(t, got.PersonalYear, 1)
		assert.LessOrEqual(t, got.PersonalYear, 9)
		assert.Equal(t, 8, got.LifePathNumber)
	}
}
