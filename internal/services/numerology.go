package services

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pratik-mahalle/numera/internal/domain/report"
)

// RandomSource draws flavor values for a reading
type RandomSource interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// Palette of lucky colours drawn from for a reading
var Palette = []string{"Purple", "Gold", "Blue", "Green", "Red", "Yellow", "Orange", "Pink", "Silver"}

var fixedLuckyColors = []string{"purple", "violet", "indigo"}

// Calculator computes numerology readings
type Calculator struct {
	rnd RandomSource
}

// NewCalculator creates a calculator. A nil source uses the global generator.
func NewCalculator(rnd RandomSource) *Calculator {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Calculator{rnd: rnd}
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// Reduce sums the decimal digits of s and folds the sum into 1..9
func Reduce(s string) int {
	sum := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			sum += int(c - '0')
		}
	}
	if r := sum % 9; r != 0 {
		return r
	}
	return 9
}

// Calculate derives a reading from the subject. Everything except luckyColor,
// luckyNumber and personalYear is a pure function of the input.
func (c *Calculator) Calculate(in report.InputData) report.Result {
	lifePath := Reduce(in.DateOfBirth)
	destiny := Reduce(in.FullName)
	first := ""
	if fields := strings.Split(in.FullName, " "); len(fields) > 0 {
		first = fields[0]
	}
	personality := Reduce(first)

	return report.Result{
		LifePathNumber:    lifePath,
		DestinyNumber:     destiny,
		PersonalityNumber: personality,
		LuckyColor:        Palette[c.rnd.IntN(len(Palette))],
		LuckyColors:       append([]string(nil), fixedLuckyColors...),
		LuckyNumber:       c.rnd.IntN(9) + 1,
		LuckyNumbers:      []int{lifePath, destiny, personality},
		CompatibleNumbers: []int{(lifePath % 9) + 1, ((lifePath + 1) % 9) + 1},
		PersonalYear:      c.rnd.IntN(9) + 1,
		Compatibility:     "Excellent",
		FortuneTelling:    "Good opportunities ahead",
		Summary:           fmt.Sprintf("Your Life Path is %d. This number indicates your personality traits and life choices.", lifePath),
	}
}
