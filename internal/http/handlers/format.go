package handlers

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	html "github.com/gofiber/template/html/v2"
)

const maxStars = 5

// Stars splits a 0..5 rating into icon names: whole stars, one half star for
// any fractional part, then empty ones.
func Stars(rating float64) []string {
	rating = math.Max(0, math.Min(maxStars, rating))
	full := int(math.Floor(rating))
	out := make([]string, 0, maxStars)
	for i := 0; i < full; i++ {
		out = append(out, "full")
	}
	if rating != math.Floor(rating) {
		out = append(out, "half")
	}
	for len(out) < maxStars {
		out = append(out, "empty")
	}
	return out
}

func RatingText(rating float64, reviews int) string {
	return fmt.Sprintf("%.1f (%d reviews)", rating, reviews)
}

// Price renders an amount with thousands separators and at most two decimals.
func Price(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func Funcs() map[string]any {
	return map[string]any{
		"stars":      Stars,
		"ratingText": RatingText,
		"price":      Price,
		"runes":      utf8.RuneCountInString,
	}
}

// NewEngine loads the html templates from dir with the view helpers registered.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFuncMap(Funcs())
	return engine
}
