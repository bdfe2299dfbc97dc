package extract

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// MaxStartSeconds bounds the start time accepted for an item.
const MaxStartSeconds = 24 * 60 * 60

// Item is one question/answer triple read from a provider response.
type Item struct {
	Question  string
	Answer    string
	StartTime int
	HasStart  bool
}

// strategy locates the JSON document in a response, reporting false when it
// cannot.
type strategy func(text string) (gjson.Result, bool)

// Ordered: the embedded search only runs when the whole text is not JSON.
var strategies = []strategy{
	wholeDocument,
	embeddedArray,
}

func wholeDocument(text string) (gjson.Result, bool) {
	text = strings.TrimSpace(text)
	if text == "" || !gjson.Valid(text) {
		return gjson.Result{}, false
	}

	return gjson.Parse(text), true
}

// embeddedArray takes everything from the first '[' to the last ']'.
func embeddedArray(text string) (gjson.Result, bool) {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end < start {
		return gjson.Result{}, false
	}

	candidate := text[start : end+1]
	if !gjson.Valid(candidate) {
		return gjson.Result{}, false
	}

	return gjson.Parse(candidate), true
}

// ParseResponse reads the ordered question/answer triples out of a provider
// response, which may wrap the JSON array in prose.
func ParseResponse(text string) ([]Item, error) {
	for _, find := range strategies {
		if doc, ok := find(text); ok {
			return decodeItems(doc)
		}
	}

	return nil, fmt.Errorf("%w: could not parse response as JSON", ErrFailure)
}

func decodeItems(doc gjson.Result) ([]Item, error) {
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of questions", ErrFailure)
	}

	elements := doc.Array()
	items := make([]Item, 0, len(elements))

	for i, el := range elements {
		if !el.IsObject() {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrFailure, i)
		}

		question := strings.TrimSpace(el.Get("question").String())
		answer := strings.TrimSpace(el.Get("answer").String())
		if question == "" || answer == "" {
			return nil, fmt.Errorf("%w: entry %d is missing a question or answer", ErrFailure, i)
		}

		item := Item{
			Question: question,
			Answer:   answer,
		}

		if start := el.Get("startTime"); start.Type == gjson.Number {
			seconds := math.Max(0, math.Floor(start.Float()))
			if seconds > MaxStartSeconds {
				return nil, fmt.Errorf("%w: entry %d starts at %g seconds, past the %d second limit", ErrFailure, i, start.Float(), MaxStartSeconds)
			}

			item.StartTime = int(seconds)
			item.HasStart = true
		}

		items = append(items, item)
	}

	return items, nil
}
