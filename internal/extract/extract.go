// Package extract pulls structured JSON out of free-form model output.
//
// Model text is untrusted and frequently malformed, so nothing here returns an error:
// anything that cannot be located or parsed is reported as an empty payload.
package extract

import (
	"bytes"
	"encoding/json"
	"regexp"
)

type Kind int

const (
	KindNone Kind = iota
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "none"
	}
}

var (
	fencedJSON   = regexp.MustCompile("(?is)```json(.*?)```")
	bracketArray = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)
)

// Payload is the located JSON value, tagged by its top-level shape.
type Payload struct {
	Kind Kind
	Raw  json.RawMessage
}

func (p Payload) Empty() bool {
	return p.Kind == KindNone
}

// JSON locates the JSON block in text. A fenced block tagged json wins over any
// bracketed array elsewhere; if the chosen block does not parse the payload is empty.
func JSON(text string) Payload {
	var candidate string
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else if m := bracketArray.FindString(text); m != "" {
		candidate = m
	} else {
		return Payload{}
	}

	raw := bytes.TrimSpace([]byte(candidate))
	if !json.Valid(raw) {
		return Payload{}
	}

	switch raw[0] {
	case '[':
		return Payload{Kind: KindArray, Raw: raw}
	case '{':
		return Payload{Kind: KindObject, Raw: raw}
	default:
		return Payload{}
	}
}

// Value returns the payload as generic data: []any, map[string]any, or an empty []any.
func (p Payload) Value() any {
	switch p.Kind {
	case KindArray:
		var items []any
		if err := json.Unmarshal(p.Raw, &items); err == nil {
			return items
		}
	case KindObject:
		var obj map[string]any
		if err := json.Unmarshal(p.Raw, &obj); err == nil {
			return obj
		}
	}
	return []any{}
}

// Decode normalizes a payload into records. An array decodes directly; an object
// yields the first of keys, in order, holding an array with at least one decodable
// element. Elements that do not decode into T are skipped. Anything else is empty.
func Decode[T any](p Payload, keys ...string) []T {
	switch p.Kind {
	case KindArray:
		return decodeEach[T](p.Raw)
	case KindObject:
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(p.Raw, &wrapped); err != nil {
			return nil
		}
		for _, key := range keys {
			raw, ok := wrapped[key]
			if !ok {
				continue
			}
			if items := decodeEach[T](raw); len(items) > 0 {
				return items
			}
		}
	}
	return nil
}

func decodeEach[T any](raw json.RawMessage) []T {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Records is JSON followed by Decode.
func Records[T any](text string, keys ...string) []T {
	return Decode[T](JSON(text), keys...)
}
