package shipment

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayouts are the source timestamp formats, tried in order
var TimestampLayouts = []string{
	"01.02.2006 03:04:05",
	"01.02.2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// document is a decoded JSON object with lenient typed accessors.
// Absent keys, JSON null, "" and "null" all read as absent.
type document map[string]any

// decodeDocument decodes raw into a document, keeping numbers as json.Number.
// Anything but whitespace after the object is rejected.
func decodeDocument(raw []byte) (document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, ErrInvalidDocument
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidDocument
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrInvalidDocument
	}
	return document(obj), nil
}

// ExtractOrderID reads the ID of a raw order document without normalizing it
func ExtractOrderID(raw []byte) (int64, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return 0, err
	}
	id := doc.int64("ID")
	if id == nil {
		return 0, ErrMissingOrderID
	}
	return *id, nil
}

func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "null"
	default:
		return false
	}
}

func (d document) value(key string) (any, bool) {
	v, ok := d[key]
	if !ok || isAbsent(v) {
		return nil, false
	}
	return v, true
}

func (d document) str(key string) *string {
	v, ok := d.value(key)
	if !ok {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil
	}
	return &s
}

func (d document) int64(key string) *int64 {
	v, ok := d.value(key)
	if !ok {
		return nil
	}
	return toInt64(v)
}

func toInt64(v any) *int64 {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return &n
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
			return nil
		}
		n := int64(f)
		return &n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func (d document) decimal(key string) *decimal.Decimal {
	v, ok := d.value(key)
	if !ok {
		return nil
	}
	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return nil
	}
	dec, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	return &dec
}

func (d document) boolean(key string) *bool {
	v, ok := d.value(key)
	if !ok {
		return nil
	}
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		b = f != 0
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		b = parsed
	default:
		return nil
	}
	return &b
}

func (d document) timestamp(key string) *time.Time {
	s := d.str(key)
	if s == nil {
		return nil
	}
	return ParseTimestamp(*s)
}

// ParseTimestamp tries TimestampLayouts in order and returns nil if none match
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range TimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func (d document) object(key string) document {
	v, ok := d.value(key)
	if !ok {
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return document(obj)
}

func (d document) array(key string) []any {
	v, ok := d.value(key)
	if !ok {
		return nil
	}
	arr, _ := v.([]any)
	return arr
}

// tagIDs reads an integer id array, dropping absent, zero and repeated ids
func (d document) tagIDs(key string) []int64 {
	ids := make([]int64, 0)
	seen := make(map[int64]struct{})
	for _, item := range d.array(key) {
		if isAbsent(item) {
			continue
		}
		id := toInt64(item)
		if id == nil || *id == 0 {
			continue
		}
		if _, dup := seen[*id]; dup {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	return ids
}
