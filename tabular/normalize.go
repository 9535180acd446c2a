// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// maxDepth bounds how far [Normalize] descends into nested objects.
const maxDepth = 4

// labelFields are tried in order when the x field has no value.
var labelFields = []string{"category", "label", "name", "x"}

// Normalize extracts labels and series from raw input:
//   - an array of records gives one series per y field (or the
//     [DefaultField]), with labels from the x field or a fallback chain;
//   - an array of arrays uses the first element of each row;
//   - an array of scalars uses each element;
//   - an object is searched for its longest array, which is normalized.
//
// Anything else, or a result with no points, gives [FallbackData].
func Normalize(raw any, axes AxisSelection) Data {
	d, ok := normalize(raw, axes, 0)
	if !ok || d.Len() == 0 {
		slog.Debug("tabular: using fallback series", "input", fmt.Sprintf("%T", raw))
		return FallbackData()
	}
	return d
}

func normalize(raw any, axes AxisSelection, depth int) (Data, bool) {
	if arr, ok := asSlice(raw); ok {
		return normalizeArray(arr, axes)
	}
	rec, ok := asRecord(raw)
	if !ok || depth >= maxDepth {
		return Data{}, false
	}
	keys := lo.Keys(rec)
	slices.Sort(keys)
	best, bestLen := "", -1
	for _, k := range keys {
		if arr, ok := asSlice(rec[k]); ok && len(arr) > bestLen {
			best, bestLen = k, len(arr)
		}
	}
	if bestLen > 0 {
		d, ok := normalize(rec[best], axes, depth+1)
		d.Shape = Wrapped
		return d, ok
	}
	for _, k := range keys {
		if _, isRec := asRecord(rec[k]); !isRec {
			continue
		}
		if d, ok := normalize(rec[k], axes, depth+1); ok && d.Len() > 0 {
			d.Shape = Wrapped
			return d, true
		}
	}
	return Data{}, false
}

func normalizeArray(arr []any, axes AxisSelection) (Data, bool) {
	if len(arr) == 0 {
		return Data{}, false
	}
	first, _ := lo.Find(arr, func(v any) bool { return v != nil })
	if _, ok := asRecord(first); ok {
		return fromRecords(arr, axes), true
	}
	if _, ok := asSlice(first); ok {
		return fromValues(arr, axes, Rows, func(v any) float64 {
			row, _ := asSlice(v)
			if len(row) == 0 {
				return 0
			}
			return ParseFloat(row[0])
		}), true
	}
	return fromValues(arr, axes, Scalars, ParseFloat), true
}

// fromValues makes a single series from one value per element.
func fromValues(arr []any, axes AxisSelection, shape Shapes, value func(v any) float64) Data {
	label := DefaultField
	if len(axes.Y) > 0 {
		label = axes.Y[0]
	}
	return Data{
		Labels: lo.Times(len(arr), itemLabel),
		Series: []Series{{Label: label, Values: lo.Map(arr, func(v any, _ int) float64 { return value(v) })}},
		Shape:  shape,
	}
}

func fromRecords(arr []any, axes AxisSelection) Data {
	recs := lo.Map(arr, func(v any, _ int) map[string]any {
		rec, _ := asRecord(v)
		return rec
	})
	fields := axes.Y
	if len(fields) == 0 {
		fields = []string{defaultField(recs, axes.X)}
	}
	d := Data{Shape: Records}
	d.Labels = lo.Map(recs, func(rec map[string]any, i int) string {
		return recordLabel(rec, axes.X, i)
	})
	for _, f := range fields {
		d.Series = append(d.Series, Series{
			Label:  f,
			Values: lo.Map(recs, func(rec map[string]any, _ int) float64 { return ParseFloat(rec[f]) }),
		})
	}
	return d
}

// defaultField returns [DefaultField] if any record has it, or else
// the first numeric field of the first record in sorted key order,
// skipping the x field and the label fields.
func defaultField(recs []map[string]any, xField string) string {
	if lo.SomeBy(recs, func(rec map[string]any) bool { _, ok := rec[DefaultField]; return ok }) {
		return DefaultField
	}
	if len(recs) == 0 || recs[0] == nil {
		return DefaultField
	}
	keys := lo.Keys(recs[0])
	slices.Sort(keys)
	for _, k := range keys {
		if k == xField || slices.Contains(labelFields, k) {
			continue
		}
		if isNumeric(recs[0][k]) {
			return k
		}
	}
	return DefaultField
}

func recordLabel(rec map[string]any, xField string, i int) string {
	if xField != "" {
		if v, ok := rec[xField]; ok && v != nil {
			return stringify(v)
		}
	}
	for _, f := range labelFields {
		if v, ok := rec[f]; ok && v != nil {
			return stringify(v)
		}
	}
	return itemLabel(i)
}

func itemLabel(i int) string {
	return "Item " + strconv.Itoa(i+1)
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}

// floatPrefix matches the longest numeric prefix accepted by parseFloat
// in JavaScript.
var floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)

// ParseFloat coerces a cell to a number the way JavaScript parseFloat
// does: strings use their leading numeric prefix ("12px" is 12), arrays
// use their first element, and anything else that is not a number is 0.
// NaN and infinite results are 0.
func ParseFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil, bool:
		return 0
	case string:
		f = parsePrefix(x)
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		rv := reflect.ValueOf(v)
		switch {
		case rv.CanInt():
			f = float64(rv.Int())
		case rv.CanUint():
			f = float64(rv.Uint())
		case rv.CanFloat():
			f = rv.Float()
		case rv.Kind() == reflect.String:
			f = parsePrefix(rv.String())
		default:
			if arr, ok := asSlice(v); ok && len(arr) > 0 {
				return ParseFloat(arr[0])
			}
			return 0
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parsePrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return math.NaN()
	}
	if strings.HasSuffix(m, "Infinity") {
		return math.Inf(1)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// isNumeric returns whether v is a number or a string that is
// entirely a number.
func isNumeric(v any) bool {
	switch x := v.(type) {
	case nil, bool:
		return false
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return err == nil
	}
	rv := reflect.ValueOf(v)
	return rv.CanInt() || rv.CanUint() || rv.CanFloat()
}

// asSlice returns v as a []any if it is any kind of slice or array
// (other than a byte string).
func asSlice(v any) ([]any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case []any:
		return x, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asRecord returns v as a map[string]any if it is a map with string keys.
func asRecord(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return x, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
