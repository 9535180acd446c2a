// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx sets struct fields from `default:` struct tags.
package reflectx

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tabula3d/tabula3d/base/errors"
)

// SetFromDefaultTags sets the fields of the struct pointed to by obj
// from their `default:` tags. Struct fields without a tag are set
// recursively. A tag starting with { or [ is decoded as JSON, with
// single quotes standing in for double quotes. Fields without a tag
// are left as they are.
func SetFromDefaultTags(obj any) error {
	ov := reflect.ValueOf(obj)
	if ov.Kind() != reflect.Pointer || ov.IsNil() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: need a non-nil pointer, not %T", obj)
	}
	val := ov.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: need a pointer to a struct, not %T", obj)
	}
	typ := val.Type()
	var errs []error
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok || def == "" {
			if f.Type.Kind() == reflect.Struct {
				if err := SetFromDefaultTags(fv.Addr().Interface()); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}
		if err := SetFromString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", typ.Name(), f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SetFromString sets the settable value v from its string form.
func SetFromString(v reflect.Value, s string) error {
	if s != "" && (s[0] == '{' || s[0] == '[') {
		return json.Unmarshal([]byte(strings.ReplaceAll(s, `'`, `"`)), v.Addr().Interface())
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("cannot set %s from %q", v.Type(), s)
	}
	return nil
}
