// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a [pflag.FlagSet] named name whose flags are
// bound to the tagged fields of params, a pointer to a struct. A
// malformed params struct is a bug in the command, so it panics.
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags adds a flag to flagSet for every field of params that
// carries a flag tag:
//
//	Output string `flag:"output,o" desc:"write to this file" default:"-"`
//
// The flag tag holds the long name and an optional one-letter
// shorthand. desc is the help text and default is parsed as the
// field's type. Fields may be string, bool, or int. Anonymous struct
// fields such as [CommonParams] contribute their own flags.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	pointer := reflect.ValueOf(params)
	if pointer.Kind() != reflect.Pointer || pointer.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(pointer.Elem(), flagSet)
}

// flagSpec is the parsed form of one field's tags.
type flagSpec struct {
	name      string
	shorthand string
	usage     string
	fallback  string
}

func parseFlagSpec(field reflect.StructField) (flagSpec, bool) {
	tag, ok := field.Tag.Lookup("flag")
	if !ok || tag == "" {
		return flagSpec{}, false
	}
	name, shorthand, _ := strings.Cut(tag, ",")
	return flagSpec{
		name:      name,
		shorthand: shorthand,
		usage:     field.Tag.Get("desc"),
		fallback:  field.Tag.Get("default"),
	}, true
}

func bindStruct(value reflect.Value, flagSet *pflag.FlagSet) error {
	for index := range value.NumField() {
		field := value.Type().Field(index)
		target := value.Field(index)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(target, flagSet); err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
			continue
		}

		spec, ok := parseFlagSpec(field)
		if !ok {
			continue
		}
		if !field.IsExported() {
			return fmt.Errorf("field %s: flag fields must be exported", field.Name)
		}
		if err := spec.bind(target.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func (spec flagSpec) bind(pointer any, flagSet *pflag.FlagSet) error {
	switch target := pointer.(type) {
	case *string:
		flagSet.StringVarP(target, spec.name, spec.shorthand, spec.fallback, spec.usage)
	case *bool:
		fallback, err := parseDefault(spec, strconv.ParseBool)
		if err != nil {
			return err
		}
		flagSet.BoolVarP(target, spec.name, spec.shorthand, fallback, spec.usage)
	case *int:
		fallback, err := parseDefault(spec, strconv.Atoi)
		if err != nil {
			return err
		}
		flagSet.IntVarP(target, spec.name, spec.shorthand, fallback, spec.usage)
	default:
		return fmt.Errorf("--%s: unsupported field type %T", spec.name, pointer)
	}
	return nil
}

// parseDefault parses the default tag, returning the zero value when
// there is none.
func parseDefault[T any](spec flagSpec, parse func(string) (T, error)) (T, error) {
	var zero T
	if spec.fallback == "" {
		return zero, nil
	}
	value, err := parse(spec.fallback)
	if err != nil {
		return zero, fmt.Errorf("default for --%s: %w", spec.name, err)
	}
	return value, nil
}
