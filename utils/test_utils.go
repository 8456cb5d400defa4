// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.


package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Must is a helper function that takes a value of any type and an error.
// If the error is nil, it returns the value; if the error is non-nil, it panics.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

// ArgsBuilder helps create []string for CLI testing in a type-safe way
type ArgsBuilder struct {
	args []string
}

func NewArgs(cmd string) *ArgsBuilder {
	return &ArgsBuilder{args: []string{cmd}}
}

func (b *ArgsBuilder) Flag(name string, value interface{}) *ArgsBuilder {
	switch v := value.(type) {
	case string:
		b.args = append(b.args, "--"+name, v)
	case int:
		b.args = append(b.args, "--"+name, strconv.Itoa(v))
	case uint64:
		b.args = append(b.args, "--"+name, strconv.FormatUint(v, 10))
	case float64:
		b.args = append(b.args, "--"+name, strconv.FormatFloat(v, 'g', -1, 64))
	case []int:
		values := make([]string, len(v))
		for i, x := range v {
			values[i] = strconv.Itoa(x)
		}
		b.args = append(b.args, "--"+name, strings.Join(values, ","))
	case bool:
		if v {
			b.args = append(b.args, "--"+name)
		}
	default:
		panic(fmt.Sprintf("unsupported flag type %T", v))
	}
	return b
}

func (b *ArgsBuilder) Arg(value interface{}) *ArgsBuilder {
	switch v := value.(type) {
	case string:
		b.args = append(b.args, v)
	case int:
		b.args = append(b.args, strconv.Itoa(v))
	case bool:
		if v {
			b.args = append(b.args, "true")
		} else {
			b.args = append(b.args, "false")
		}
	default:
		panic(fmt.Sprintf("unsupported arg type %T", v))
	}
	return b
}

func (b *ArgsBuilder) Build() []string {
	return b.args
}
