// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/wasmlab/emshim/wasm/leb128"
)

// ValueType represents a WASM value type.
type ValueType uint8

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	default:
		return fmt.Sprintf("<unknown value_type %#x>", uint8(t))
	}
}

type InvalidValueTypeError uint8

func (e InvalidValueTypeError) Error() string {
	return fmt.Sprintf("wasm: invalid value type %#x", uint8(e))
}

func readValueType(r io.Reader) (ValueType, error) {
	b, err := readByte(r)
	if err != nil {
		return 0, err
	}
	t := ValueType(b)
	switch t {
	case ValueTypeI32, ValueTypeI64, ValueTypeF32, ValueTypeF64:
		return t, nil
	}
	return 0, InvalidValueTypeError(b)
}

// FunctionSigForm is the only valid form value for a function signature.
const FunctionSigForm = 0x60

// FunctionSig describes the signature of a declared or imported function.
type FunctionSig struct {
	Form        uint8
	ParamTypes  []ValueType
	ReturnTypes []ValueType
}

func (f FunctionSig) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, t := range f.ParamTypes {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteString(") -> (")
	for i, t := range f.ReturnTypes {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Equals reports whether f and other have identical parameter and return types.
func (f FunctionSig) Equals(other FunctionSig) bool {
	if len(f.ParamTypes) != len(other.ParamTypes) || len(f.ReturnTypes) != len(other.ReturnTypes) {
		return false
	}
	for i, t := range f.ParamTypes {
		if t != other.ParamTypes[i] {
			return false
		}
	}
	for i, t := range f.ReturnTypes {
		if t != other.ReturnTypes[i] {
			return false
		}
	}
	return true
}

var ErrInvalidFunctionSigForm = errors.New("wasm: invalid function signature form")

func (f *FunctionSig) UnmarshalWASM(r io.Reader) error {
	form, err := readByte(r)
	if err != nil {
		return err
	}
	if form != FunctionSigForm {
		return ErrInvalidFunctionSigForm
	}
	f.Form = form

	paramCount, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}
	f.ParamTypes = make([]ValueType, paramCount)
	for i := range f.ParamTypes {
		if f.ParamTypes[i], err = readValueType(r); err != nil {
			return err
		}
	}

	returnCount, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}
	f.ReturnTypes = make([]ValueType, returnCount)
	for i := range f.ReturnTypes {
		if f.ReturnTypes[i], err = readValueType(r); err != nil {
			return err
		}
	}
	return nil
}

// External describes the kind of an import or export entry.
type External uint8

const (
	ExternalFunction External = 0
	ExternalTable    External = 1
	ExternalMemory   External = 2
	ExternalGlobal   External = 3
)

func (e External) String() string {
	switch e {
	case ExternalFunction:
		return "function"
	case ExternalTable:
		return "table"
	case ExternalMemory:
		return "memory"
	case ExternalGlobal:
		return "global"
	default:
		return "<unknown external_kind>"
	}
}

func (e *External) UnmarshalWASM(r io.Reader) error {
	b, err := readByte(r)
	if err != nil {
		return err
	}
	*e = External(b)
	return nil
}

// ResizableLimits describe the limits of a table or memory.
type ResizableLimits struct {
	Flags   uint32
	Initial uint32
	Maximum uint32
}

func (lim *ResizableLimits) UnmarshalWASM(r io.Reader) error {
	var err error
	if lim.Flags, err = leb128.ReadVarUint32(r); err != nil {
		return err
	}
	if lim.Initial, err = leb128.ReadVarUint32(r); err != nil {
		return err
	}
	if lim.Flags&0x1 != 0 {
		if lim.Maximum, err = leb128.ReadVarUint32(r); err != nil {
			return err
		}
	}
	return nil
}

// Table describes a table declared or imported by a module.
type Table struct {
	ElementType uint8
	Limits      ResizableLimits
}

func (t *Table) UnmarshalWASM(r io.Reader) error {
	var err error
	if t.ElementType, err = readByte(r); err != nil {
		return err
	}
	return t.Limits.UnmarshalWASM(r)
}

// Memory describes a linear memory declared or imported by a module.
type Memory struct {
	Limits ResizableLimits
}

func (m *Memory) UnmarshalWASM(r io.Reader) error {
	return m.Limits.UnmarshalWASM(r)
}

// GlobalVar describes the type and mutability of a declared or imported global.
type GlobalVar struct {
	Type    ValueType
	Mutable bool
}

func (g *GlobalVar) UnmarshalWASM(r io.Reader) error {
	var err error
	if g.Type, err = readValueType(r); err != nil {
		return err
	}
	mut, err := readByte(r)
	if err != nil {
		return err
	}
	g.Mutable = mut == 1
	return nil
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

var ErrInvalidUTF8 = errors.New("wasm: name is not valid UTF-8")

// readUTF8StringUint reads a length-prefixed UTF-8 name.
func readUTF8StringUint(r io.Reader) (string, error) {
	n, err := leb128.ReadVarUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}
