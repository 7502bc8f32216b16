// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdb

// Parameter is a non-owning handle into an Sdb: (sdb, parameter index,
// type index). It is cheap to copy and hashable/equal by that triple, as
// required by spec §3.
type Parameter struct {
	sdb        *Sdb
	paramIndex int
	typeIndex  int
}

func (p Parameter) record() ParameterRecord { return p.sdb.params[p.paramIndex] }

// ID is the 32-bit address used on the wire.
func (p Parameter) ID() uint32 { return p.record().ID }

// Name is the parameter's dotted-path name.
func (p Parameter) Name() string { return p.record().Name }

// AccessMode reports whether the parameter is read-only or read/write.
func (p Parameter) AccessMode() AccessMode { return p.record().AccessMode }

// TypeInfo resolves the parameter's type descriptor.
func (p Parameter) TypeInfo() TypeInfo {
	return TypeInfo{sdb: p.sdb, typeIndex: p.typeIndex}
}

// Sdb returns the catalog this handle was resolved from.
func (p Parameter) Sdb() *Sdb { return p.sdb }

// TypeInfo is a non-owning handle (sdb, type index) onto a TypeDescriptor.
type TypeInfo struct {
	sdb       *Sdb
	typeIndex int
}

func (t TypeInfo) descriptor() TypeDescriptor { return t.sdb.types[t.typeIndex] }

// Kind reports the type's tag.
func (t TypeInfo) Kind() TypeKind { return t.descriptor().Kind }

// WireSize is the exact number of bytes this type occupies in a response.
func (t TypeInfo) WireSize() int { return int(t.descriptor().WireSize) }

// Description is the human-readable description string from the SDB.
func (t TypeInfo) Description() string { return t.descriptor().Description }

// ArrayInfo returns an Array TypeDescriptor's element type and the element
// count of each dimension (dims[1] is 0 for a one-dimensional array).
// ok is false if Kind() != KindArray.
func (t TypeInfo) ArrayInfo() (elem TypeInfo, dims [2]int, ok bool) {
	d := t.descriptor()
	if d.Kind != KindArray {
		return TypeInfo{}, [2]int{}, false
	}
	elem = TypeInfo{sdb: t.sdb, typeIndex: d.Array.ElemTypeIndex}
	dims[0] = int(d.Array.Dims[0][1]-d.Array.Dims[0][0]) + 1
	if d.Array.DimCount == 2 {
		dims[1] = int(d.Array.Dims[1][1]-d.Array.Dims[1][0]) + 1
	}
	return elem, dims, true
}

// StructField pairs a struct member's name with its resolved type.
type StructField struct {
	Name     string
	IDOffset uint32
	Type     TypeInfo
}

// StructInfo returns the ordered member list of a Struct TypeDescriptor.
// ok is false if Kind() != KindStruct.
func (t TypeInfo) StructInfo() ([]StructField, bool) {
	d := t.descriptor()
	if d.Kind != KindStruct {
		return nil, false
	}
	out := make([]StructField, len(d.Struct.Members))
	for i, m := range d.Struct.Members {
		out[i] = StructField{
			Name:     m.Name,
			IDOffset: m.IDOffset,
			Type:     TypeInfo{sdb: t.sdb, typeIndex: m.TypeIndex},
		}
	}
	return out, true
}

// PointerTarget resolves a Pointer TypeDescriptor's target type.
// ok is false if Kind() != KindPointer.
func (t TypeInfo) PointerTarget() (TypeInfo, bool) {
	d := t.descriptor()
	if d.Kind != KindPointer {
		return TypeInfo{}, false
	}
	return TypeInfo{sdb: t.sdb, typeIndex: d.PointerTarget}, true
}

// Sdb returns the catalog this handle was resolved from.
func (t TypeInfo) Sdb() *Sdb { return t.sdb }
