// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Implements the VacVision SDB type system: kinds, descriptors, and the
// structural (array/struct/pointer) views over them.

package sdb

import "fmt"

// TypeKind tags the shape of a TypeDescriptor.
//
// The numeric values for Array (9), Struct (11) and Pointer (0x17) are
// fixed by the wire format. The remaining scalar kinds are not pinned down
// by any capture seen so far; the values below are this codec's own
// internal enumeration and are never compared against anything other than
// what this package itself writes into a TypeDescriptor.
type TypeKind uint32

const (
	KindBool    TypeKind = 1
	KindInt     TypeKind = 2
	KindByte    TypeKind = 3
	KindWord    TypeKind = 4
	KindUint    TypeKind = 5
	KindDword   TypeKind = 6
	KindUdint   TypeKind = 7
	KindTime    TypeKind = 8
	KindArray   TypeKind = 9
	KindReal    TypeKind = 10
	KindStruct  TypeKind = 11
	KindString  TypeKind = 12
	KindPointer TypeKind = 0x17
)

func (k TypeKind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindByte:
		return "Byte"
	case KindWord:
		return "Word"
	case KindUint:
		return "Uint"
	case KindDword:
		return "Dword"
	case KindUdint:
		return "Udint"
	case KindTime:
		return "Time"
	case KindArray:
		return "Array"
	case KindReal:
		return "Real"
	case KindStruct:
		return "Struct"
	case KindString:
		return "String"
	case KindPointer:
		return "Pointer"
	default:
		return fmt.Sprintf("TypeKind(0x%x)", uint32(k))
	}
}

// AccessMode is the 16-bit access tag carried by a ParameterRecord.
type AccessMode uint16

const (
	AccessRead      AccessMode = 0x72
	AccessReadWrite AccessMode = 0x62

	// accessUnknownObserved is the one unrecognized value seen in captures
	// (see spec §9 "Open questions / observed quirks"). It is accepted as
	// unknown/read-only rather than rejected, unlike any other value.
	accessUnknownObserved AccessMode = 0xFF
)

func (a AccessMode) String() string {
	switch a {
	case AccessRead:
		return "Read"
	case AccessReadWrite:
		return "ReadWrite"
	case accessUnknownObserved:
		return "Unknown(0xFF)"
	default:
		return fmt.Sprintf("AccessMode(0x%x)", uint16(a))
	}
}

// Writable reports whether the access mode permits parameter writes.
// Unknown access modes, including the observed 0xFF quirk, are treated as
// read-only by default.
func (a AccessMode) Writable() bool {
	return a == AccessReadWrite
}

// ArrayDescriptor is the kind-dependent payload of an Array TypeDescriptor.
type ArrayDescriptor struct {
	ElemTypeIndex int
	// DimCount is 1 or 2. Dims holds inclusive [lo, hi] ranges for each
	// declared dimension, outer dimension first.
	DimCount int
	Dims     [2][2]uint32
}

// StructMember is one member of a Struct TypeDescriptor.
type StructMember struct {
	Name      string
	TypeIndex int
	// IDOffset is relative to the owning parameter's id.
	IDOffset uint32
}

// StructDescriptor is the kind-dependent payload of a Struct TypeDescriptor.
type StructDescriptor struct {
	Members []StructMember
}

// TypeDescriptor is one entry in the SDB's type-descriptor table.
type TypeDescriptor struct {
	Kind        TypeKind
	WireSize    uint32
	Description string

	Array  *ArrayDescriptor  // non-nil iff Kind == KindArray
	Struct *StructDescriptor // non-nil iff Kind == KindStruct
	// PointerTarget is the target type index, valid iff Kind == KindPointer.
	PointerTarget int
}

// ParameterRecord is one addressable parameter entry in the SDB.
type ParameterRecord struct {
	ID         uint32
	AccessMode AccessMode
	Flags1     uint16
	Flags2     uint16
	TypeIndex  int
	Name       string
}
