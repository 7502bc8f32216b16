// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders a Value the way the CLI's read-all-params output
// does: scalars as native JSON types, Array/Matrix as JSON arrays, Struct
// as an ordered JSON object (field order preserved, unlike map[string]any).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.boolV)
	case KindInt:
		return json.Marshal(v.intV)
	case KindFloat:
		return json.Marshal(v.floatV)
	case KindString:
		return json.Marshal(v.stringV)
	case KindArray:
		return json.Marshal(v.arrayV)
	case KindMatrix:
		return json.Marshal(v.matrixV)
	case KindStruct:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range v.structV {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return []byte("null"), nil
}
