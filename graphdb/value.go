// Copyright 2026 The ILP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graphdb

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Value is a typed attribute value as carried by a Has/HasValue literal or a
// categorical attribute's enumerated values. It is backed by structpb.Value
// so that booleans, numbers, strings and null all share one comparable,
// renderable representation.
type Value struct {
	pb *structpb.Value
}

// BoolValue constructs a boolean Value.
func BoolValue(b bool) Value { return Value{structpb.NewBoolValue(b)} }

// NumberValue constructs a numeric Value.
func NumberValue(f float64) Value { return Value{structpb.NewNumberValue(f)} }

// StringValue constructs a string Value.
func StringValue(s string) Value { return Value{structpb.NewStringValue(s)} }

// AsBool reports whether this Value is a boolean and returns it.
func (v Value) AsBool() (bool, bool) {
	if v.pb == nil {
		return false, false
	}
	b, ok := v.pb.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, false
	}
	return b.BoolValue, true
}

// AsNumber reports whether this Value is numeric and returns it.
func (v Value) AsNumber() (float64, bool) {
	if v.pb == nil {
		return 0, false
	}
	n, ok := v.pb.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return n.NumberValue, true
}

// AsString reports whether this Value is a string and returns it.
func (v Value) AsString() (string, bool) {
	if v.pb == nil {
		return "", false
	}
	s, ok := v.pb.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false
	}
	return s.StringValue, true
}

// Equal reports structural equality, used by categorical-value deduplication
// in schema discovery.
func (v Value) Equal(o Value) bool {
	if v.pb == nil || o.pb == nil {
		return v.pb == o.pb
	}
	return v.pb.GetKind() == o.pb.GetKind() ||
		(v.Render() == o.Render())
}

// Render renders the value the way it must appear inside an emitted clause
// literal (§4.2/§6): quoted strings, bare booleans and numbers.
func (v Value) Render() string {
	if v.pb == nil {
		return "null"
	}
	switch k := v.pb.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return fmt.Sprintf("%t", k.BoolValue)
	case *structpb.Value_NumberValue:
		if k.NumberValue == float64(int64(k.NumberValue)) {
			return fmt.Sprintf("%d", int64(k.NumberValue))
		}
		return fmt.Sprintf("%g", k.NumberValue)
	case *structpb.Value_StringValue:
		return fmt.Sprintf("%q", k.StringValue)
	default:
		return v.pb.String()
	}
}

func (v Value) String() string { return v.Render() }
