// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestNewBoundedCapacity(t *testing.T) {
	bounded, err := NewBounded[int, Cap4](1, 2, 3, 4)
	if err != nil {
		t.Fatalf("NewBounded at capacity: %v", err)
	}
	if bounded.Len() != 4 || bounded.Cap() != 4 {
		t.Errorf("Len/Cap = %d/%d, want 4/4", bounded.Len(), bounded.Cap())
	}

	_, err = NewBounded[int, Cap4](1, 2, 3, 4, 5)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("NewBounded over capacity = %v, want ErrCapacityExceeded", err)
	}
	if KindOf(err) != CapacityExceeded {
		t.Errorf("KindOf = %s, want capacity_exceeded", KindOf(err))
	}
}

func TestBoundedAppendNoGrowth(t *testing.T) {
	var bounded Bounded[string, Cap8]
	for i := range 8 {
		if err := bounded.Append("x"); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		if cap(bounded.items) != 8 {
			t.Fatalf("backing capacity after %d appends = %d, want 8", i+1, cap(bounded.items))
		}
	}
	if err := bounded.Append("overflow"); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Append past capacity = %v, want ErrCapacityExceeded", err)
	}
	if bounded.Len() != 8 {
		t.Errorf("Len after rejected Append = %d, want 8", bounded.Len())
	}
}

func TestBoundedRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		items []uint32
	}{
		{"empty", nil},
		{"one", []uint32{7}},
		{"full", []uint32{1, 1 << 20, 3, 4, 5, 6, 7, 8}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			original := MustBounded[uint32, Cap8](test.items...)
			encoder := NewEncoder(0)
			original.Encode(encoder, func(e *Encoder, v uint32) { e.Uvarint(uint64(v)) })

			decoder := NewDecoder(encoder.Bytes())
			decoded := DecodeBounded[uint32, Cap8](decoder, "values", 1, func(d *Decoder) uint32 {
				return d.Uint32("value")
			})
			if err := decoder.Finish(); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(decoded, original) {
				t.Errorf("decoded %v, want %v", decoded.Items(), original.Items())
			}
		})
	}
}

func TestDecodeBoundedOverCapacity(t *testing.T) {
	large := MustBounded[uint32, Cap16](1, 2, 3, 4, 5)
	encoder := NewEncoder(0)
	large.Encode(encoder, func(e *Encoder, v uint32) { e.Uvarint(uint64(v)) })

	decoder := NewDecoder(encoder.Bytes())
	DecodeBounded[uint32, Cap4](decoder, "values", 1, func(d *Decoder) uint32 { return d.Uint32("value") })
	if !errors.Is(decoder.Err(), ErrCapacityExceeded) {
		t.Fatalf("decode into smaller capacity = %v, want ErrCapacityExceeded", decoder.Err())
	}
}

func TestBoundedJSON(t *testing.T) {
	original := MustBounded[string, Cap4]("a", "b")
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Errorf("Marshal = %s", data)
	}

	var decoded Bounded[string, Cap4]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("Unmarshal = %v, want %v", decoded.Items(), original.Items())
	}

	if err := json.Unmarshal([]byte(`["1","2","3","4","5"]`), &decoded); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Unmarshal over capacity = %v, want ErrCapacityExceeded", err)
	}
}
