// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"fmt"
	"slices"
)

// marshalEnum and unmarshalEnum implement the text form of the small
// enumerations in this package: the snake_case name of each value.

func marshalEnum(value fmt.Stringer, valid bool) ([]byte, error) {
	if !valid {
		return nil, fmt.Errorf("plasma: cannot marshal %s", value)
	}
	return []byte(value.String()), nil
}

func unmarshalEnum[E ~uint8](target *E, typeName string, names []string, text []byte) error {
	index := slices.Index(names, string(text))
	if index < 0 {
		return fmt.Errorf("plasma: unknown %s %q", typeName, text)
	}
	*target = E(index)
	return nil
}
