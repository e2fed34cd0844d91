/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"fmt"
	"strings"
	"time"
)

// KeyKind is the indexing domain of an evaluation call.
type KeyKind int

const (
	// KeyNone evaluates without a position.
	KeyNone KeyKind = iota
	// KeyIndex evaluates at an integer bar index.
	KeyIndex
	// KeyTime evaluates at a timestamp.
	KeyTime
)

// String returns the keying name used in diagnostics
func (k KeyKind) String() string {
	switch k {
	case KeyNone:
		return "unkeyed"
	case KeyIndex:
		return "index"
	case KeyTime:
		return "timestamp"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known kinds.
func (k KeyKind) Valid() bool {
	return k >= KeyNone && k <= KeyTime
}

// ParseKeyKind accepts "none", "index" and "time" (or "timestamp").
func ParseKeyKind(s string) (KeyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "unkeyed":
		return KeyNone, nil
	case "index", "":
		return KeyIndex, nil
	case "time", "timestamp":
		return KeyTime, nil
	default:
		return KeyNone, fmt.Errorf("unknown key kind %q", s)
	}
}

// Key is the position an expression is evaluated at. It is a small value type
// so evaluation never allocates for it.
type Key struct {
	kind    KeyKind
	index   int
	ts      time.Time
	invalid bool
}

// NoKey is the key of unkeyed evaluation.
var NoKey = Key{}

// IndexKey returns an integer-indexed key.
func IndexKey(i int) Key {
	return Key{kind: KeyIndex, index: i}
}

// TimeKey returns a timestamp key.
func TimeKey(t time.Time) Key {
	return Key{kind: KeyTime, ts: t}
}

// InvalidKey returns a key of the given kind that points before the start of
// a series. Values looked up at it are NaN.
func InvalidKey(kind KeyKind) Key {
	return Key{kind: kind, index: -1, invalid: true}
}

func (k Key) Kind() KeyKind { return k.kind }

func (k Key) Index() int { return k.index }

func (k Key) Time() time.Time { return k.ts }

// Valid reports whether the key points at a real position.
func (k Key) Valid() bool { return !k.invalid }

func (k Key) String() string {
	if k.invalid {
		return "<none>"
	}
	switch k.kind {
	case KeyIndex:
		return fmt.Sprintf("%d", k.index)
	case KeyTime:
		return k.ts.Format(time.RFC3339)
	default:
		return "-"
	}
}
