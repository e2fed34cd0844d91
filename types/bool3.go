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

// Bool3 is a three-valued boolean. The zero value is Unknown.
type Bool3 int8

const (
	Unknown Bool3 = iota
	False
	True
)

// Of converts a plain bool.
func Of(b bool) Bool3 {
	if b {
		return True
	}
	return False
}

// String returns "true", "false" or "unknown"
func (b Bool3) String() string {
	switch b {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// IsKnown reports whether b is True or False.
func (b Bool3) IsKnown() bool {
	return b == True || b == False
}

// IsTrue reports whether b is exactly True. Unknown is not true.
func (b Bool3) IsTrue() bool {
	return b == True
}

// Not negates b. Unknown stays Unknown.
func (b Bool3) Not() Bool3 {
	switch b {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}
