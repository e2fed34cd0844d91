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

// Package series provides the data side of expression evaluation: timelines
// of bars, series of values on them, Field leaf nodes reading those values
// and frames loaded from YAML files.
//
// A Timeline is the previous-value provider of every field on it. Fields of
// one frame share their timeline, so crossings between them take the shared
// provider form after simplification.
package series
