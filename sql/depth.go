// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

// depth tracks how many nested expression productions the parser is
// currently inside of, guarding against stack-exhausting input. Ported
// from the Rust parser's `depth` module (original_source/lib/src/sql/
// parser.rs): there, a thread-local Cell<u32> is incremented by a
// `dive()` call that returns a Drop guard, so every return path — ok or
// err — releases the count. Go has no Drop, so dive() here returns a
// release func the caller must invoke with defer on every exit path;
// there is deliberately no bare increment/decrement pair anywhere in
// this package.
type depth struct {
	n   int
	max int
}

func newDepth(max int) *depth {
	return &depth{max: max}
}

// reset clears the counter back to zero. Called once per top-level
// Parse, mirroring the Rust depth::reset() called at the start of
// parse_impl.
func (d *depth) reset() {
	d.n = 0
}

// dive enters one more level of nested expression parsing. It returns
// an error when doing so would exceed the configured maximum, and
// otherwise a release func that must be deferred immediately:
//
//	release, err := p.depth.dive()
//	if err != nil {
//		return nil, err
//	}
//	defer release()
func (d *depth) dive() (release func(), err error) {
	if d.n >= d.max {
		return nil, &ExcessiveDepthError{Max: d.max}
	}
	d.n++
	return func() { d.n-- }, nil
}
