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

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseEmpty(t *testing.T) {

	Convey("Blank or whitespace-only input is rejected with EmptyError", t, func() {

		for _, src := range []string{"", "   ", "\n\t \n"} {
			q, err := Parse(src)
			So(q, ShouldBeNil)
			So(err, ShouldHaveSameTypeAs, &EmptyError{})
		}

	})

}

func TestParseHappyPath(t *testing.T) {

	Convey("A well-formed single statement parses to one non-empty Query", t, func() {

		q, err := Parse("SELECT * FROM test;")
		So(err, ShouldBeNil)
		So(q.Statements, ShouldHaveLength, 1)

	})

}

func TestParseDepthReleasesOnError(t *testing.T) {

	Convey("The depth counter returns to zero after a parse error raised mid-recursion", t, func() {

		p := NewParser()
		_, err := p.parse("RETURN (((1;")

		So(err, ShouldNotBeNil)
		So(p.depth.n, ShouldEqual, 0)

	})

}

func TestParseDepthReleasesOnSuccess(t *testing.T) {

	Convey("The depth counter returns to zero after a nested expression parses cleanly", t, func() {

		p := NewParser()
		_, err := p.parse("RETURN (((1)));")

		So(err, ShouldBeNil)
		So(p.depth.n, ShouldEqual, 0)

	})

}

func TestParseTooManySubqueries(t *testing.T) {

	Convey("Nesting beyond the recursion cap rejects quickly with ExcessiveDepthError", t, func() {

		src := "RETURN " + strings.Repeat("(", 10000) + "1;"

		start := time.Now()
		_, err := Parse(src)
		elapsed := time.Since(start)

		So(err, ShouldHaveSameTypeAs, &ExcessiveDepthError{})
		So(elapsed, ShouldBeLessThan, 150*time.Millisecond)

	})

}

func TestParseDiagnosticLocation(t *testing.T) {

	Convey("A syntax error on the second line is located by line and character", t, func() {

		_, err := Parse("RETURN 1;\nRETURN @;")

		invalid, ok := err.(*InvalidQueryError)
		So(ok, ShouldBeTrue)
		So(invalid.Line, ShouldEqual, 2)
		So(invalid.Char, ShouldEqual, 9)

	})

}
