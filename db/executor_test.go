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

package db

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/abcum/surreal/cnf"
	"github.com/abcum/surreal/kvs/mem"
	"github.com/abcum/surreal/sql"
)

func newTestExecutor(t *testing.T) *Executor {
	store, err := mem.New()
	if err != nil {
		t.Fatalf("failed to create in-memory store: %v", err)
	}
	return NewExecutor(store)
}

func TestExecuteUseAndSet(t *testing.T) {

	Convey("Set creates a variable visible to a later Output", t, func() {

		e := newTestExecutor(t)

		txt := `
		USE NS test DB test;
		LET $temp = "hello";
		RETURN $temp;
		`

		res, err := e.Execute(context.Background(), cnf.RootAuth(), txt, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 3)
		So(res[0].Err, ShouldBeNil)
		So(res[1].Err, ShouldBeNil)
		So(res[2].Err, ShouldBeNil)
		So(res[2].Result, ShouldEqual, "hello")

	})

}

// writeableExpr is a synthetic sql.Value whose Writeable() is
// configurable, used to exercise SetStatement's Writeable() delegation
// (none of the real expression kinds in sql/value.go implement it).
type writeableExpr struct{ w bool }

func (w writeableExpr) Writeable() bool { return w.w }

func TestRunSetCancelsOnError(t *testing.T) {

	Convey("A failing writeable Set cancels its implicit transaction instead of committing", t, func() {

		e := newTestExecutor(t)

		stm := &sql.SetStatement{Name: "session", Expr: writeableExpr{w: true}}

		res, err := e.runSet(context.Background(), stm)

		So(res, ShouldBeNil)
		So(err, ShouldHaveSameTypeAs, &InvalidParam{})
		So(e.txn.open(), ShouldBeFalse)

	})

}

func TestExecutePoisonedBlock(t *testing.T) {

	Convey("A failing statement poisons the rest of the explicit block", t, func() {

		e := newTestExecutor(t)

		txt := `
		BEGIN;
		LET $session = 1;
		RETURN 1;
		COMMIT;
		`

		res, err := e.Execute(context.Background(), cnf.RootAuth(), txt, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldNotBeNil)

	})

}

func TestExecuteCancelWipesBlock(t *testing.T) {

	Convey("Cancel rewrites every buffered response to QueryCancelled", t, func() {

		e := newTestExecutor(t)

		txt := `
		BEGIN;
		CREATE a;
		CREATE b;
		CANCEL;
		`

		res, err := e.Execute(context.Background(), cnf.RootAuth(), txt, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 2)
		So(res[0].Err, ShouldEqual, QueryCancelled)
		So(res[1].Err, ShouldEqual, QueryCancelled)

	})

}

func TestExecuteUsePermission(t *testing.T) {

	Convey("A namespace-scoped session cannot switch to another namespace", t, func() {

		e := newTestExecutor(t)

		res, err := e.Execute(context.Background(), cnf.NsAuth("prod"), `USE NS staging;`, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldHaveSameTypeAs, &NsNotAllowed{})
		So(e.opt.NS, ShouldEqual, "")

	})

	Convey("A namespace-scoped session can switch database freely", t, func() {

		e := newTestExecutor(t)

		res, err := e.Execute(context.Background(), cnf.NsAuth("prod"), `USE NS prod DB staging;`, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldBeNil)
		So(e.opt.DB, ShouldEqual, "staging")

	})

	Convey("A rejected USE NS leaves an already-selected DB untouched", t, func() {

		e := newTestExecutor(t)
		e.opt.DB = "staging"

		res, err := e.Execute(context.Background(), cnf.NsAuth("prod"), `USE NS other;`, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldHaveSameTypeAs, &NsNotAllowed{})
		So(e.opt.NS, ShouldEqual, "")
		So(e.opt.DB, ShouldEqual, "staging")

	})

}

func TestExecuteOption(t *testing.T) {

	Convey("An unauthenticated session is rejected with OptionNotAllowed", t, func() {

		e := newTestExecutor(t)

		res, err := e.Execute(context.Background(), cnf.NoAuth(), `OPTION FORCE = true;`, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldHaveSameTypeAs, &OptionNotAllowed{})

	})

	Convey("A namespace-scoped session may set a recognised option", t, func() {

		e := newTestExecutor(t)

		res, err := e.Execute(context.Background(), cnf.NsAuth("prod"), `OPTION FORCE = true;`, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldBeNil)
		So(e.opt.Force, ShouldBeTrue)

	})

	Convey("An authenticated session naming an unrecognised option gets UnknownOption, not OptionNotAllowed", t, func() {

		e := newTestExecutor(t)

		res, err := e.Execute(context.Background(), cnf.RootAuth(), `OPTION NOTREAL = true;`, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldHaveSameTypeAs, &UnknownOption{})

	})

}

func TestExecuteTimeout(t *testing.T) {

	Convey("A statement whose body outlives its TIMEOUT returns QueryTimedout and cancels the implicit transaction", t, func() {

		e := newTestExecutor(t)

		stm := &sql.OtherStatement{Verb: sql.CREATE}

		res, err := e.runOther(context.Background(), stm, true, time.Millisecond, func(ctx context.Context) (interface{}, error) {
			<-ctx.Done()
			return "unreachable", nil
		})

		So(res, ShouldBeNil)
		So(err, ShouldEqual, QueryTimedout)
		So(e.txn.open(), ShouldBeFalse)

	})

	Convey("A statement that finishes before its TIMEOUT is unaffected", t, func() {

		e := newTestExecutor(t)

		res, err := e.Execute(context.Background(), cnf.RootAuth(), `SELECT 1 TIMEOUT 1h;`, nil)
		So(err, ShouldBeNil)
		So(res, ShouldHaveLength, 1)
		So(res[0].Err, ShouldBeNil)

	})

}
