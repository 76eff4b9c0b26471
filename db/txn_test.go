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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/abcum/surreal/kvs/mem"
)

func TestTxnGetPutDel(t *testing.T) {

	Convey("A Txn reads back what it wrote, and forgets it after Cancel", t, func() {

		store, err := mem.New()
		So(err, ShouldBeNil)

		txn := &Txn{}

		So(txn.begin(store, true), ShouldBeNil)
		So(txn.open(), ShouldBeTrue)

		So(txn.put([]byte("greeting"), []byte("hello")), ShouldBeNil)

		val, err := txn.get([]byte("greeting"))
		So(err, ShouldBeNil)
		So(string(val), ShouldEqual, "hello")

		So(txn.del([]byte("greeting")), ShouldBeNil)

		So(txn.cancel(), ShouldBeNil)
		So(txn.open(), ShouldBeFalse)

		_, err = txn.get([]byte("greeting"))
		So(err, ShouldNotBeNil)

	})

}
