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

package limiter

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/abcum/surreal/cnf"
)

// These three tests mirror the rate()/burst()/expiry() tests in the
// original Rust src/net/limiter.rs, kept under
// _examples/original_source/ for reference.

func TestRate(t *testing.T) {

	Convey("A session is allowed once per tick and denied in between", t, func() {

		l := New(1, 0)
		now := time.Now()
		sess := Session{IP: "203.0.113.9:51234"}

		So(l.shouldAllowAt(sess, now), ShouldBeTrue)
		So(l.shouldAllowAt(sess, now), ShouldBeFalse)
		So(l.shouldAllowAt(sess, now.Add(999*time.Millisecond)), ShouldBeFalse)
		So(l.shouldAllowAt(sess, now.Add(1001*time.Millisecond)), ShouldBeTrue)

	})

}

func TestBurst(t *testing.T) {

	Convey("Burst allowance permits a short run of requests beyond the base rate", t, func() {

		l := New(1, 3)
		now := time.Now()
		sess := Session{IP: "203.0.113.9:51234"}

		allowed := 0
		for i := 0; i < 6; i++ {
			if l.shouldAllowAt(sess, now) {
				allowed++
			}
		}

		// One immediate admission plus up to burst(3) extra, each
		// advancing the virtual clock by durPerReq, before the bucket
		// is exhausted.
		So(allowed, ShouldEqual, 4)

	})

}

func TestExpiry(t *testing.T) {

	Convey("A stale entry is pruned once pruneInterval has elapsed since last access", t, func() {

		l := New(1, 0)
		now := time.Now()
		sess := Session{IP: "203.0.113.9:51234"}

		So(l.shouldAllowAt(sess, now), ShouldBeTrue)
		So(l.limits, ShouldContainKey, unit{kind: unitIP, val: "203.0.113.9"})

		later := now.Add(l.pruneInterval + time.Second)
		otherSess := Session{IP: "198.51.100.4:9999"}
		So(l.shouldAllowAt(otherSess, later), ShouldBeTrue)

		So(l.limits, ShouldNotContainKey, unit{kind: unitIP, val: "203.0.113.9"})

	})

}

func TestRootBypass(t *testing.T) {

	Convey("Root (KV) auth is never rate limited", t, func() {

		l := New(1, 0)
		now := time.Now()
		sess := Session{Auth: cnf.RootAuth(), IP: "203.0.113.9:51234"}

		for i := 0; i < 10; i++ {
			So(l.shouldAllowAt(sess, now), ShouldBeTrue)
		}
		So(l.limits, ShouldBeEmpty)

	})

}

func TestNamespaceKeyed(t *testing.T) {

	Convey("A namespace-authenticated session is limited per namespace, not per IP", t, func() {

		l := New(1, 0)
		now := time.Now()

		a := Session{Auth: cnf.NsAuth("prod"), IP: "203.0.113.9:1"}
		b := Session{Auth: cnf.NsAuth("prod"), IP: "198.51.100.4:2"}

		So(l.shouldAllowAt(a, now), ShouldBeTrue)
		So(l.shouldAllowAt(b, now), ShouldBeFalse)

	})

}

func TestNormalizeIPv6Prefix(t *testing.T) {

	Convey("Two IPv6 addresses sharing a /48 prefix are treated as the same unit", t, func() {

		l := New(1, 0)
		now := time.Now()

		a := Session{IP: "[2001:db8:1234:0001::1]:51234"}
		b := Session{IP: "[2001:db8:1234:ffff::9]:443"}

		So(normalizeIP("2001:db8:1234:0001::1"), ShouldEqual, normalizeIP("2001:db8:1234:ffff::9"))
		So(l.shouldAllowAt(a, now), ShouldBeTrue)
		So(l.shouldAllowAt(b, now), ShouldBeFalse)

	})

}
