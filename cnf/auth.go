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

package cnf

// Auth describes the authentication level a connection was admitted under.
// It is a closed sum type over four cases:
//
//	No        - authentication disabled entirely
//	Kv        - root / master access
//	Ns(NS)    - scoped to a single namespace
//	Db(NS,DB) - scoped to a single namespace + database
//
// Only NS and/or DB are meaningful, depending on Kind; callers should not
// read them without checking Kind first.
type Auth struct {
	Kind Kind
	NS   string
	DB   string
}

// NoAuth returns an Auth value with authentication disabled.
func NoAuth() *Auth {
	return &Auth{Kind: AuthNO}
}

// RootAuth returns an Auth value for a root (KV) session.
func RootAuth() *Auth {
	return &Auth{Kind: AuthKV}
}

// NsAuth returns an Auth value scoped to a single namespace.
func NsAuth(ns string) *Auth {
	return &Auth{Kind: AuthNS, NS: ns}
}

// DbAuth returns an Auth value scoped to a single namespace + database.
func DbAuth(ns, db string) *Auth {
	return &Auth{Kind: AuthDB, NS: ns, DB: db}
}

// Reset clears the authentication data back to the disabled state.
func (a *Auth) Reset() *Auth {
	a.Kind = AuthNO
	a.NS = ""
	a.DB = ""
	return a
}
