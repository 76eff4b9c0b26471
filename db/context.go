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

	"github.com/abcum/surreal/cnf"
)

type ctxKey int

const (
	ctxKeyId ctxKey = iota
	ctxKeyAuth
	ctxKeyVars
	ctxKeySession
)

// withID attaches a request id to ctx, surfaced in every log line the
// executor emits for that request (see executor.go's use of log.WithFields).
func withID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyId, id)
}

func idOf(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyId).(string); ok {
		return v
	}
	return ""
}

// withAuth attaches the session's authentication level, consulted by
// executeUse and executeOption when deciding whether a session may
// switch namespace/database or set an option.
func withAuth(ctx context.Context, auth *cnf.Auth) context.Context {
	return context.WithValue(ctx, ctxKeyAuth, auth)
}

func authOf(ctx context.Context) *cnf.Auth {
	if v, ok := ctx.Value(ctxKeyAuth).(*cnf.Auth); ok {
		return v
	}
	return cnf.NoAuth()
}

// withVars attaches the per-request bound-parameter table a SetStatement
// writes into and a Param expression reads from. Grounded in the
// teacher's LetStatement/Param handling (db/let.go), generalised from a
// single flat map search order (paramSearchKeys in db/vars.go) down to
// one map, since the richer "spec"/"subs"/"keep" layers belonged to the
// compute layer this module does not implement.
func withVars(ctx context.Context, vars map[string]interface{}) context.Context {
	return context.WithValue(ctx, ctxKeyVars, vars)
}

func varsOf(ctx context.Context) map[string]interface{} {
	if v, ok := ctx.Value(ctxKeyVars).(map[string]interface{}); ok {
		return v
	}
	return nil
}

// Session is the context-held Value a successful Use statement writes
// its new NS/DB into (spec §6's "session" Value consumed/mutated by the
// executor). It is carried as a pointer so mutations made partway
// through a query are visible to every statement still to come without
// re-threading the context.
type Session struct {
	NS string
	DB string
}

// withSession attaches the request's Session, created once in Execute
// and mutated in place by executeUse.
func withSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, sess)
}

func sessionOf(ctx context.Context) *Session {
	if v, ok := ctx.Value(ctxKeySession).(*Session); ok {
		return v
	}
	return nil
}
