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

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/hjson/hjson-go"
)

// Options defines global configuration options for the query core and its
// immediate ambient concerns. The wider server surface (web/tcp ports,
// clustering, certificates) is an external collaborator and is not
// represented here.
type Options struct {
	DB struct {
		Path string // Path to the backing datastore, consumed by kvs.Open
		Base string // Base key prefix to use in the KV store
	}

	Auth struct {
		Auth string // Master authentication username:password
		User string // Master authentication username
		Pass string // Master authentication password
	}

	Logging struct {
		Level  string // logrus level name
		Output string // stdout | stderr | none
		Format string // text | json
	}

	Query struct {
		MaxRecursiveQueries int           // Parser recursion cap
		RateLimit           float64       // Admitted requests per second, per blockable unit
		RateLimitBurst      uint16        // Extra requests tolerated instantaneously
		ProtectedParams     []string      // Reserved context variable names that Set may never overwrite
		DefaultTimeout      time.Duration // Used by callers that don't set a per-statement TIMEOUT
	}
}

// Settings holds the process-wide configuration, loaded once at startup by
// Load (and overlaid by Env). Mirrors the teacher's top-level cnf.Settings global.
var Settings = defaults()

func defaults() *Options {
	o := &Options{}
	o.DB.Base = "surreal"
	o.Logging.Level = "info"
	o.Logging.Output = "stdout"
	o.Logging.Format = "text"
	o.Query.MaxRecursiveQueries = 50
	o.Query.RateLimit = 100
	o.Query.RateLimitBurst = 5
	o.Query.ProtectedParams = append([]string{}, defaultProtectedParams...)
	o.Query.DefaultTimeout = 0
	return o
}

// defaultProtectedParams enumerates the reserved context variable names a
// Set statement may never bind to. Grounded in the teacher's ctxKeyId /
// ctxKeyAuth / varKeyId / varKeyAuth / ... constants in db/vars.go, which
// name exactly these runtime-injected values.
var defaultProtectedParams = []string{
	"session",
	"auth",
	"token",
	"scope",
	"this",
	"parent",
	"value",
	"before",
	"after",
	"event",
}

// Load reads an hjson configuration file from path and replaces Settings
// with the parsed result, falling back to the compiled-in defaults for any
// field the file omits.
func Load(path string) (err error) {

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	var parsed map[string]interface{}
	if err = hjson.Unmarshal(raw, &parsed); err != nil {
		return err
	}

	opts := defaults()
	applyHjson(opts, parsed)
	Settings = opts

	return nil

}

func applyHjson(opts *Options, parsed map[string]interface{}) {

	if v, ok := parsed["path"].(string); ok {
		opts.DB.Path = v
	}
	if v, ok := parsed["base"].(string); ok {
		opts.DB.Base = v
	}
	if v, ok := parsed["auth"].(string); ok {
		opts.Auth.Auth = v
	}
	if v, ok := parsed["log-level"].(string); ok {
		opts.Logging.Level = v
	}
	if v, ok := parsed["log-output"].(string); ok {
		opts.Logging.Output = v
	}
	if v, ok := parsed["log-format"].(string); ok {
		opts.Logging.Format = v
	}
	if v, ok := parsed["max-recursive-queries"].(float64); ok {
		opts.Query.MaxRecursiveQueries = int(v)
	}
	if v, ok := parsed["rate-limit"].(float64); ok {
		opts.Query.RateLimit = v
	}
	if v, ok := parsed["rate-limit-burst"].(float64); ok {
		opts.Query.RateLimitBurst = uint16(v)
	}

}

// Env overlays the SURREAL_PATH and SURREAL_LOG_LEVEL environment
// variables onto Settings; no other variable is read.
// Kept separate from Load so a config file and environment overrides can be
// combined in the order the caller prefers.
func Env() {

	if v := os.Getenv("SURREAL_PATH"); v != "" {
		Settings.DB.Path = v
	}
	if v := os.Getenv("SURREAL_LOG_LEVEL"); v != "" {
		Settings.Logging.Level = v
	}

}
