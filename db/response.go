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
	"bytes"
	"errors"
	"time"

	"github.com/ugorji/go/codec"
)

// Response is the per-statement result the executor appends to its
// output buffer. Grounded in db/db.go's Response struct (same codec
// tags, for the same github.com/ugorji/go/codec wire encoding), but
// generalized to carry a real `error` instead of a pre-rendered
// Status/Detail string pair — callers that need the teacher's wire
// shape get it back out via Status()/Detail().
type Response struct {
	Time   time.Duration `codec:"time,omitempty"`
	Result interface{}   `codec:"result,omitempty"`
	Err    error         `codec:"-"`
}

// Status renders the teacher's wire status for this response: "OK" on
// success, "ERR" for any error.
func (r *Response) Status() string {
	if r.Err == nil {
		return "OK"
	}
	return "ERR"
}

// Detail renders the teacher's error-detail wire string for this
// response.
func (r *Response) Detail() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// wireResponse is the struct actually handed to codec, since the
// wire format needs Status/Detail strings rather than a Go error value.
type wireResponse struct {
	Time   string      `codec:"time,omitempty"`
	Status string      `codec:"status,omitempty"`
	Detail string      `codec:"detail,omitempty"`
	Result interface{} `codec:"result,omitempty"`
}

func (r *Response) toWire() *wireResponse {
	return &wireResponse{
		Time:   r.Time.String(),
		Status: r.Status(),
		Detail: r.Detail(),
		Result: r.Result,
	}
}

var handle codec.MsgpackHandle

// MarshalBinary encodes the response using the msgpack handle the
// teacher's wire layer (web/, tcp/) was built on top of.
func (r *Response) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, &handle)
	if err := enc.Encode(r.toWire()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a response previously produced by
// MarshalBinary. The decoded Err is reconstructed as a generic error
// carrying Detail's text, since the concrete error type is not
// preserved across the wire.
func (r *Response) UnmarshalBinary(data []byte) error {

	var w wireResponse

	dec := codec.NewDecoderBytes(data, &handle)
	if err := dec.Decode(&w); err != nil {
		return err
	}

	d, _ := time.ParseDuration(w.Time)

	r.Time = d
	r.Result = w.Result
	r.Err = nil
	if w.Status != "OK" && w.Status != "" {
		r.Err = errors.New(w.Detail)
	}

	return nil

}
