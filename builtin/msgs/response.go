// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package msgs

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

func NewEvent(typ string) Event {
	return Event{Type: typ}
}

func (e Event) Add(key, value string) Event {
	e.Attributes = append(e.Attributes, Attribute{key, value})
	return e
}

// Attribute returns the first value under key.
func (e Event) Attribute(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Response is what a contract returns from execute, instantiate or reply.
type Response struct {
	Messages   []SubMsg
	Attributes []Attribute
	Events     []Event
	Data       []byte
}

func NewResponse() *Response {
	return &Response{}
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{key, value})
	return r
}

func (r *Response) AddMessage(msg Msg) *Response {
	r.Messages = append(r.Messages, NewSubMsg(msg))
	return r
}

func (r *Response) AddSubMessage(sub SubMsg) *Response {
	r.Messages = append(r.Messages, sub)
	return r
}

func (r *Response) AddEvent(e Event) *Response {
	r.Events = append(r.Events, e)
	return r
}

// Attribute returns the first value under key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SubMsgResponse is the successful outcome of a submessage.
type SubMsgResponse struct {
	Events []Event
	Data   []byte
}

// SubMsgResult is either Ok or Err.
type SubMsgResult struct {
	Ok  *SubMsgResponse
	Err string
}

func (r SubMsgResult) IsOk() bool {
	return r.Ok != nil
}

// Reply delivers a submessage result to the contract that emitted it.
type Reply struct {
	ID     uint64
	Result SubMsgResult
}
