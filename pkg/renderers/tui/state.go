package tui

import (
	"fmt"
	"net/url"

	"github.com/goliatone/go-roleform/pkg/registration"
)

// State accumulates answers in the same shape a browser submission has, so
// the terminal flow decodes and validates exactly like the HTTP form.
type State struct {
	values url.Values
}

// NewState seeds answers from prefill values. Slices become repeated keys.
func NewState(initial map[string]any) *State {
	s := &State{values: url.Values{}}
	for name, value := range initial {
		switch v := value.(type) {
		case nil:
		case string:
			s.values.Set(name, v)
		case []string:
			s.SetList(name, v)
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				list = append(list, fmt.Sprint(item))
			}
			s.SetList(name, list)
		default:
			s.values.Set(name, fmt.Sprint(v))
		}
	}
	return s
}

func (s *State) Get(name string) string { return s.values.Get(name) }

func (s *State) List(name string) []string {
	return append([]string(nil), s.values[name]...)
}

func (s *State) Set(name, value string) { s.values.Set(name, value) }

func (s *State) SetList(name string, values []string) {
	if len(values) == 0 {
		s.values.Del(name)
		return
	}
	s.values[name] = append([]string(nil), values...)
}

// Clear drops the answers of the named fields.
func (s *State) Clear(names ...string) {
	for _, name := range names {
		s.values.Del(name)
	}
}

// FormData decodes the answers.
func (s *State) FormData() registration.FormData {
	return registration.Decode(s.values)
}
