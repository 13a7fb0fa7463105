package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TaskID is the join key between the open-task list and the claimed set.
// The backend sends integers, but string ids are accepted too.
type TaskID string

func (id TaskID) String() string { return string(id) }

// Int returns the numeric value of the id, if it has one.
func (id TaskID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// Compare is a total order: integer ids first, numerically, then the rest
// lexicographically. Integer ties such as "7" and "007" fall back to the text.
func (id TaskID) Compare(other TaskID) int {
	a, aok := id.Int()
	b, bok := other.Int()
	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case aok && bok && a != b:
		if a < b {
			return -1
		}
		return 1
	}
	return strings.Compare(string(id), string(other))
}

func (id TaskID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *TaskID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task id must be a number or string: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

// LocalizedText is either a plain string or a language-keyed map ("raw" task variant).
type LocalizedText struct {
	Plain  string
	ByLang map[string]string
}

func PlainText(s string) LocalizedText { return LocalizedText{Plain: s} }

func MultiText(byLang map[string]string) LocalizedText { return LocalizedText{ByLang: byLang} }

// In returns the text for lang from the multilingual map.
func (t LocalizedText) In(lang string) (string, bool) {
	s, ok := t.ByLang[lang]
	return s, ok && s != ""
}

func (t LocalizedText) IsMultilingual() bool { return len(t.ByLang) > 0 }

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.IsMultilingual() {
		return json.Marshal(t.ByLang)
	}
	return json.Marshal(t.Plain)
}

func (t *LocalizedText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = LocalizedText{}
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '{':
		return json.Unmarshal(b, &t.ByLang)
	default:
		return json.Unmarshal(b, &t.Plain)
	}
}

// Task is one unit of claimable work as the backend lists it.
type Task struct {
	ID           TaskID        `json:"id"`
	Title        LocalizedText `json:"title"`
	Description  string        `json:"description"`
	Requirements string        `json:"requirements,omitempty"`
	TaskType     string        `json:"task_type"`
	Reward       Wei           `json:"reward"`
	Deadline     int64         `json:"deadline"`
	Publisher    string        `json:"publisher"`
	IsClaimed    bool          `json:"is_claimed,omitempty"`
	IsCompleted  bool          `json:"is_completed,omitempty"`
}
