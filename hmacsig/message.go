package hmacsig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Message.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindMapping
	KindSequence
)

// Message is a JSON-serializable value to be signed: text, number, boolean,
// null, mapping, or sequence. Each variant has exactly one canonical
// encoding, so the same logical value always produces the same bytes on
// both the signing and the verifying side.
type Message struct {
	kind     Kind
	text     string
	num      json.Number
	boolean  bool
	mapping  map[string]*Message
	sequence []*Message
}

// Null returns the null message.
func Null() *Message {
	return &Message{kind: KindNull}
}

// Text returns a text message. Text messages are digested as-is, without
// JSON quoting.
func Text(s string) *Message {
	return &Message{kind: KindText, text: s}
}

// Int returns a numeric message holding an integer.
func Int(i int64) *Message {
	return &Message{kind: KindNumber, num: json.Number(strconv.FormatInt(i, 10))}
}

// Number returns a numeric message. Non-finite values (NaN, ±Inf) have no
// JSON representation and are rejected.
func Number(f float64) (*Message, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}

	return &Message{kind: KindNumber, num: json.Number(b)}, nil
}

// Bool returns a boolean message.
func Bool(b bool) *Message {
	return &Message{kind: KindBool, boolean: b}
}

// Mapping returns a mapping message. Key order does not matter; the
// canonical encoding sorts keys.
func Mapping(m map[string]*Message) *Message {
	return &Message{kind: KindMapping, mapping: m}
}

// Sequence returns a sequence message.
func Sequence(items ...*Message) *Message {
	return &Message{kind: KindSequence, sequence: items}
}

// FromValue converts an arbitrary Go value into a Message by way of its
// JSON encoding. It returns ErrNotSerializable for values that cannot be
// marshaled (channels, functions, cyclic structures).
func FromValue(v any) (*Message, error) {
	if m, ok := v.(*Message); ok {
		return m, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}

	return FromJSON(b)
}

// FromJSON parses a single JSON value into a Message. Numbers keep their
// exact textual representation, so re-encoding never changes them.
func FromJSON(data []byte) (*Message, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}

	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrNotSerializable)
	}

	return fromDecoded(v), nil
}

func fromDecoded(v any) *Message {
	switch val := v.(type) {
	case nil:
		return Null()
	case string:
		return Text(val)
	case json.Number:
		return &Message{kind: KindNumber, num: val}
	case bool:
		return Bool(val)
	case map[string]any:
		m := make(map[string]*Message, len(val))
		for k, item := range val {
			m[k] = fromDecoded(item)
		}

		return Mapping(m)
	case []any:
		seq := make([]*Message, len(val))
		for i, item := range val {
			seq[i] = fromDecoded(item)
		}

		return &Message{kind: KindSequence, sequence: seq}
	default:
		// json.Decoder only produces the cases above.
		return Null()
	}
}

// Kind returns the variant held by the message. A nil message is null.
func (m *Message) Kind() Kind {
	if m == nil {
		return KindNull
	}

	return m.kind
}

// Value returns the message as native Go data: nil, string, json.Number,
// bool, map[string]any, or []any.
func (m *Message) Value() any {
	if m == nil {
		return nil
	}

	switch m.kind {
	case KindText:
		return m.text
	case KindNumber:
		return m.num
	case KindBool:
		return m.boolean
	case KindMapping:
		out := make(map[string]any, len(m.mapping))
		for k, v := range m.mapping {
			out[k] = v.Value()
		}

		return out
	case KindSequence:
		out := make([]any, len(m.sequence))
		for i, v := range m.sequence {
			out[i] = v.Value()
		}

		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the message in canonical form: mapping keys sorted,
// no insignificant whitespace.
func (m *Message) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.appendCanonical(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON value via FromJSON.
func (m *Message) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}

	*m = *parsed

	return nil
}

// CanonicalJSON returns the canonical JSON encoding of the message.
// The encoding is deterministic: mapping keys are emitted in sorted order
// and no insignificant whitespace is produced, so signatures computed from
// logically equal messages always match.
func (m *Message) CanonicalJSON() ([]byte, error) {
	return m.MarshalJSON()
}

func (m *Message) appendCanonical(buf *bytes.Buffer) error {
	if m == nil {
		buf.WriteString("null")
		return nil
	}

	switch m.kind {
	case KindNull:
		buf.WriteString("null")

	case KindText:
		escaped, err := json.Marshal(m.text)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotSerializable, err)
		}

		buf.Write(escaped)

	case KindNumber:
		if m.num == "" {
			buf.WriteByte('0')
		} else {
			buf.WriteString(m.num.String())
		}

	case KindBool:
		buf.WriteString(strconv.FormatBool(m.boolean))

	case KindMapping:
		keys := make([]string, 0, len(m.mapping))
		for k := range m.mapping {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			escaped, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrNotSerializable, err)
			}

			buf.Write(escaped)
			buf.WriteByte(':')

			if err := m.mapping[k].appendCanonical(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case KindSequence:
		buf.WriteByte('[')
		for i, item := range m.sequence {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := item.appendCanonical(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	default:
		return fmt.Errorf("%w: unknown message kind %d", ErrNotSerializable, m.kind)
	}

	return nil
}
