package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID is an identifier that may arrive as a JSON string or number. It is kept
// in string form so "1" and 1 compare equal.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty identifier")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("invalid numeric identifier %s", b)
		}
		*id = ID(canonicalNumber(n.String()))
		return nil
	default:
		return fmt.Errorf("identifier must be a string or number, got %s", b)
	}
}

func (id ID) String() string { return string(id) }

// canonicalNumber keeps integer literals as written, so ids beyond float64
// precision stay distinct, and trims zero fractions: 2.0 and 2 are the same
// id. Exponent forms are rendered in plain decimal.
func canonicalNumber(lit string) string {
	if strings.ContainsAny(lit, "eE") {
		if f, err := strconv.ParseFloat(lit, 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return lit
	}
	dot := strings.IndexByte(lit, '.')
	if dot < 0 {
		return lit
	}
	frac := strings.TrimRight(lit[dot+1:], "0")
	if frac == "" {
		return lit[:dot]
	}
	return lit[:dot+1] + frac
}

type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Options keeps the letter -> text mapping in display order.
type Options []Option

func (o Options) Has(letter string) bool {
	for _, opt := range o {
		if opt.Letter == letter {
			return true
		}
	}
	return false
}

func (o Options) Text(letter string) (string, bool) {
	for _, opt := range o {
		if opt.Letter == letter {
			return opt.Text, true
		}
	}
	return "", false
}

func (o Options) Letters() []string {
	out := make([]string, len(o))
	for i, opt := range o {
		out[i] = opt.Letter
	}
	return out
}

// UnmarshalJSON reads a JSON object, preserving key order and rejecting
// repeated letters.
func (o *Options) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("options must be an object of letter to text")
	}
	out := Options{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		letter, _ := tok.(string)
		if out.Has(letter) {
			return fmt.Errorf("duplicate option letter %q", letter)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("option %q: text must be a string", letter)
		}
		out = append(out, Option{Letter: letter, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(opt.Letter)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Question is one entry of the question bank. Treat it as immutable.
type Question struct {
	ID       ID      `json:"id"`
	Module   ID      `json:"modulo"`
	Case     string  `json:"caso_clinico"`
	Prompt   string  `json:"comando"`
	Options  Options `json:"alternativas"`
	Correct  string  `json:"resposta_correta"`
	Feedback string  `json:"feedback"`
}

func (q Question) clone() Question {
	q.Options = append(Options(nil), q.Options...)
	return q
}

// validate reports the first field that breaks the record's invariants.
func (q Question) validate() (field, reason string) {
	switch {
	case q.ID == "":
		return "id", "missing"
	case q.Module == "":
		return "modulo", "missing"
	case q.Prompt == "":
		return "comando", "missing"
	case len(q.Options) == 0:
		return "alternativas", "missing"
	case q.Correct == "":
		return "resposta_correta", "missing"
	case !q.Options.Has(q.Correct):
		return "resposta_correta", fmt.Sprintf("letter %q is not an option", q.Correct)
	}
	for _, opt := range q.Options {
		if opt.Letter == "" {
			return "alternativas", "empty option letter"
		}
	}
	return "", ""
}
