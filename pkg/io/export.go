package io

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/statecraft/pkg/errors"
	"github.com/matzehuels/statecraft/pkg/fsm"
)

// document is the wire shape shared by both codecs: state label to entry.
type document map[string]stateDoc

type stateDoc struct {
	Start  *bool              `json:"start" toml:"start"`
	Accept *bool              `json:"accept" toml:"accept"`
	On     map[string]targets `json:"on,omitempty" toml:"on,omitempty"`
}

// targets decodes either a bare state label or a list of labels.
type targets []string

func (t *targets) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = targets{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New(errors.ErrCodeInvalidFormat,
			"target must be a state label or a list of labels")
	}
	*t = targets(list)
	return nil
}

func (t targets) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

func (t *targets) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		*t = targets{val}
		return nil
	case []any:
		out := make(targets, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return errors.New(errors.ErrCodeInvalidFormat,
					"target list entries must be state labels")
			}
			out[i] = s
		}
		*t = out
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"target must be a state label or a list of labels")
}

func (t targets) MarshalTOML() ([]byte, error) {
	if len(t) == 1 {
		return []byte(strconv.Quote(t[0])), nil
	}
	parts := make([]string, len(t))
	for i, s := range t {
		parts[i] = strconv.Quote(s)
	}
	return []byte("[" + strings.Join(parts, ", ") + "]"), nil
}

// WriteJSON encodes a machine's definition as indented JSON and writes it to
// w. Single-target transitions serialize as a bare label, so the output can be
// re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(m *fsm.Machine, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromMachine(m)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json definition")
	}
	return nil
}

// WriteTOML encodes a machine's definition as TOML, one table per state.
func WriteTOML(m *fsm.Machine, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(fromMachine(m)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml definition")
	}
	return nil
}

// Write encodes a machine's definition to w using the given encoding.
func Write(m *fsm.Machine, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(m, w)
	case FormatTOML:
		return WriteTOML(m, w)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported definition format %q", format)
}

// Export writes a machine's definition to a file at path, picking the
// encoding from the file extension.
func Export(m *fsm.Machine, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return Write(m, f, format)
}

func fromMachine(m *fsm.Machine) document {
	def := m.Definition()
	doc := make(document, len(def))
	for label, sd := range def {
		start, accept := sd.Start, sd.Accept
		entry := stateDoc{Start: &start, Accept: &accept}
		if len(sd.On) > 0 {
			entry.On = make(map[string]targets, len(sd.On))
			for sym, ts := range sd.On {
				entry.On[string(sym)] = targets(ts)
			}
		}
		doc[label] = entry
	}
	return doc
}
