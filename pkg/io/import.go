package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/statecraft/pkg/errors"
	"github.com/matzehuels/statecraft/pkg/fsm"
)

// Format identifies a definition file encoding.
type Format string

// Supported definition encodings.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath derives the definition encoding from a file extension.
// Recognized extensions are .json and .toml.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported,
		"unsupported definition format %q (want .json or .toml)", filepath.Ext(path))
}

// ReadJSON decodes a JSON automaton definition from r and builds the machine.
//
// The input must be a JSON object mapping state labels to state entries:
//
//	{
//	  "S0": {"start": true,  "accept": false, "on": {"0": "S0", "1": "S1"}},
//	  "S1": {"start": false, "accept": true,  "on": {"0": ["S0", "S1"]}}
//	}
//
// Every state entry must carry explicit "start" and "accept" flags. Each "on"
// value is either a single target label or a list of labels; the list form
// marks a nondeterministic transition.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or a target is neither a label nor a label list
//   - A state is missing its start or accept flag
//   - The definition itself is invalid (unknown targets, no start state, ...)
//
// Errors carry the offending state or symbol. The returned machine is
// independent of r; ReadJSON does not close r.
func ReadJSON(r io.Reader) (*fsm.Machine, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json definition")
	}
	return doc.machine()
}

// ReadTOML decodes a TOML automaton definition from r and builds the machine.
// The format mirrors [ReadJSON] with one table per state:
//
//	[S0]
//	start = true
//	accept = false
//	on = { "0" = "S0", "1" = ["S0", "S1"] }
func ReadTOML(r io.Reader) (*fsm.Machine, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml definition")
	}
	return doc.machine()
}

// Read decodes a definition from r using the given encoding.
func Read(r io.Reader, format Format) (*fsm.Machine, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported definition format %q", format)
}

// Import reads a definition file at path, picking the encoding from the file
// extension, and returns the built machine.
func Import(path string) (*fsm.Machine, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

// machine validates the decoded document and constructs the automaton.
func (d document) machine() (*fsm.Machine, error) {
	def, err := d.definition()
	if err != nil {
		return nil, err
	}
	return fsm.New(def)
}

func (d document) definition() (fsm.Definition, error) {
	def := make(fsm.Definition, len(d))
	for label, sd := range d {
		if sd.Start == nil {
			return nil, errors.New(errors.ErrCodeInvalidDefinition,
				"state %q is missing the start flag", label)
		}
		if sd.Accept == nil {
			return nil, errors.New(errors.ErrCodeInvalidDefinition,
				"state %q is missing the accept flag", label)
		}

		entry := fsm.StateDef{Start: *sd.Start, Accept: *sd.Accept}
		if len(sd.On) > 0 {
			entry.On = make(map[fsm.Symbol]fsm.Targets, len(sd.On))
			for sym, ts := range sd.On {
				entry.On[fsm.Symbol(sym)] = fsm.Targets(ts)
			}
		}
		def[label] = entry
	}
	return def, nil
}
