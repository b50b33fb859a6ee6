package records

import (
	"github.com/graemejk/StA-Slides/internal/extraction"
)

// Assembler builds complete catalogue records from whatever each stage of
// processing managed to produce.
type Assembler struct {
	Defaults Defaults
}

// NewAssembler returns an assembler using the given defaults table, falling
// back to the builtin table when nil.
func NewAssembler(defaults Defaults) *Assembler {
	if defaults == nil {
		defaults = BuiltinDefaults()
	}
	return &Assembler{Defaults: defaults}
}

// Assemble merges parsed model fields, the extracted identifier and the
// static defaults into one record. Precedence per field: parsed model value,
// then identifier (EADUnitID/EADIdentifier only), then default, then empty.
// The record always carries the complete fixed field set.
func (a *Assembler) Assemble(filename string, fields extraction.Fields, id string, parseOK bool) Record {
	r := Record{
		Filename: filename,
		Status:   StatusSuccess,
	}
	if !parseOK {
		r.ParseError = true
	}

	for _, f := range schemaFields {
		slot := f.ptr(&r)
		if v, ok := fields[f.Name]; ok && v != "" {
			*slot = v
			continue
		}
		if identifierFields[f.Name] && id != "" {
			*slot = id
			continue
		}
		if d, ok := a.Defaults[f.Name]; ok {
			*slot = d
		}
	}

	return r
}

// AssembleFailed builds the record for an item whose model call failed. The
// identifier and defaults are still applied so the archivist can see which
// slide needs manual attention; no model fields are present.
func (a *Assembler) AssembleFailed(filename, id string, err error) Record {
	r := a.Assemble(filename, nil, id, true)
	r.Status = StatusError
	r.Error = err.Error()
	return r
}
