/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/askap/vodeposit/pkg/errors"
	"github.com/askap/vodeposit/pkg/header"
	"github.com/askap/vodeposit/pkg/votable"
)

const (
	// APIVersion is the API version for validation reports.
	APIVersion = "vodeposit.askap.org/v1"
)

// Mode selects how a traversal reacts to errors.
type Mode string

const (
	// ModeFailFast stops at the first error and returns it.
	ModeFailFast Mode = "fail-fast"

	// ModeCollectAll walks the whole table and reports every error.
	ModeCollectAll Mode = "collect-all"
)

// TypedCell is one converted cell. Value is nil for a blank cell.
type TypedCell struct {
	Field votable.Field
	Value any
}

// TypedRow is a fully validated and converted row. Index is 1-based.
type TypedRow struct {
	Index int
	Cells []TypedCell
}

// Get returns the converted value of the named field.
func (r TypedRow) Get(name string) (any, bool) {
	for _, c := range r.Cells {
		if c.Field.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Values returns the row as a field-name to value map.
func (r TypedRow) Values() map[string]any {
	out := make(map[string]any, len(r.Cells))
	for _, c := range r.Cells {
		out[c.Field.Name] = c.Value
	}
	return out
}

// TypedParam is one converted PARAM. Value is nil for a blank value.
type TypedParam struct {
	Param votable.Param
	Value any
}

// ParamSet holds the valid PARAMs of a table in document order.
type ParamSet struct {
	Params []TypedParam
}

// Get returns the converted value of the named PARAM.
func (p ParamSet) Get(name string) (any, bool) {
	for _, tp := range p.Params {
		if tp.Param.Name == name {
			return tp.Value, true
		}
	}
	return nil, false
}

// Values returns the PARAMs as a name to value map.
func (p ParamSet) Values() map[string]any {
	out := make(map[string]any, len(p.Params))
	for _, tp := range p.Params {
		out[tp.Param.Name] = tp.Value
	}
	return out
}

// RowHandler receives each valid row. Returning a *ValidationError records
// it against the row; any other error aborts the traversal.
type RowHandler func(TypedRow) error

// ParamHandler receives the valid PARAMs once they have all been visited.
// Returning a *ValidationError records it against the PARAM named in its
// position; any other error aborts the traversal.
type ParamHandler func(ParamSet) error

// Validator checks VOTABLE documents against one catalogue type's
// constraints. It holds no per-document state and may be shared; each
// Validate call runs its own traversal.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	constraints *ConstraintSet
	failFast    bool
	onParams    ParamHandler
	onRow       RowHandler
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithFailFast returns an Option that selects fail-fast (true) or
// collect-all (false) mode. Collect-all is the default.
func WithFailFast(failFast bool) Option {
	return func(v *Validator) {
		v.failFast = failFast
	}
}

// WithParamHandler returns an Option that sets the PARAM callback.
func WithParamHandler(h ParamHandler) Option {
	return func(v *Validator) {
		v.onParams = h
	}
}

// WithRowHandler returns an Option that sets the row callback.
func WithRowHandler(h RowHandler) Option {
	return func(v *Validator) {
		v.onRow = h
	}
}

// New creates a new Validator for the given constraints. A nil set
// validates structure and values without any catalogue constraints.
func New(constraints *ConstraintSet, opts ...Option) *Validator {
	v := &Validator{constraints: constraints}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mode reports the configured error policy.
func (v *Validator) Mode() Mode {
	if v.failFast {
		return ModeFailFast
	}
	return ModeCollectAll
}

// Validate walks the first TABLE of doc: PARAMs, FIELDs, then rows and
// cells. In fail-fast mode the first problem is returned as a
// *ValidationError. In collect-all mode every problem is listed in the
// result and the error is nil. Handler failures that are not validation
// errors are returned wrapped as INTERNAL in both modes.
func (v *Validator) Validate(doc *votable.VOTable) (*ValidationResult, error) {
	start := time.Now()

	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "document cannot be nil")
	}

	result := NewValidationResult()
	result.Init(header.KindValidationReport, APIVersion, v.Version)
	result.Mode = v.Mode()

	t := &traversal{
		v:          v,
		errs:       NewCollector(v.failFast),
		paramNames: make(map[string]bool),
		fieldNames: make(map[string]bool),
	}
	if err := t.run(doc); err != nil {
		return nil, err
	}

	result.Summary = ValidationSummary{
		Params:        t.paramCount,
		Fields:        t.fieldCount,
		Rows:          t.rowCount,
		RowsDelivered: t.delivered,
		RowsRejected:  t.rowCount - t.delivered,
		Duration:      time.Since(start),
	}
	result.setErrors(t.errs.Errors())

	slog.Debug("validation completed",
		"mode", result.Mode,
		"params", result.Summary.Params,
		"fields", result.Summary.Fields,
		"rows", result.Summary.Rows,
		"delivered", result.Summary.RowsDelivered,
		"errors", result.Summary.Errors,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

type paramState struct {
	param      votable.Param
	constraint *Constraint
	value      any
}

type fieldState struct {
	field      votable.Field
	constraint *Constraint
	datatype   Datatype
	supported  bool
}

// traversal holds the state of one Validate call.
type traversal struct {
	v    *Validator
	errs *Collector

	params     []paramState
	paramNames map[string]bool
	fields     []fieldState
	fieldNames map[string]bool
	fieldsOK   bool

	paramCount int
	fieldCount int
	rowCount   int
	delivered  int
}

var tablePosition = Position{Element: ElementTable}

func (t *traversal) run(doc *votable.VOTable) error {
	tables := doc.Tables()
	if len(tables) == 0 {
		return t.errs.Table(Structural(Position{Element: ElementVOTable}, "No TABLE found"))
	}
	if len(tables) > 1 {
		if err := t.errs.Table(Structural(tablePosition, "Multiple TABLEs not supported")); err != nil {
			return err
		}
	}
	return t.visitTable(tables[0])
}

func (t *traversal) visitTable(table *votable.Table) error {
	for _, p := range table.Params {
		if err := t.visitParam(p); err != nil {
			return err
		}
	}
	if err := t.paramsFinished(); err != nil {
		return err
	}

	for _, f := range table.Fields {
		if err := t.visitField(f); err != nil {
			return err
		}
	}
	if err := t.fieldsFinished(); err != nil {
		return err
	}

	for i, row := range table.Rows {
		if err := t.visitRow(i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func (t *traversal) visitParam(p votable.Param) error {
	t.paramCount++
	name := p.Name
	if strings.TrimSpace(name) == "" {
		return t.errs.Table(Structural(tablePosition, "Table has one or more PARAMs with a blank 'name' attribute"))
	}
	if t.paramNames[name] {
		return t.errs.Param(name, Structural(tablePosition, "Table contains more than one PARAM named '%s'", name))
	}
	t.paramNames[name] = true

	pos := Position{Element: ElementParam, Name: name}
	state := paramState{param: p}

	c, err := t.v.constraints.ForParam(p.Descriptor)
	if err != nil {
		t.params = append(t.params, state)
		return t.errs.Param(name, Structural(pos, "%s", incompatibleMessage(ElementParam, name, err)))
	}
	state.constraint = c

	dt, err := ParseDatatype(p.Datatype)
	if err != nil {
		t.params = append(t.params, state)
		return t.errs.Param(name, Structural(pos, "%s", err.Error()))
	}
	if err := dt.ValidateFieldAttributes(p.Descriptor, c); err != nil {
		t.params = append(t.params, state)
		return t.errs.Param(name, Structural(pos, "%s", err.Error()))
	}

	if value := trim(p.Value); value != "" {
		converted, err := dt.ValidateFieldValue(p.Descriptor, c, value)
		if err != nil {
			t.params = append(t.params, state)
			return t.errs.Param(name, Value(pos, "%s", err.Error()))
		}
		state.value = converted
	}
	t.params = append(t.params, state)
	return nil
}

func (t *traversal) paramsFinished() error {
	present := make([]votable.Descriptor, 0, len(t.params))
	for _, p := range t.params {
		present = append(present, p.param.Descriptor)
	}
	for _, c := range t.v.constraints.MissingParams(present) {
		if err := t.errs.Table(Structural(tablePosition, "Missing PARAM matching %s", c.Description())); err != nil {
			return err
		}
	}

	if t.v.onParams == nil {
		return nil
	}
	var set ParamSet
	for _, p := range t.params {
		if t.errs.HasParamErrors(p.param.Name) {
			continue
		}
		set.Params = append(set.Params, TypedParam{Param: p.param, Value: p.value})
	}
	err := t.v.onParams(set)
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return t.errs.Param(ve.Position.Name, ve)
	}
	return errors.Wrap(errors.ErrCodeInternal, "PARAM handler failed", err)
}

func (t *traversal) visitField(f votable.Field) error {
	t.fieldCount++
	name := f.Name
	if strings.TrimSpace(name) == "" {
		if err := t.errs.Table(Structural(tablePosition, "Table has one or more FIELDs with a blank 'name' attribute")); err != nil {
			return err
		}
	} else {
		if t.fieldNames[name] {
			return t.errs.Field(name, Structural(tablePosition, "Table contains more than one FIELD named '%s'", name))
		}
		t.fieldNames[name] = true
		if strings.EqualFold(name, "id") {
			if err := t.errs.Field(name, Structural(tablePosition, "Table contains a FIELD named '%s'", name)); err != nil {
				return err
			}
		}
	}

	pos := Position{Element: ElementField, Name: name}
	state := fieldState{field: f}
	defer func() { t.fields = append(t.fields, state) }()

	c, err := t.v.constraints.ForField(f.Descriptor)
	if err != nil {
		return t.errs.Field(name, Structural(pos, "%s", incompatibleMessage(ElementField, name, err)))
	}
	state.constraint = c

	dt, err := ParseDatatype(f.Datatype)
	if err != nil {
		return t.errs.Field(name, Structural(pos, "%s", err.Error()))
	}
	state.datatype = dt
	state.supported = true

	if err := dt.ValidateFieldAttributes(f.Descriptor, c); err != nil {
		return t.errs.Field(name, Structural(pos, "%s", err.Error()))
	}
	return nil
}

func (t *traversal) fieldsFinished() error {
	present := make([]votable.Descriptor, 0, len(t.fields))
	for _, f := range t.fields {
		present = append(present, f.field.Descriptor)
	}
	for _, c := range t.v.constraints.MissingFields(present) {
		if err := t.errs.Field(missingKey(c), Structural(tablePosition, "Missing FIELD matching %s", c.Description())); err != nil {
			return err
		}
	}

	t.fieldsOK = true
	for _, f := range t.fields {
		if t.errs.HasFieldErrors(f.field.Name) {
			t.fieldsOK = false
			break
		}
	}
	return nil
}

func (t *traversal) visitRow(index int, row votable.Row) error {
	t.rowCount++
	rowPos := Position{Element: ElementRow, Row: index}

	if len(row.Cells) > len(t.fields) {
		return t.errs.Row(index, Structural(rowPos, "Additional TD"))
	}

	typed := TypedRow{Index: index, Cells: make([]TypedCell, 0, len(t.fields))}
	cellsOK := true
	for i, cell := range row.Cells {
		f := t.fields[i]
		converted, err := t.visitCell(index, i+1, f, cell)
		if err != nil {
			return err
		}
		if t.errs.HasCellErrors(index, f.field.Name) {
			cellsOK = false
		}
		typed.Cells = append(typed.Cells, TypedCell{Field: f.field, Value: converted})
	}

	if len(row.Cells) < len(t.fields) {
		if err := t.errs.Row(index, Structural(rowPos, "Missing TD")); err != nil {
			return err
		}
	}

	if !cellsOK || !t.fieldsOK || t.errs.HasRowErrors(index) {
		return nil
	}
	if t.v.onRow != nil {
		if err := t.v.onRow(typed); err != nil {
			var ve *ValidationError
			if stderrors.As(err, &ve) {
				return t.errs.Row(index, ve)
			}
			return errors.WrapWithContext(errors.ErrCodeInternal, "row handler failed", err,
				map[string]any{"row": index})
		}
	}
	t.delivered++
	return nil
}

// visitCell converts one cell. A returned error aborts the traversal; a
// recorded cell error leaves the value nil.
func (t *traversal) visitCell(row, cell int, f fieldState, c votable.Cell) (any, error) {
	value := trim(c.Value)
	if value == "" || !f.supported {
		return nil, nil
	}
	converted, err := f.datatype.ValidateFieldValue(f.field.Descriptor, f.constraint, value)
	if err != nil {
		pos := Position{Element: ElementCell, Name: f.field.Name, Row: row, Cell: cell}
		return nil, t.errs.Cell(row, f.field.Name, Value(pos, "%s", err.Error()))
	}
	return converted, nil
}

func incompatibleMessage(element Element, name string, err error) string {
	var ic *IncompatibleConstraintsError
	if stderrors.As(err, &ic) {
		return "Multiple constraints matching " + string(element) + " '" + name + "' have incompatible " + ic.Key + " attributes"
	}
	return err.Error()
}

func missingKey(c Constraint) string {
	switch {
	case c.Name != "":
		return c.Name
	case c.UCD != "":
		return "ucd:" + c.UCD
	default:
		return "id:" + c.ID
	}
}

// trim removes leading and trailing space and control characters.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
