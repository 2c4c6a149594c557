// Package valuation holds the single-vehicle valuation workflow: the input
// form, its lock, and the idle/loading/result/error state machine.
package valuation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/refdata"
)

var (
	ErrLocked = errors.New("valuation locked")
	ErrBusy   = errors.New("valuation in flight")
)

// State of the workflow. A result locks the form until Reset.
type State int

const (
	Idle State = iota
	Loading
	Result
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Result:
		return "result"
	case Failed:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Field names accepted by SetField, matching the JSON keys of the input.
const (
	FieldManufacturer = "manufacturer"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldTransmission = "transmission"
	FieldMileage      = "mileage"
	FieldFuelType     = "fuelType"
	FieldTax          = "tax"
	FieldMPG          = "mpg"
	FieldEngineSize   = "engineSize"
)

// Fields is the form order.
var Fields = []string{
	FieldManufacturer, FieldModel, FieldYear, FieldTransmission, FieldMileage,
	FieldFuelType, FieldTax, FieldMPG, FieldEngineSize,
}

// DefaultInput is the form's initial vehicle.
func DefaultInput() api.ValuationInput {
	return api.ValuationInput{
		Manufacturer: "Ford",
		Model:        "Fiesta",
		Year:         2019,
		Transmission: "Manual",
		Mileage:      40000,
		FuelType:     "Petrol",
		Tax:          145,
		MPG:          55.4,
		EngineSize:   1.0,
	}
}

type Workflow struct {
	input api.ValuationInput
	state State
	price float64
	err   string
}

func New() *Workflow {
	return &Workflow{input: DefaultInput()}
}

func (w *Workflow) Input() api.ValuationInput { return w.input }
func (w *Workflow) State() State              { return w.state }
func (w *Workflow) Locked() bool              { return w.state == Result }

// Price is the last USD result; only meaningful in Result.
func (w *Workflow) Price() float64 { return w.price }

// ErrMessage is the user-facing failure text; only set in Failed.
func (w *Workflow) ErrMessage() string { return w.err }

// SetManufacturer switches make and resets the model to its first entry.
// Re-selecting the current make keeps the chosen model.
func (w *Workflow) SetManufacturer(name string) bool {
	if w.Locked() {
		return false
	}
	if name == w.input.Manufacturer {
		return true
	}
	w.input.Manufacturer = name
	w.input.Model = refdata.FirstModel(name)
	return true
}

// SetModel only accepts models of the current manufacturer.
func (w *Workflow) SetModel(model string) bool {
	if w.Locked() || !refdata.HasModel(w.input.Manufacturer, model) {
		return false
	}
	w.input.Model = model
	return true
}

func (w *Workflow) SetYear(v int) bool {
	return w.edit(func() { w.input.Year = v })
}

func (w *Workflow) SetTransmission(v string) bool {
	return w.edit(func() { w.input.Transmission = v })
}

func (w *Workflow) SetMileage(v int) bool {
	return w.edit(func() { w.input.Mileage = v })
}

func (w *Workflow) SetFuelType(v string) bool {
	return w.edit(func() { w.input.FuelType = v })
}

func (w *Workflow) SetTax(v float64) bool {
	return w.edit(func() { w.input.Tax = v })
}

func (w *Workflow) SetMPG(v float64) bool {
	return w.edit(func() { w.input.MPG = v })
}

func (w *Workflow) SetEngineSize(v float64) bool {
	return w.edit(func() { w.input.EngineSize = v })
}

func (w *Workflow) edit(fn func()) bool {
	if w.Locked() {
		return false
	}
	fn()
	return true
}

// SetField applies raw form text to a named field. Locked forms ignore the
// edit and report false with a nil error. Numeric fields must parse.
func (w *Workflow) SetField(name, raw string) (bool, error) {
	if w.Locked() {
		return false, nil
	}
	raw = strings.TrimSpace(raw)
	switch name {
	case FieldManufacturer:
		m, ok := refdata.MatchManufacturer(raw)
		if !ok {
			return false, fmt.Errorf("unknown manufacturer %q", raw)
		}
		return w.SetManufacturer(m), nil
	case FieldModel:
		m, ok := refdata.MatchModel(w.input.Manufacturer, raw)
		if !ok {
			return false, fmt.Errorf("unknown %s model %q", w.input.Manufacturer, raw)
		}
		return w.SetModel(m), nil
	case FieldTransmission:
		return w.SetTransmission(raw), nil
	case FieldFuelType:
		return w.SetFuelType(raw), nil
	case FieldYear, FieldMileage:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
		if name == FieldYear {
			return w.SetYear(n), nil
		}
		return w.SetMileage(n), nil
	case FieldTax, FieldMPG, FieldEngineSize:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case FieldTax:
			return w.SetTax(f), nil
		case FieldMPG:
			return w.SetMPG(f), nil
		}
		return w.SetEngineSize(f), nil
	}
	return false, fmt.Errorf("unknown field %q", name)
}

// FieldValue renders a field for the form.
func (w *Workflow) FieldValue(name string) string {
	in := w.input
	switch name {
	case FieldManufacturer:
		return in.Manufacturer
	case FieldModel:
		return in.Model
	case FieldYear:
		return strconv.Itoa(in.Year)
	case FieldTransmission:
		return in.Transmission
	case FieldMileage:
		return strconv.Itoa(in.Mileage)
	case FieldFuelType:
		return in.FuelType
	case FieldTax:
		return strconv.FormatFloat(in.Tax, 'f', -1, 64)
	case FieldMPG:
		return strconv.FormatFloat(in.MPG, 'f', -1, 64)
	case FieldEngineSize:
		return strconv.FormatFloat(in.EngineSize, 'f', -1, 64)
	}
	return ""
}

// Begin moves to Loading and returns the input snapshot to submit.
func (w *Workflow) Begin() (api.ValuationInput, error) {
	switch w.state {
	case Result:
		return api.ValuationInput{}, ErrLocked
	case Loading:
		return api.ValuationInput{}, ErrBusy
	}
	w.state = Loading
	w.price = 0
	w.err = ""
	return w.input, nil
}

// Resolve records a price and locks the form.
func (w *Workflow) Resolve(price float64) {
	if w.state != Loading {
		return
	}
	w.state = Result
	w.price = price
}

// Fail records the fixed user-facing message; the form stays editable.
func (w *Workflow) Fail(message string) {
	if w.state != Loading {
		return
	}
	w.state = Failed
	w.err = message
}

// Reset unlocks a result, keeping the field values.
func (w *Workflow) Reset() {
	if w.state != Result {
		return
	}
	w.state = Idle
	w.price = 0
}
