package pkgsource

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/lightfix/internal/records"
)

// Parser extracts the Light and Cell records of one package.
type Parser interface {
	Parse(name string, data []byte) (records.Package, error)
}

// dump is the record dump layout. Keys other than lights and cells are ignored.
type dump struct {
	Lights []records.LightRecord `yaml:"lights" validate:"dive"`
	Cells  []records.CellRecord  `yaml:"cells" validate:"dive"`
}

// DumpParser reads YAML or JSON record dumps, the text form produced by
// external package converters. Records are validated before they are returned.
type DumpParser struct {
	validate *validator.Validate
}

// NewDumpParser creates a DumpParser.
func NewDumpParser() *DumpParser {
	v := validator.New()
	_ = v.RegisterValidation("noctrl", validateNoControl)
	return &DumpParser{validate: v}
}

// Parse decodes data. JSON input is accepted since JSON is valid YAML.
func (p *DumpParser) Parse(name string, data []byte) (records.Package, error) {
	var d dump
	if err := yaml.Unmarshal(data, &d); err != nil {
		return records.Package{}, fmt.Errorf("%s: %w", name, err)
	}
	if err := p.validate.Struct(&d); err != nil {
		return records.Package{}, fmt.Errorf("%s: %s", name, formatValidationError(err))
	}
	return records.Package{Name: name, Lights: d.Lights, Cells: d.Cells}, nil
}

// validateNoControl rejects identities containing control characters.
func validateNoControl(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsControl) < 0
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Namespace()))
		case "noctrl":
			msgs = append(msgs, fmt.Sprintf("%s contains control characters", e.Namespace()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", e.Namespace(), e.Tag()))
		}
	}
	return "invalid records: " + strings.Join(msgs, "; ")
}
