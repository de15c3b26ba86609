package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
	"github.com/opd-ai/go-gkscairo/internal/gks"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues (e.g., unknown variables).
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks a Config for values the driver cannot use.
type Validator struct {
	// strictMode turns warnings about unusual values into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of every section of cfg.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateOutput(&cfg.Output, result)
	v.validateLogging(&cfg.Logging, result)
	v.validateASF(&cfg.ASF, result)
	v.validateBundles(cfg.LineBundles, result)
	v.validateColors(cfg.Colors, result)
	v.validateText(&cfg.Text, result)
	v.validateLua(&cfg.Lua, result)

	if v.strictMode {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

// maxDimension is the largest device size accepted without a warning.
const maxDimension = 20000

func (v *Validator) validateOutput(oc *OutputConfig, result *ValidationResult) {
	if _, err := cairo.ParseSurfaceType(oc.Type); err != nil {
		result.AddError("output.type", fmt.Sprintf("unknown device %q (expected png, ps, eps, pdf or svg)", oc.Type))
	}
	if _, err := oc.ParseOrientation(); err != nil {
		result.AddError("output.orientation", err.Error())
	}

	if oc.Width < 0 {
		result.AddError("output.width", fmt.Sprintf("must be non-negative, got %g", oc.Width))
	}
	if oc.Height < 0 {
		result.AddError("output.height", fmt.Sprintf("must be non-negative, got %g", oc.Height))
	}
	if (oc.Width > 0) != (oc.Height > 0) {
		result.AddWarning("output.width", "width and height must both be set; the device default is used")
	}
	if oc.Width > maxDimension {
		result.AddWarning("output.width", fmt.Sprintf("unusually large value %g", oc.Width))
	}
	if oc.Height > maxDimension {
		result.AddWarning("output.height", fmt.Sprintf("unusually large value %g", oc.Height))
	}
}

func (v *Validator) validateLogging(lc *LoggingConfig, result *ValidationResult) {
	all := int(gks.LogInfo | gks.LogWarn | gks.LogError)
	if lc.Mask > all {
		result.AddError("logging.mask", fmt.Sprintf("must be between 0 and %d, got %d", all, lc.Mask))
	}
	switch strings.ToLower(lc.Format) {
	case "text", "json":
	default:
		result.AddError("logging.format", fmt.Sprintf("unknown format %q (expected text or json)", lc.Format))
	}
}

func (v *Validator) validateASF(ac *ASFConfig, result *ValidationResult) {
	if _, err := ac.ASFs(); err != nil {
		field, msg, _ := strings.Cut(err.Error(), ": ")
		result.AddError(field, msg)
	}
}

// knownLineTypes are the line types with a dash pattern of their own.
var knownLineTypes = map[int]bool{
	gks.LineSolid:    true,
	gks.LineDash:     true,
	gks.LineDot:      true,
	gks.LineDashDot:  true,
	gks.LineLongDash: true,
}

func (v *Validator) validateBundles(bundles []LineBundleConfig, result *ValidationResult) {
	for i, b := range bundles {
		field := fmt.Sprintf("line_bundles[%d]", i)
		if !knownLineTypes[b.Type] {
			result.AddWarning(field+".type", fmt.Sprintf("line type %d has no dash pattern; a single unit dash is used", b.Type))
		}
		if b.Width <= 0 {
			result.AddError(field+".width", fmt.Sprintf("must be positive, got %g", b.Width))
		}
		if b.Colour < 0 || b.Colour >= gks.PaletteSize {
			result.AddError(field+".colour", fmt.Sprintf("must be between 0 and %d, got %d", gks.PaletteSize-1, b.Colour))
		}
	}
}

func (v *Validator) validateColors(colors map[string]string, result *ValidationResult) {
	for k, value := range colors {
		field := "colors." + k
		index, err := strconv.Atoi(k)
		if err != nil || index < 0 || index >= gks.PaletteSize {
			result.AddError(field, fmt.Sprintf("index must be a number between 0 and %d", gks.PaletteSize-1))
			continue
		}
		if _, err := gks.ParseColor(value); err != nil {
			result.AddError(field, err.Error())
		}
	}
}

func (v *Validator) validateText(tc *TextConfig, result *ValidationResult) {
	if tc.FontSize < 0 {
		result.AddError("text.font_size", fmt.Sprintf("must be non-negative, got %g", tc.FontSize))
	}
	if tc.FontSize > gks.PageLong {
		result.AddWarning("text.font_size", fmt.Sprintf("larger than the page: %g", tc.FontSize))
	}
}

func (v *Validator) validateLua(lc *LuaConfig, result *ValidationResult) {
	if lc.CPULimit == 0 {
		result.AddWarning("lua.cpu_limit", "no CPU limit; a looping script never finishes")
	}
	if lc.MemoryLimit == 0 {
		result.AddWarning("lua.memory_limit", "no memory limit")
	}
}

// ValidateConfig validates cfg with default settings. It returns nil if
// the config is valid.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	return NewValidator().Validate(cfg).Error()
}

// ValidateConfigStrict validates cfg treating warnings as errors.
func ValidateConfigStrict(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	return NewValidator().WithStrictMode(true).Validate(cfg).Error()
}
