package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// Validator checks WGSL source on the CPU before any GPU object is created from it.
type Validator interface {
	// Validate compiles the source and reports the first error found.
	//
	// Parameters:
	//   - source: the processed WGSL source
	//
	// Returns:
	//   - error: nil if the source is a valid module
	Validate(source string) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(source string) error

func (f ValidatorFunc) Validate(source string) error {
	return f(source)
}

// NagaValidator validates WGSL by compiling it to SPIR-V with naga and discarding the output.
type NagaValidator struct{}

var _ Validator = NagaValidator{}

func (NagaValidator) Validate(source string) error {
	if isBlank(source) {
		return ErrEmptySource
	}
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("wgsl validation failed: %w", err)
	}
	return nil
}

// ValidateAll runs v over every shader and returns the first failure, wrapped with the shader key.
//
// Parameters:
//   - v: the validator to use
//   - shaders: the shaders to check, in order
//
// Returns:
//   - error: the first validation error, or nil
func ValidateAll(v Validator, shaders ...Shader) error {
	for _, s := range shaders {
		if s == nil {
			return ErrEmptySource
		}
		if err := v.Validate(s.Source()); err != nil {
			return fmt.Errorf("%s shader %s: %w", s.ShaderType(), s.Key(), err)
		}
	}
	return nil
}
