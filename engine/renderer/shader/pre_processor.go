// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source code for @oxy: annotations and replaces them with the registered struct
// sources or generated binding declarations. The registry is supplied by the
// renderer, which owns the uniform layouts the declarations must match.
package shader

import (
	"fmt"
	"strings"
)

// IncludeEntry pairs a WGSL struct source string with the WGSL type name it declares.
type IncludeEntry struct {
	// Source is the raw WGSL struct definition text injected by @oxy:include.
	Source string
	// Type is the WGSL type name emitted in @oxy:group declarations (e.g. "CameraUniform").
	Type string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps struct type argument keys to their embedded WGSL source and type name.
	registry map[string]IncludeEntry
	// declarations accumulates group annotations during a Process call.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations,
// replacing them with registered struct sources and generated uniform declarations.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and replaces every @oxy: annotation with
	// its WGSL output. Each struct is injected at most once per call even if several
	// annotations reference it.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or references an unknown type
	Process(source string) (string, error)

	// Declarations returns the group annotations collected during the most recent call to
	// Process, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor backed by the given struct registry.
// A nil registry is valid and makes every annotation an error.
//
// Parameters:
//   - registry: struct type keys mapped to their WGSL source and type name
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(registry map[string]IncludeEntry) PreProcessor {
	return &preProcessor{registry: registry}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[string]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			entry, ok := p.registry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", a.Line, a.Args[0])
			}
			if !included[a.Args[0]] {
				out = append(out, entry.Source)
				included[a.Args[0]] = true
			}
		case AnnotationTypeBindingGroup:
			entry, ok := p.registry[a.Args[1]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct type %q in @oxy:group", a.Line, a.Args[1])
			}
			if !included[a.Args[1]] {
				out = append(out, entry.Source)
				included[a.Args[1]] = true
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) var<uniform> %s: %s;", a.Group, a.Binding, a.Args[0], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
