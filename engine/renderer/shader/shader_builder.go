package shader

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithIncludes sets the struct registry the shader's @oxy: annotations resolve against.
//
// Parameters:
//   - registry: struct type keys mapped to their WGSL source and type name
//
// Returns:
//   - ShaderBuilderOption: a function that installs a pre-processor using the registry
func WithIncludes(registry map[string]IncludeEntry) ShaderBuilderOption {
	return func(s *shader) {
		s.pp = NewPreProcessor(registry)
	}
}
