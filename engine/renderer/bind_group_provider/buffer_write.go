package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Fits reports whether the write lies within the destination buffer.
// Writes against an uninitialized binding never fit.
func (w BufferWrite) Fits() bool {
	if w.Provider == nil {
		return false
	}
	buf := w.Provider.Buffer(w.Binding)
	if buf == nil {
		return false
	}
	return w.Offset+uint64(len(w.Data)) <= buf.Size()
}
