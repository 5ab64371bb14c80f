package renderer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertNoExportedFields(t *testing.T, v any) {
	t.Helper()
	typ := reflect.TypeOf(v)
	for i := range typ.NumField() {
		assert.False(t, typ.Field(i).IsExported(), "%s.%s is exported", typ.Name(), typ.Field(i).Name)
	}
}
