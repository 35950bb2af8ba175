package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameStem(t *testing.T) {
	st := newStem("id", nil)
	assert.Equal(t, []string{"id1", "id2", "id3"}, []string{st.Next(), st.Next(), st.Next()})

	st = newStem("val", map[string]struct{}{"val2": {}})
	assert.Equal(t, []string{"val1", "val3", "val4"}, []string{st.Next(), st.Next(), st.Next()})

	st = newStem("binding", nil)
	assert.True(t, st.Reserve("binding1"))
	assert.False(t, st.Reserve("binding1"))
	assert.Equal(t, "binding2", st.Next())
}
