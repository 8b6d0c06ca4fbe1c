package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arshanss504/job-contractor/internal/domain"
)

func TestRemoteZeroValueIsUnrequested(t *testing.T) {
	var r Remote[domain.WorkPlan]
	assert.Equal(t, Unrequested, r.State())
	assert.False(t, r.IsLoading())
	assert.False(t, r.IsLoaded())
	assert.False(t, r.IsAbsent())
	_, ok := r.Value()
	assert.False(t, ok)
}

func TestRemoteLoading(t *testing.T) {
	r := LoadingRemote[domain.Invoice]()
	assert.Equal(t, Loading, r.State())
	assert.True(t, r.IsLoading())
	assert.False(t, r.IsLoaded())
	_, ok := r.Value()
	assert.False(t, ok)
}

func TestRemotePresent(t *testing.T) {
	r := Present(domain.Invoice{ID: 9, Amount: 120.50})
	assert.True(t, r.IsLoaded())
	assert.False(t, r.IsAbsent())
	inv, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, int64(9), inv.ID)
}

func TestRemoteAbsent(t *testing.T) {
	r := Absent[domain.Invoice]()
	assert.True(t, r.IsLoaded())
	assert.True(t, r.IsAbsent())
	_, ok := r.Value()
	assert.False(t, ok)
}
