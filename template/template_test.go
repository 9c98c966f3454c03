package template

import (
	"errors"
	"testing"

	"github.com/jyesselm/x3dna/classify"
)

func TestLibraryCaches(t *testing.T) {
	loader := &countingLoader{inner: InMemoryLoader{}}
	lib := NewLibrary(loader)

	if _, err := lib.Get(Key{Base: classify.BaseA, Variant: VariantStandard}); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if _, err := lib.Get(Key{Base: classify.BaseA, Variant: VariantStandard}); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if loader.calls != 1 {
		t.Errorf("loader called %d times, want 1 (cache should dedupe)", loader.calls)
	}
}

func TestRingAtomsSubset(t *testing.T) {
	lib := NewLibrary(InMemoryLoader{})
	tpl, err := lib.Get(Key{Base: classify.BaseA, Variant: VariantStandard})
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	ring := tpl.RingAtoms()
	if _, ok := ring["C1'"]; ok {
		t.Errorf("RingAtoms() should not include C1'")
	}
	if _, ok := ring["N9"]; !ok {
		t.Errorf("RingAtoms() should include N9 for a purine")
	}
}

func TestWarmUpSurfacesLoadFailure(t *testing.T) {
	lib := NewLibrary(failingLoader{})
	if err := lib.WarmUp([]classify.BaseIdentity{classify.BaseA}); err == nil {
		t.Errorf("WarmUp should surface a load failure")
	}
}

type countingLoader struct {
	inner Loader
	calls int
}

func (c *countingLoader) Load(key Key) (Template, error) {
	c.calls++
	return c.inner.Load(key)
}

type failingLoader struct{}

func (failingLoader) Load(key Key) (Template, error) {
	return Template{}, errTemplateUnavailable
}

var errTemplateUnavailable = errors.New("template unavailable")
