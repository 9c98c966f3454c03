/*
Package template loads and caches the canonical base coordinate sets
that the frame fitter aligns each nucleotide against (spec.md §4.3).

The on-disk resource layout (file naming, coordinate-file format) is
explicitly out of core scope per spec.md §1; this package only pins down
the Loader interface the core depends on and the in-memory cache built on
top of it. A real loader (reading "Atomic_X.ext"/"Atomic.x.ext" files)
lives outside this module, the same way poly's io/pdbx/cif package is a
self-contained decoder that higher layers inject where needed.
*/
package template

import (
	"fmt"
	"sync"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/geom"
)

// Variant selects between the standard and modified-nucleotide template
// for a base identity (spec.md §4.3).
type Variant int

const (
	VariantStandard Variant = iota
	VariantModified
)

// Key identifies a cached template.
type Key struct {
	Base    classify.BaseIdentity
	Variant Variant
}

// Template is a set of labeled atom positions for one canonical base,
// from which the ring-atom subset can be extracted by name.
type Template struct {
	ID     string
	Base   classify.BaseIdentity
	Atoms  map[string]geom.Vector3
}

// RingAtoms returns the subset of the template's atoms that are ring
// atoms for this base's purine/pyrimidine class, keyed by atom name.
func (t Template) RingAtoms() map[string]geom.Vector3 {
	names := classify.RingAtomNames(t.Base.IsPurine())
	out := make(map[string]geom.Vector3, len(names))
	for _, n := range names {
		if p, ok := t.Atoms[n]; ok {
			out[n] = p
		}
	}
	return out
}

// Loader is the external collaborator that materializes a Template for
// a (base identity, variant) key, e.g. by reading a resource directory
// on disk. spec.md §7 classifies a Loader failure as a Resource error
// that aborts initialization.
type Loader interface {
	Load(key Key) (Template, error)
}

// Library loads templates through a Loader and caches the result per
// (identity, variant) pair, matching spec.md §4.3's "Results are cached
// per (identity, variant) pair."
type Library struct {
	loader Loader

	mu    sync.RWMutex
	cache map[Key]Template
}

// NewLibrary constructs a Library backed by loader. Per spec.md §7, a
// template-load failure is a Resource error: callers that want to fail
// fast at initialization should eagerly warm the cache with WarmUp.
func NewLibrary(loader Loader) *Library {
	return &Library{loader: loader, cache: make(map[Key]Template)}
}

// Get returns the cached Template for key, loading and caching it on
// first use.
func (l *Library) Get(key Key) (Template, error) {
	l.mu.RLock()
	if t, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return t, nil
	}
	l.mu.RUnlock()

	t, err := l.loader.Load(key)
	if err != nil {
		return Template{}, fmt.Errorf("template: load %+v: %w", key, err)
	}

	l.mu.Lock()
	l.cache[key] = t
	l.mu.Unlock()
	return t, nil
}

// VariantFor returns VariantModified when the actual residue is a
// modification of the given parent base, else VariantStandard (spec.md
// §4.3).
func VariantFor(isModified bool) Variant {
	if isModified {
		return VariantModified
	}
	return VariantStandard
}

// WarmUp loads every (base, variant) combination in bases x {standard,
// modified} eagerly, so a Resource error is surfaced before any protocol
// call is attempted (spec.md §7's "no partial analysis").
func (l *Library) WarmUp(bases []classify.BaseIdentity) error {
	for _, b := range bases {
		for _, v := range []Variant{VariantStandard, VariantModified} {
			if _, err := l.Get(Key{Base: b, Variant: v}); err != nil {
				return err
			}
		}
	}
	return nil
}
