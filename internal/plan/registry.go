package plan

import (
	"sort"
	"strconv"
	"sync"

	"serde-generator/internal/analyze"
)

// InfoKind mirrors serde.Kind for the types a codec describes.
type InfoKind int

const (
	InfoCustom InfoKind = iota
	InfoEnum
)

func (k InfoKind) String() string {
	if k == InfoEnum {
		return "enum"
	}

	return "custom"
}

// SerdeInfo is the field table of one type. Both directions read names,
// order and count from it.
type SerdeInfo struct {
	Key    SynthesisKey
	Name   string
	Kind   InfoKind
	Fields []FieldDescriptor
}

// FieldDescriptor is one entry of a field table.
type FieldDescriptor struct {
	WireName string
	Member   string
	// Type is the primitive kind of the field, or the qualified name of the
	// nested type.
	Type string
}

// InfoRegistry holds one SerdeInfo per key. Construction runs once per key;
// concurrent callers wait for it and then share the frozen value.
type InfoRegistry struct {
	mu      sync.Mutex
	entries map[SynthesisKey]*infoEntry
}

type infoEntry struct {
	once  sync.Once
	ready chan struct{}
	info  *SerdeInfo
}

// NewInfoRegistry creates an empty registry.
func NewInfoRegistry() *InfoRegistry {
	return &InfoRegistry{entries: make(map[SynthesisKey]*infoEntry)}
}

func (r *InfoRegistry) entry(key SynthesisKey, create bool) *infoEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok && create {
		e = &infoEntry{ready: make(chan struct{})}
		r.entries[key] = e
	}

	return e
}

// LookupOrCreate returns the SerdeInfo of key, calling build if no caller has
// done so yet.
func (r *InfoRegistry) LookupOrCreate(key SynthesisKey, build func() *SerdeInfo) *SerdeInfo {
	e := r.entry(key, true)
	e.once.Do(func() {
		defer close(e.ready)

		e.info = build()
		e.info.Key = key
	})

	return e.info
}

// Lookup returns the SerdeInfo of key, waiting for a construction in
// progress.
func (r *InfoRegistry) Lookup(key SynthesisKey) (*SerdeInfo, bool) {
	e := r.entry(key, false)
	if e == nil {
		return nil, false
	}

	<-e.ready

	return e.info, true
}

// Len returns the number of registered keys.
func (r *InfoRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// SynthesisKey identifies generated code for a type within one output
// package.
type SynthesisKey struct {
	Unit   string
	Target analyze.TypeID
}

func (k SynthesisKey) String() string {
	return k.Unit + ":" + k.Target.String()
}

// SynthesisRegistry records which wrappers exist and which of their
// directions have been planned. At most one wrapper is created per key, and
// each direction of it is planned once.
type SynthesisRegistry struct {
	mu       sync.Mutex
	wrappers map[SynthesisKey]string
	claimed  map[SynthesisKey]analyze.Capability
	names    map[string]map[string]SynthesisKey
}

// NewSynthesisRegistry creates an empty registry.
func NewSynthesisRegistry() *SynthesisRegistry {
	return &SynthesisRegistry{
		wrappers: make(map[SynthesisKey]string),
		claimed:  make(map[SynthesisKey]analyze.Capability),
		names:    make(map[string]map[string]SynthesisKey),
	}
}

// Claim registers direction dir of the wrapper for key. The first claim of
// key names the wrapper; a name already taken by another key in the same
// unit gets a numeric suffix. Claim returns the wrapper's name and whether
// this call claimed dir; only that caller plans the direction.
func (r *SynthesisRegistry) Claim(key SynthesisKey, dir analyze.Capability, name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	won := !r.claimed[key].Has(dir)
	r.claimed[key] |= dir

	if existing, ok := r.wrappers[key]; ok {
		return existing, won
	}

	taken := r.names[key.Unit]
	if taken == nil {
		taken = make(map[string]SynthesisKey)
		r.names[key.Unit] = taken
	}

	final := name
	for i := 2; ; i++ {
		if _, clash := taken[final]; !clash {
			break
		}

		final = name + strconv.Itoa(i)
	}

	taken[final] = key
	r.wrappers[key] = final

	return final, won
}

// Reserve marks name as taken in unit without registering a wrapper.
func (r *SynthesisRegistry) Reserve(unit, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names[unit] == nil {
		r.names[unit] = make(map[string]SynthesisKey)
	}

	r.names[unit][name] = SynthesisKey{Unit: unit}
}

// Lookup returns the wrapper registered for key.
func (r *SynthesisRegistry) Lookup(key SynthesisKey) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.wrappers[key]

	return name, ok
}

// Keys returns every registered key, sorted.
func (r *SynthesisRegistry) Keys() []SynthesisKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]SynthesisKey, 0, len(r.wrappers))
	for k := range r.wrappers {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	return keys
}
