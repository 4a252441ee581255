// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package route

import (
	"fmt"
)

// Registry holds the usable provider adapters in fallback order. It is
// built once at startup and read concurrently, never mutated during request
// handling.
type Registry struct {
	preferred  ID
	chain      []Adapter
	registered []Adapter
}

// NewRegistry orders the given adapters into the fallback chain:
//
//  1. the operator's preferred provider first, when it has credentials,
//  2. the remaining credentialed providers in registration order,
//  3. the no-credential provider (OSRM) always last, regardless of
//     preference, so the chain is never empty.
//
// Adapters without credentials (other than the keyless fallback) are left
// out of the chain entirely; they would only ever report notConfigured.
// They stay registered so status reporting can list them via All.
func NewRegistry(preferred ID, adapters ...Adapter) (*Registry, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("registry requires at least one adapter")
	}

	var chain []Adapter
	var tail []Adapter
	byID := make(map[ID]Adapter, len(adapters))
	for _, adapter := range adapters {
		desc := adapter.Describe()
		if _, ok := byID[desc.ID]; ok {
			return nil, fmt.Errorf("duplicate adapter registration: %s", desc.ID)
		}
		byID[desc.ID] = adapter
	}

	if adapter, ok := byID[preferred]; ok && adapter.Describe().CredentialsPresent {
		chain = append(chain, adapter)
	}
	for _, adapter := range adapters {
		desc := adapter.Describe()
		if desc.ID == preferred {
			continue
		}
		if !desc.CredentialsPresent {
			continue
		}
		if !desc.RequiresKey {
			// Keyless fallback, pinned to the end of the chain.
			tail = append(tail, adapter)
			continue
		}
		chain = append(chain, adapter)
	}
	chain = append(chain, tail...)

	if len(chain) == 0 {
		return nil, fmt.Errorf("no configured adapters for registry")
	}
	return &Registry{preferred: preferred, chain: chain, registered: adapters}, nil
}

// Preferred returns the operator's declared preferred provider.
func (r *Registry) Preferred() ID {
	return r.preferred
}

// Chain returns the adapters in fallback order. Callers must not modify
// the returned slice.
func (r *Registry) Chain() []Adapter {
	return r.chain
}

// Descriptors returns the descriptor of every adapter in the fallback
// chain, with Priority set to the chain position.
func (r *Registry) Descriptors() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.chain))
	for i, adapter := range r.chain {
		desc := adapter.Describe()
		desc.Priority = i
		descriptors = append(descriptors, desc)
	}
	return descriptors
}

// All returns the descriptor of every registered adapter in registration
// order, including those left out of the fallback chain for missing
// credentials. Adapters outside the chain carry Priority -1.
func (r *Registry) All() []Descriptor {
	position := make(map[ID]int, len(r.chain))
	for i, adapter := range r.chain {
		position[adapter.Describe().ID] = i
	}
	descriptors := make([]Descriptor, 0, len(r.registered))
	for _, adapter := range r.registered {
		desc := adapter.Describe()
		if i, ok := position[desc.ID]; ok {
			desc.Priority = i
		} else {
			desc.Priority = -1
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors
}
