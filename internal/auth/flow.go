// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

// phase is embedded in every pipeline stage. A stage may advance once;
// the value returned by a transition is the only handle on the next stage.
type phase struct {
	advanced bool
}

// advance marks the stage spent, failing if it already was.
func (p *phase) advance(name string) error {
	if p.advanced {
		return KindInternal.Builder().
			With("phase", name).
			Errorf("flow phase already advanced")
	}
	p.advanced = true
	return nil
}
