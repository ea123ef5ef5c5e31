// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import "context"

// Procedure is the closed tagged union of every cryptographic operation the
// engine knows how to execute. procedureKind is unexported, which closes
// the set to the variant types defined in this package — callers outside
// procedure cannot manufacture new variants, only assemble and dispatch the
// ones declared here.
type Procedure interface {
	procedureKind() string

	// OutputLocation reports the Location a procedure will write to, if
	// any, without executing it. Use variants and Hash report ok == false:
	// they write nothing back to the vault.
	OutputLocation() (Location, bool)
}

// Kind returns the variant's wire name, e.g. "Slip10Derive". It is the
// discriminator used by MarshalProcedure and UnmarshalProcedure.
func Kind(p Procedure) string { return p.procedureKind() }

// Execute fans a Procedure out to the execution contract it implements and
// runs it. Exactly one of the four type-switch cases matches any procedure
// defined in this package; a variant that matched none or several would be
// a bug in this file, not a caller error, so the default case returns a
// FatalProcedureError rather than a plain one.
func Execute(ctx context.Context, r Runner, p Procedure) (any, error) {
	switch v := p.(type) {
	case Generator:
		products, err := v.Generate(ctx, r)
		if err != nil {
			return nil, err
		}
		return products.Output, nil
	case Deriver:
		products, err := v.Derive(ctx, r)
		if err != nil {
			return nil, err
		}
		return products.Output, nil
	case User:
		return v.Use(ctx, r)
	case Pure:
		return v.Eval()
	default:
		return nil, newFatalErr(KindCryptoPrimitiveFailure, nil, "dispatcher: procedure %s implements no known execution contract", Kind(p))
	}
}
