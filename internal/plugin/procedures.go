// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/procedure"
	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/runner"
)

// pathProcedures returns the path configuration for procedures/execute and
// procedures/output.
func (b *strongholdBackend) pathProcedures() []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "procedures/execute",
			Fields: map[string]*framework.FieldSchema{
				"procedure": {
					Type:        framework.TypeString,
					Description: "A self-describing procedure envelope, as produced by procedure.MarshalProcedure.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.handleExecuteProcedure,
					Summary:  "Execute a procedure against secrets held in this mount.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.handleExecuteProcedure,
					Summary:  "Execute a procedure against secrets held in this mount.",
				},
			},
			ExistenceCheck:  b.proceduresExist,
			HelpSynopsis:    pathProceduresExecuteHelpSyn,
			HelpDescription: pathProceduresExecuteHelpDesc,
		},
		{
			Pattern: "procedures/output",
			Fields: map[string]*framework.FieldSchema{
				"procedure": {
					Type:        framework.TypeString,
					Description: "A self-describing procedure envelope to inspect without executing.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.handleProcedureOutput,
					Summary:  "Report the location a procedure would write to, without executing it.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.handleProcedureOutput,
					Summary:  "Report the location a procedure would write to, without executing it.",
				},
			},
			ExistenceCheck:  b.proceduresExist,
			HelpSynopsis:    pathProceduresOutputHelpSyn,
			HelpDescription: pathProceduresOutputHelpDesc,
		},
	}
}

// handleExecuteProcedure decodes the request's procedure envelope, fills in
// the mount's configured default hash/AEAD algorithm for any variant field
// the request left blank, runs it against a fresh VaultRunner over this
// request's storage, and reports either the non-secret Output or a
// classified error.
func (b *strongholdBackend) handleExecuteProcedure(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	raw := data.Get("procedure").(string)
	if raw == "" {
		return nil, fmt.Errorf("procedure: field is required")
	}

	proc, err := procedure.UnmarshalProcedure([]byte(raw))
	if err != nil {
		return nil, err
	}

	cfg, err := b.getConfig(ctx, req.Storage)
	if err != nil {
		return nil, err
	}
	proc = procedure.ApplyDefaults(proc, procedure.HashType(cfg.DefaultHash), procedure.AeadAlgorithm(cfg.DefaultAead))

	r := runner.New(req.Storage, b.Logger())
	out, err := procedure.Execute(ctx, r, proc)
	if err != nil {
		return b.respondProcedureError(err)
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"type":   procedure.Kind(proc),
			"output": out,
		},
	}, nil
}

// handleProcedureOutput decodes a procedure envelope and reports the
// Location it would write to, without running it.
func (b *strongholdBackend) handleProcedureOutput(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	raw := data.Get("procedure").(string)
	if raw == "" {
		return nil, fmt.Errorf("procedure: field is required")
	}

	proc, err := procedure.UnmarshalProcedure([]byte(raw))
	if err != nil {
		return nil, err
	}

	loc, ok := proc.OutputLocation()
	resp := &logical.Response{
		Data: map[string]interface{}{
			"type":       procedure.Kind(proc),
			"has_output": ok,
			"vault_id":   loc.VaultID,
			"record_id":  loc.RecordID,
		},
	}
	return resp, nil
}

// respondProcedureError maps the engine's two-level error taxonomy onto a
// Vault response: a recoverable ProcedureError surfaces as a normal error
// response, while a FatalProcedureError is logged at error level before
// being returned, since the caller cannot usefully retry it.
func (b *strongholdBackend) respondProcedureError(err error) (*logical.Response, error) {
	if procedure.IsFatal(err) {
		b.Logger().Error("procedure execution failed fatally", "error", err)
	}
	return nil, err
}

// proceduresExist is the ExistenceCheck for both procedure paths. Neither
// path addresses a named resource in storage — they execute or inspect a
// request body — so this is always false, matching Vault's convention for
// action-style endpoints.
func (b *strongholdBackend) proceduresExist(context.Context, *logical.Request, *framework.FieldData) (bool, error) {
	return false, nil
}

const pathProceduresExecuteHelpSyn = `Execute a cryptographic procedure.`

const pathProceduresExecuteHelpDesc = `
This endpoint decodes a self-describing procedure envelope and executes it:
fetching any referenced secret under a guarded lease, invoking the named
cryptographic primitive, and committing any produced secret back to this
mount's storage.

The response's "output" field holds only non-secret material: a derived
public key, a signature, a digest, a mnemonic sentence, or similar. The
produced secret itself, if any, is never returned — only written to its
target location.
`

const pathProceduresOutputHelpSyn = `Report where a procedure would write, without executing it.`

const pathProceduresOutputHelpDesc = `
This endpoint decodes a procedure envelope and reports has_output,
vault_id, and record_id describing the Location the procedure would write
to if executed — a pure structural projection that touches no storage and
runs no cryptography.
`
