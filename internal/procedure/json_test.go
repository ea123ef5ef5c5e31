// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"context"
	"reflect"
	"testing"
)

func TestMarshalUnmarshalProcedureRoundTrips(t *testing.T) {
	hint, _ := NewRecordHint("roundtrip")
	original := Hkdf{
		Type:   HashSHA256,
		Source: NewLocation("v1", "ikm"),
		Salt:   []byte("salt"),
		Label:  []byte("label"),
		Target: NewLocation("v1", "okm"),
		Hint:   hint,
	}

	data, err := MarshalProcedure(original)
	if err != nil {
		t.Fatalf("MarshalProcedure: %v", err)
	}

	decoded, err := UnmarshalProcedure(data)
	if err != nil {
		t.Fatalf("UnmarshalProcedure: %v", err)
	}
	got, ok := decoded.(Hkdf)
	if !ok {
		t.Fatalf("got %T, want Hkdf", decoded)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("got %+v, want %+v", got, original)
	}
}

func TestUnmarshalProcedureRejectsUnknownType(t *testing.T) {
	_, err := UnmarshalProcedure([]byte(`{"type":"NoSuchProcedure","params":{}}`))
	if err == nil {
		t.Fatal("expected an error for an unknown procedure type")
	}
}

func TestUnmarshalProcedureDispatchable(t *testing.T) {
	p := Hash{Type: HashSHA256, Msg: []byte("x")}
	data, err := MarshalProcedure(p)
	if err != nil {
		t.Fatalf("MarshalProcedure: %v", err)
	}
	decoded, err := UnmarshalProcedure(data)
	if err != nil {
		t.Fatalf("UnmarshalProcedure: %v", err)
	}
	if _, err := Execute(context.Background(), nil, decoded); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}
