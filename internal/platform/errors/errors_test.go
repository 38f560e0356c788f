package errors

import (
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestGRPCCodeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeGenomeInvalidOverride, codes.InvalidArgument},
		{CodeGenomeUnknownContext, codes.InvalidArgument},
		{CodeGenomeConstraintConflict, codes.FailedPrecondition},
		{CodeGenomeExhaustedRetry, codes.Internal},
		{CodeGenomeInvariantViolation, codes.Internal},
		{CodeNotFound, codes.NotFound},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s.GRPCCode() = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("resolve: %w", WithMetadata(CodeGenomeConstraintConflict, "relic era", map[string]string{"Fields": "relicEra"}))
	if !IsCode(err, CodeGenomeConstraintConflict) {
		t.Fatalf("code = %s, want %s", GetCode(err), CodeGenomeConstraintConflict)
	}
	if got := GetMetadata(err)["Fields"]; got != "relicEra" {
		t.Fatalf("metadata Fields = %q, want relicEra", got)
	}
	if GetCode(fmt.Errorf("plain")) != CodeUnknown {
		t.Fatal("expected unknown code for plain errors")
	}
}

func TestHandleErrorAttachesDetails(t *testing.T) {
	t.Parallel()

	err := HandleError(WithMetadata(CodeGenomeInvalidOverride, "unknown heritage", map[string]string{
		"Field": "heritage",
		"Value": "atlantean",
	}), "")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected grpc status, got %v", err)
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v, want %v", st.Code(), codes.InvalidArgument)
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != string(CodeGenomeInvalidOverride) {
		t.Fatalf("error info = %v", info)
	}
	if localized == nil || localized.GetLocale() != DefaultLocale {
		t.Fatalf("localized message = %v", localized)
	}
	if localized.GetMessage() == string(CodeGenomeInvalidOverride) {
		t.Fatal("expected catalog message, got bare code")
	}
}

func TestHandleErrorHidesUnknownErrors(t *testing.T) {
	t.Parallel()

	st, _ := status.FromError(HandleError(fmt.Errorf("boom"), "en-US"))
	if st.Code() != codes.Internal || st.Message() == "boom" {
		t.Fatalf("status = %v", st)
	}
	if HandleError(nil, "en-US") != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestToGRPCStatusNamesOverrideFields(t *testing.T) {
	t.Parallel()

	invalid := WithMetadata(CodeGenomeInvalidOverride, "bad era", map[string]string{MetaField: "relicEra", MetaValue: "stone"})
	st, _ := status.FromError(invalid.ToGRPCStatus("en-US", "bad era"))
	var req *errdetails.BadRequest
	for _, detail := range st.Details() {
		if d, ok := detail.(*errdetails.BadRequest); ok {
			req = d
		}
	}
	if req == nil || len(req.GetFieldViolations()) != 1 || req.GetFieldViolations()[0].GetField() != "overrides.relicEra" {
		t.Fatalf("bad request = %v", req)
	}

	conflict := WithMetadata(CodeGenomeConstraintConflict, "relic", map[string]string{MetaFields: "hasRelic, lockedRelic"})
	st, _ = status.FromError(conflict.ToGRPCStatus("en-US", "conflict"))
	var pre *errdetails.PreconditionFailure
	for _, detail := range st.Details() {
		if d, ok := detail.(*errdetails.PreconditionFailure); ok {
			pre = d
		}
	}
	if pre == nil || len(pre.GetViolations()) != 2 {
		t.Fatalf("precondition failure = %v", pre)
	}
	if got := pre.GetViolations()[1].GetSubject(); got != "overrides.lockedRelic" {
		t.Fatalf("second subject = %q, want overrides.lockedRelic", got)
	}
}

func TestFromGRPCStatusRoundTrip(t *testing.T) {
	t.Parallel()

	err := HandleError(WithMetadata(CodeSeedOutOfRange, "seed", map[string]string{"Seed": "x"}), "es-ES")
	appErr, message, ok := FromGRPCStatus(err)
	if !ok || appErr == nil {
		t.Fatalf("FromGRPCStatus = %v, %q, %v", appErr, message, ok)
	}
	if appErr.Code != CodeSeedOutOfRange || appErr.Metadata["Seed"] != "x" {
		t.Fatalf("error = %+v", appErr)
	}
	if message != "La semilla aleatoria está fuera del rango válido" {
		t.Fatalf("message = %q", message)
	}

	appErr, message, ok = FromGRPCStatus(status.Error(codes.Unavailable, "down"))
	if !ok || appErr != nil || message != "down" {
		t.Fatalf("plain status = %v, %q, %v", appErr, message, ok)
	}
	if _, _, ok := FromGRPCStatus(fmt.Errorf("plain")); ok {
		t.Fatal("plain errors are not statuses")
	}
}
