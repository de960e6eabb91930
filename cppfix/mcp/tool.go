package mcp

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
	"go.uber.org/zap"

	"github.com/viant/rcheck-toolbox/cppfix/service"
)

//go:embed tools/cppfixPatchSource.md
var descPatchSource string

//go:embed tools/cppfixPreviewSource.md
var descPreviewSource string

func registerTools(base *protoserver.DefaultHandler, h *Handler) error {
	svc := h.service

	// each call gets its own run id; the caller lands in the service audit line
	begin := func(ctx context.Context, tool string, in *service.PatchInput) context.Context {
		runID := uuid.NewString()
		caller := h.identity.Caller(ctx)
		svc.Logger().Debug("tool call",
			zap.String("tool", tool),
			zap.String("run", runID),
			zap.String("caller", caller),
			zap.String("path", in.Path))
		return service.WithCaller(service.WithRunID(ctx, runID), caller)
	}

	// Patch source in place
	if err := protoserver.RegisterTool[*service.PatchInput, *service.PatchOutput](base.Registry, "cppfixPatchSource", descPatchSource, func(ctx context.Context, in *service.PatchInput) (*schema.CallToolResult, *jsonrpc.Error) {
		if in == nil {
			in = &service.PatchInput{}
		}
		out, err := svc.Patch(begin(ctx, "cppfixPatchSource", in), in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(svc, out)
	}); err != nil {
		return err
	}

	// Preview without writing
	if err := protoserver.RegisterTool[*service.PatchInput, *service.PreviewOutput](base.Registry, "cppfixPreviewSource", descPreviewSource, func(ctx context.Context, in *service.PatchInput) (*schema.CallToolResult, *jsonrpc.Error) {
		if in == nil {
			in = &service.PatchInput{}
		}
		out, err := svc.Preview(begin(ctx, "cppfixPreviewSource", in), in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(svc, out)
	}); err != nil {
		return err
	}
	return nil
}

func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

func buildSuccessResult(svc *service.Service, payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	if svc.UseTextField() {
		b, _ := json.Marshal(payload)
		return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{{Type: "text", Text: string(b)}}}, nil
	}
	return &schema.CallToolResult{StructuredContent: map[string]any{"result": payload}}, nil
}
