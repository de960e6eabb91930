package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/viant/mcp-protocol/authorization"
	oauthmeta "github.com/viant/mcp-protocol/oauth2/meta"
	mcpsrv "github.com/viant/mcp/server"
	serverauth "github.com/viant/mcp/server/auth"
	"github.com/viant/scy"
	"github.com/viant/scy/auth/flow"
	"github.com/viant/scy/cred"
	_ "github.com/viant/scy/kms/blowfish"
)

// oauth2Options protects the /mcp endpoint with the OAuth2 client stored at ref (scy EncodedResource).
// Patch tools write files, so every route except SSE requires a token.
func oauth2Options(ctx context.Context, ref string, useIDToken bool) ([]mcpsrv.Option, error) {
	secret, err := scy.New().Load(ctx, scy.EncodedResource(ref).Decode(ctx, cred.Oauth2Config{}))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load oauth2config %v", ref)
	}
	client, ok := secret.Target.(*cred.Oauth2Config)
	if !ok {
		return nil, errors.Errorf("invalid oauth2config secret type %T", secret.Target)
	}
	policy := &authorization.Policy{
		Global: &authorization.Authorization{
			UseIdToken: useIDToken,
			ProtectedResourceMetadata: &oauthmeta.ProtectedResourceMetadata{
				AuthorizationServers: []string{client.Config.Endpoint.AuthURL},
			},
		},
		ExcludeURI: "/sse",
	}
	authService, err := serverauth.New(&serverauth.Config{
		Policy: policy,
		BackendForFrontend: &serverauth.BackendForFrontend{
			Client:                      &client.Config,
			AuthorizationExchangeHeader: flow.AuthorizationExchangeHeader,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to init auth service")
	}
	return []mcpsrv.Option{
		mcpsrv.WithAuthorizer(authService.Middleware),
		mcpsrv.WithProtectedResourcesHandler(authService.ProtectedResourcesHandler),
	}, nil
}
