package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for mcc resources.
	uriScheme = "mcc://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Session state: selected account, developer token status and last error",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "customers/{customerId}",
		Name:        "customer",
		Description: "A customer from the last refresh",
		MIMEType:    "application/json",
	}, s.handleCustomerResource)
}

// statusInfo is the JSON body of the status resource.
type statusInfo struct {
	State          string `json:"state"`
	Account        string `json:"account,omitempty"`
	DeveloperToken string `json:"developer_token,omitempty"`
	TokenValid     bool   `json:"token_valid"`
	TokenMessage   string `json:"token_message,omitempty"`
	Customers      int    `json:"customers"`
	Error          string `json:"error,omitempty"`
	Notice         string `json:"notice,omitempty"`
}

func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap := s.ports.Manager.Snapshot()

	info := statusInfo{
		State:        snap.State.String(),
		TokenValid:   snap.TokenValidation.Valid,
		TokenMessage: snap.TokenValidation.Message,
		Customers:    len(snap.Customers),
		Notice:       snap.Notice,
	}
	if snap.Selected != nil {
		info.Account = snap.Selected.Email
	}
	if snap.DeveloperToken != "" {
		info.DeveloperToken = domain.MaskToken(snap.DeveloperToken)
	}
	if snap.Err != nil {
		info.Error = snap.Err.Error()
	}

	return jsonResource(req.Params.URI, info)
}

func (s *Server) handleCustomerResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractCustomerID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	for _, c := range s.ports.Manager.Snapshot().Customers {
		if c.ID == id {
			return jsonResource(req.Params.URI, toCustomerOutput(c))
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCustomerID extracts the id from a URI like mcc://customers/{customerId}.
func extractCustomerID(uri string) string {
	id, ok := strings.CutPrefix(uri, uriScheme+"customers/")
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
