package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/backend/tools"
)

type echoTool struct{}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "echoes its input back" }
func (echoTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (echoTool) Execute(_ context.Context, input json.RawMessage) (json.RawMessage, error) {
	return input, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	registry := tools.NewToolRegistry()
	registry.Register(echoTool{})

	router := gin.New()
	NewServer(registry).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRPCToolsList(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/mcp", Request{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		JSONRPC string          `json:"jsonrpc"`
		Result  ToolsListResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	require.Len(t, resp.Result.Tools, 1)
	assert.Equal(t, "echo", resp.Result.Tools[0].Name)
}

func TestRPCToolsCall(t *testing.T) {
	router := newTestRouter()

	params, _ := json.Marshal(ToolCallParams{
		Name:      "echo",
		Arguments: json.RawMessage(`{"hello":"world"}`),
	})
	w := postJSON(t, router, "/api/v1/mcp", Request{
		JSONRPC: "2.0",
		ID:      2,
		Method:  "tools/call",
		Params:  params,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result ToolCallResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Result.Content, 1)
	assert.False(t, resp.Result.IsError)
	assert.JSONEq(t, `{"hello":"world"}`, resp.Result.Content[0].Text)
}

func TestRPCUnknownMethod(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/mcp", Request{
		JSONRPC: "2.0",
		ID:      3,
		Method:  "resources/list",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestToolsCallUnknownTool(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/mcp/tools/call", ToolCallParams{
		Name:      "missing",
		Arguments: json.RawMessage(`{}`),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result ToolCallResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.IsError)
}
