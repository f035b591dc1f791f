package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
)

func testRegistry() *converter.Registry {
	loc := time.FixedZone("GMT+0800", 8*3600)
	return converter.NewRegistry(converter.Options{
		Location: loc,
		Now:      func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, loc) },
	})
}

func call(args map[string]any) goMCP.CallToolRequest {
	var req goMCP.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *goMCP.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(goMCP.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestClassifyHandler(t *testing.T) {
	h := ClassifyHandler(classify.DialectMySQL)

	res, err := h(context.Background(), call(map[string]any{"column_type": "INTERVAL DAY(3) TO SECOND", "dialect": "ob_oracle"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, "INTERVAL_DAY_TO_SECOND", out["category"])
	assert.Equal(t, "NORMAL", out["defaultRule"])

	res, err = h(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDefaultHandler(t *testing.T) {
	h := DefaultHandler(testRegistry(), classify.DialectMySQL)

	res, err := h(context.Background(), call(map[string]any{
		"column": `{"columnName":"flag","columnType":"CHAR(5)","columnObj":{"width":5}}`,
		"rule":   "BOOL",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var col converter.FormColumn
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &col))
	assert.Equal(t, "BOOL", string(col.Rule))
	require.NotNil(t, col.TypeConfig.GenParams.FixText)
	assert.Equal(t, "true", *col.TypeConfig.GenParams.FixText)

	res, err = h(context.Background(), call(map[string]any{
		"column": `{"columnName":"flag","columnType":"CHAR(5)"}`,
		"rule":   "ORDER",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestConvertHandlers(t *testing.T) {
	reg := testRegistry()
	toServer := ToServerHandler(reg, classify.DialectOracle)
	toForm := ToFormHandler(reg, classify.DialectOracle)

	res, err := toServer(context.Background(), call(map[string]any{
		"columns": `[{"columnName":"span","columnType":"INTERVAL YEAR(2) TO MONTH","rule":"NORMAL","typeConfig":{"genParams":{"interval":{"years":1,"months":6}}}}]`,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	servers := text(t, res)
	assert.Contains(t, servers, `"+01-06"`)

	res, err = toForm(context.Background(), call(map[string]any{"columns": servers}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var forms []converter.FormColumn
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &forms))
	require.Len(t, forms, 1)
	assert.Equal(t, &converter.Interval{Years: 1, Months: 6}, forms[0].TypeConfig.GenParams.Interval)

	res, err = toServer(context.Background(), call(map[string]any{"columns": `not json`}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
