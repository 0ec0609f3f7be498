package mcpserver

import (
	"testing"

	"github.com/fatih/color"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

func fixtureCache() *dataset.Cache {
	return dataset.NewCacheWithLoader("snmptn_all.xlsx", dataset.Columns{}, func(string, dataset.Columns) (*dataset.Dataset, error) {
		return &dataset.Dataset{
			Path: "snmptn_all.xlsx",
			Records: []dataset.Record{
				{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "S1", Institution: "A", Program: "X", Quota: dataset.Some(10), Applicants: dataset.Some(100)},
				{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "S1", Institution: "A", Program: "Y", Quota: dataset.Some(5), Applicants: dataset.Some(20)},
				{Year: "2022", Regency: "Kota Malang", Province: "Jawa Timur", Level: "D3", Institution: "B", Program: "X", Quota: dataset.Some(8), Applicants: dataset.Some(0)},
			},
		}, nil
	})
}

func testTools(t *testing.T) *tools {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	return &tools{cache: fixtureCache()}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}
