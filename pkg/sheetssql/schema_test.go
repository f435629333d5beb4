package sheetssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestRun struct {
	ID       string `ssql_header:"id" ssql_type:"uuid"`
	Event    string `ssql_header:"event" ssql_type:"text"`
	Assigned int    `ssql_header:"assigned" ssql_type:"int"`
}

type TestSlotFill struct {
	ID        string `ssql_header:"id" ssql_type:"uuid"`
	RunID     string `ssql_header:"run_id" ssql_type:"uuid"`
	Slot      string `ssql_header:"slot" ssql_type:"text"`
	Candidate string `ssql_header:"candidate" ssql_type:"text"`
	Filled    bool   `ssql_header:"filled" ssql_type:"bool"`
}

func TestSchemaFromModels_SingleModel(t *testing.T) {
	schema, err := SchemaFromModels(TestRun{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 1)
	table := schema.Tables[0]

	assert.Equal(t, "test_run", table.Name)
	assert.Equal(t, []Column{
		{Name: "id", Type: "uuid"},
		{Name: "event", Type: "text"},
		{Name: "assigned", Type: "int"},
	}, table.Columns)
}

func TestSchemaFromModels_MultipleModels(t *testing.T) {
	schema, err := SchemaFromModels(TestRun{}, &TestSlotFill{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 2)
	assert.Equal(t, "test_run", schema.Tables[0].Name)
	assert.Len(t, schema.Tables[0].Columns, 3)
	assert.Equal(t, "test_slot_fill", schema.Tables[1].Name)
	assert.Len(t, schema.Tables[1].Columns, 5)
}

func TestSchemaFromModels_Errors(t *testing.T) {
	type MissingHeader struct {
		ID string `ssql_type:"uuid"`
	}
	type MissingType struct {
		ID string `ssql_header:"id"`
	}
	type Empty struct{}

	tests := []struct {
		name  string
		model interface{}
		want  string
	}{
		{"missing header", MissingHeader{}, "missing 'ssql_header' tag"},
		{"missing type", MissingType{}, "missing 'ssql_type' tag"},
		{"not a struct", "run_summary", "must be a struct"},
		{"no fields", Empty{}, "has no fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SchemaFromModels(tt.model)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"RunSummary", "run_summary"},
		{"SignupResponse", "signup_response"},
		{"UUID", "u_u_i_d"},
		{"simple", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, toSnakeCase(tt.input))
		})
	}
}
