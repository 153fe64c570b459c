package plans

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-preplan/pkg/models"
)

const limitPlanYAML = `
plan_id: dc_transfer_limit
title: DC transfer limit
description: compute the net transfer limit of a DC line
version: "1.0"
variables:
  - name: sending-end limit
    symbol: P_max_send
    unit: MW
  - name: receiving-end limit
    symbol: P_max_receive
    unit: MW
steps:
  - id: step1
    type: tool
    description: query the sending-end limit
    tool_name: query_send_limit
    inputs:
      line: "{line}"
    outputs: [P_max_send]
  - id: step2
    type: tool
    description: query the receiving-end limit
    tool_name: query_recv_limit
    inputs:
      line: "{line}"
    outputs: [P_max_receive]
  - id: step3
    type: compute
    description: take the smaller of the two limits
    formula: min(P_max_send, P_max_receive)
    inputs:
      P_max_send: "{P_max_send}"
      P_max_receive: "{P_max_receive}"
    outputs: [P_max_net]
plan_inputs:
  line: DC line name
plan_outputs: [P_max_net]
`

func TestLoadYAML(t *testing.T) {
	plan, err := Load([]byte(limitPlanYAML))
	require.NoError(t, err)

	assert.Equal(t, "dc_transfer_limit", plan.PlanID)
	require.Len(t, plan.Steps, 3)
	assert.Equal(t, models.StepToolCall, plan.Steps[0].Kind)
	assert.Equal(t, models.StepCompute, plan.Steps[2].Kind)
	assert.Equal(t, "{line}", plan.Steps[0].Inputs["line"])
	assert.Equal(t, []string{"P_max_net"}, plan.PlanOutputs)
}

func TestLoadJSON(t *testing.T) {
	doc := `{
		"plan_id": "json_plan",
		"title": "json plan",
		"description": "a json-encoded plan",
		"steps": [
			{"id": "step1", "type": "rag", "description": "look something up", "query": "something", "outputs": ["answer"]}
		]
	}`

	plan, err := Load([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "json_plan", plan.PlanID)
	assert.Equal(t, models.StepRetrieve, plan.Steps[0].Kind)
}

func TestLoadSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing plan id",
			doc: `
title: t
description: d
steps:
  - {id: s1, type: rag, description: d, query: q, outputs: [a]}
`,
			want: "missing plan_id",
		},
		{
			name: "missing title",
			doc: `
plan_id: p
description: d
steps:
  - {id: s1, type: rag, description: d, query: q, outputs: [a]}
`,
			want: "missing title",
		},
		{
			name: "no steps",
			doc: `
plan_id: p
title: t
description: d
steps: []
`,
			want: "no steps",
		},
		{
			name: "duplicate step ids",
			doc: `
plan_id: p
title: t
description: d
steps:
  - {id: s1, type: rag, description: d, query: q, outputs: [a]}
  - {id: s1, type: rag, description: d, query: q, outputs: [b]}
`,
			want: "duplicate step id",
		},
		{
			name: "unknown step type",
			doc: `
plan_id: p
title: t
description: d
steps:
  - {id: s1, type: branch, description: d, outputs: [a]}
`,
			want: "unknown type",
		},
		{
			name: "rag step without query",
			doc: `
plan_id: p
title: t
description: d
steps:
  - {id: s1, type: rag, description: d, outputs: [a]}
`,
			want: "requires query",
		},
		{
			name: "tool step without tool name",
			doc: `
plan_id: p
title: t
description: d
steps:
  - {id: s1, type: tool, description: d, outputs: [a]}
`,
			want: "requires tool_name",
		},
		{
			name: "compute step without formula",
			doc: `
plan_id: p
title: t
description: d
steps:
  - {id: s1, type: compute, description: d, outputs: [a]}
`,
			want: "requires formula",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Contains(t, schemaErr.Error(), tt.want)
		})
	}
}
