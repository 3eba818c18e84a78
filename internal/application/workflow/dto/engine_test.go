package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowEngineResponse_AssignedToEncoding(t *testing.T) {
	owner := "security"
	hours := 4

	tests := []struct {
		name string
		resp WorkflowEngineResponse
		want string
	}{
		{
			name: "assigned",
			resp: WorkflowEngineResponse{Success: true, AssignedTo: AssignedTo(&owner), RuleName: "Critical", Hours: &hours},
			want: `{"success":true,"assigned_to":"security","rule_name":"Critical","hours":4}`,
		},
		{
			name: "no match keeps explicit null",
			resp: WorkflowEngineResponse{Success: true, AssignedTo: AssignedTo(nil), Message: "no rule matched"},
			want: `{"success":true,"assigned_to":null,"message":"no rule matched"}`,
		},
		{
			name: "field omitted for other actions",
			resp: WorkflowEngineResponse{Success: false, Error: "no escalation target available"},
			want: `{"success":false,"error":"no escalation target available"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
