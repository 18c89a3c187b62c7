package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionPayload_Validate(t *testing.T) {
	tests := []struct {
		dir     string
		wantErr bool
	}{
		{"UP", false},
		{"down", false},
		{" Left ", false},
		{"RIGHT", false},
		{"", true},
		{"NORTH", true},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			err := DirectionPayload{Direction: tt.dir}.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrBadDirection))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientCommand_Decode(t *testing.T) {
	var cmd ClientCommand
	require.NoError(t, json.Unmarshal([]byte(`{"action":"MOVE","payload":{"direction":"UP"}}`), &cmd))

	var p DirectionPayload
	require.NoError(t, json.Unmarshal(cmd.Payload, &p))
	assert.Equal(t, "MOVE", cmd.Action)
	assert.Equal(t, "UP", p.Direction)
}
