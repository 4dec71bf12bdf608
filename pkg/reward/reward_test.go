package reward_test

import (
	"testing"

	"github.com/sociomart/backend/pkg/reward"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Delta(t *testing.T) {
	policy := reward.Policy{Follow: 10, Like: 5, Comment: 3}

	tests := []struct {
		name   string
		action reward.Action
		want   int64
	}{
		{"follow", reward.ActionFollow, 10},
		{"like", reward.ActionLike, 5},
		{"comment", reward.ActionComment, 3},
		{"unknown action is worth nothing", reward.Action("VIEW"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Delta(tt.action))
		})
	}
}

func TestDefaultPolicy_AllPositive(t *testing.T) {
	policy := reward.DefaultPolicy()
	assert.Positive(t, policy.Delta(reward.ActionFollow))
	assert.Positive(t, policy.Delta(reward.ActionLike))
	assert.Positive(t, policy.Delta(reward.ActionComment))
}
