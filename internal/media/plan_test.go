package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanUpdate(t *testing.T) {
	images := []string{"u1", "u2", "u3"}
	ids := []string{"i1", "i2", "i3"}

	tests := []struct {
		name string
		keep []string
		want Plan
	}{
		{
			name: "keep all",
			keep: []string{"u3", "u1", "u2"},
			want: Plan{KeptURLs: []string{"u1", "u2", "u3"}, KeptPublicIDs: []string{"i1", "i2", "i3"}, Removed: []string{}},
		},
		{
			name: "drop middle",
			keep: []string{"u1", "u3"},
			want: Plan{KeptURLs: []string{"u1", "u3"}, KeptPublicIDs: []string{"i1", "i3"}, Removed: []string{"i2"}},
		},
		{
			name: "drop all",
			keep: nil,
			want: Plan{KeptURLs: []string{}, KeptPublicIDs: []string{}, Removed: []string{"i1", "i2", "i3"}},
		},
		{
			name: "foreign url ignored",
			keep: []string{"u2", "https://elsewhere/x.png"},
			want: Plan{KeptURLs: []string{"u2"}, KeptPublicIDs: []string{"i2"}, Removed: []string{"i1", "i3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanUpdate(images, ids, tt.keep))
		})
	}
}

func TestPlanUpdateShortPublicIDs(t *testing.T) {
	plan := PlanUpdate([]string{"u1", "u2"}, []string{"i1"}, []string{"u1"})

	assert.Equal(t, []string{"u1"}, plan.KeptURLs)
	assert.Equal(t, []string{"i1"}, plan.KeptPublicIDs)
	assert.Empty(t, plan.Removed)
}
