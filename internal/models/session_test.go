package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_TabCount(t *testing.T) {
	cases := []struct {
		name   string
		result Result
		want   int
	}{
		{"zero value", Result{}, 0},
		{
			name: "mixed deleted windows and tabs",
			result: Result{Windows: []ResultWindow{
				{Deleted: false, Tabs: []ResultTab{{}, {Deleted: true}, {}}},
				{Deleted: true, Tabs: []ResultTab{{}, {}}},
			}},
			want: 2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.result.TabCount())
		})
	}
}
