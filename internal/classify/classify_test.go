package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/miniremind/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Drink water", model.CategoryWater},
		{"time to HYDRATE", model.CategoryWater},
		{"Stand up and stretch", model.CategoryStretch},
		{"rest your eyes", model.CategoryEye},
		{"coffee break", model.CategoryBreak},
		{"Call dentist", model.CategoryGeneral},
		{"", model.CategoryGeneral},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}
