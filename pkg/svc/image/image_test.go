package image_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanketmote05/cicd-pipeline/pkg/svc/image"
)

func TestNewReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		registry   string
		repository string
		tag        string
		expected   string
		wantErr    bool
	}{
		{
			name:       "docker hub",
			registry:   "docker.io",
			repository: "sanket/hello-world",
			tag:        "3f2a1b4c5d6e",
			expected:   "docker.io/sanket/hello-world:3f2a1b4c5d6e",
		},
		{
			name:       "local registry with port",
			registry:   "localhost:5000",
			repository: "hello-world",
			tag:        "3f2a1b4c5d6e",
			expected:   "localhost:5000/hello-world:3f2a1b4c5d6e",
		},
		{
			name:       "invalid tag",
			registry:   "docker.io",
			repository: "sanket/hello-world",
			tag:        "not a tag",
			wantErr:    true,
		},
		{
			name:       "invalid repository",
			registry:   "docker.io",
			repository: "UPPER/Case",
			tag:        "3f2a1b4c5d6e",
			wantErr:    true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ref, err := image.NewReference(testCase.registry, testCase.repository, testCase.tag)

			if testCase.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, ref.String())
		})
	}
}
