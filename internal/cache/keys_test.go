package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "session key",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "01HZX3Q6G7",
			expectedKey: "birdquiz:quiz:session:01HZX3Q6G7",
		},
		{
			name:        "empty params behave like none",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "abc",
			paramsKey:   []string{},
			expectedKey: "birdquiz:quiz:session:abc",
		},
		{
			name:        "recording query with params",
			serviceName: "xenocanto",
			objectType:  "recordings",
			identifier:  "Horornis diphone",
			paramsKey:   []string{"song", "5"},
			expectedKey: "birdquiz:xenocanto:recordings:Horornis diphone:song_5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}
