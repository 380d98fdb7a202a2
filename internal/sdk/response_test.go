package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoginResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want LoginResponse
	}{
		{
			name: "code flow",
			raw:  `{"status":"connected","authResponse":{"code":"abc","userID":"42","expiresIn":3600}}`,
			want: LoginResponse{Status: "connected", AuthResponse: &AuthResponse{Code: "abc", UserID: "42", ExpiresIn: 3600}},
		},
		{
			name: "token flow",
			raw:  `{"status":"connected","authResponse":{"accessToken":"token-1","userID":7,"expiresIn":"60"}}`,
			want: LoginResponse{Status: "connected", AuthResponse: &AuthResponse{AccessToken: "token-1", UserID: "7", ExpiresIn: 60}},
		},
		{
			name: "dismissed popup",
			raw:  `{"status":"unknown","authResponse":null}`,
			want: LoginResponse{Status: "unknown"},
		},
		{
			name: "wrong field types",
			raw:  `{"status":{},"authResponse":{"code":true,"accessToken":["x"]}}`,
			want: LoginResponse{AuthResponse: &AuthResponse{}},
		},
		{name: "null", raw: `null`},
		{name: "not json", raw: `<undefined>`},
		{name: "empty", raw: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLoginResponse(tt.raw)
			if tt.want.AuthResponse == nil {
				require.Nil(t, got.AuthResponse)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
