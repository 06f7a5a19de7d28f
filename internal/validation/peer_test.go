package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePeerURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain http url",
			raw:  "http://localhost:8080",
			want: "http://localhost:8080",
		},
		{
			name: "trailing slash stripped",
			raw:  "http://localhost:8080/",
			want: "http://localhost:8080",
		},
		{
			name: "uppercase host normalized",
			raw:  "HTTP://NODE-1.Example.COM:9000",
			want: "http://node-1.example.com:9000",
		},
		{
			name: "default http port added",
			raw:  "http://example.com",
			want: "http://example.com:80",
		},
		{
			name: "default https port added",
			raw:  "https://example.com",
			want: "https://example.com:443",
		},
		{
			name: "path ignored",
			raw:  "http://localhost:8080/api/v1",
			want: "http://localhost:8080",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  http://localhost:8080  ",
			want: "http://localhost:8080",
		},
		{
			name:    "empty url",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "missing scheme",
			raw:     "localhost:8080",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			raw:     "ftp://localhost:8080",
			wantErr: true,
		},
		{
			name:    "scheme without host",
			raw:     "http://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePeerURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePeerURL_Idempotent(t *testing.T) {
	once, err := NormalizePeerURL("HTTP://Example.com:8080/")
	require.NoError(t, err)

	twice, err := NormalizePeerURL(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}
