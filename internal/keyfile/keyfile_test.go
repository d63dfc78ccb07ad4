package keyfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_key.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "valid key",
			content: "sk-abc123",
			want:    "sk-abc123",
		},
		{
			name:    "trailing newline is trimmed",
			content: "sk-test123\n",
			want:    "sk-test123",
		},
		{
			name:    "surrounding whitespace is trimmed",
			content: "  sk-abc123\t\n",
			want:    "sk-abc123",
		},
		{
			name:    "empty file",
			content: "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			content: "   \n",
			wantErr: true,
		},
		{
			name:    "interior whitespace",
			content: "sk-abc 123",
			wantErr: true,
		},
		{
			name:    "two lines",
			content: "sk-abc\nsk-def",
			wantErr: true,
		},
		{
			name:    "wrong prefix",
			content: "pk-abc123",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeKeyFile(t, tt.content)
			got, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
