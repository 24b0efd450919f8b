package shell_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/prerender/internal/adapters/shell"
)

func envMap(env []string) map[string]string {
	m := make(map[string]string, len(env))
	for _, entry := range env {
		for i := 0; i < len(entry); i++ {
			if entry[i] == '=' {
				m[entry[:i]] = entry[i+1:]
				break
			}
		}
	}
	return m
}

func TestResolveEnvironment(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name      string
		sysEnv    []string
		toolPath  []string
		overrides map[string]string
		want      map[string]string
	}{
		{
			name:   "system only",
			sysEnv: []string{"PATH=/usr/bin", "HOME=/home/u"},
			want:   map[string]string{"PATH": "/usr/bin", "HOME": "/home/u"},
		},
		{
			name:     "tool path prepended",
			sysEnv:   []string{"PATH=/usr/bin"},
			toolPath: []string{"/site/node_modules/.bin", "/opt/bin"},
			want:     map[string]string{"PATH": "/site/node_modules/.bin" + sep + "/opt/bin" + sep + "/usr/bin"},
		},
		{
			name:     "tool path without system path",
			toolPath: []string{"/opt/bin"},
			want:     map[string]string{"PATH": "/opt/bin"},
		},
		{
			name:      "overrides win",
			sysEnv:    []string{"PATH=/usr/bin", "LANG=C"},
			toolPath:  []string{"/opt/bin"},
			overrides: map[string]string{"LANG": "en_US.UTF-8", "PATH": "/only"},
			want:      map[string]string{"PATH": "/only", "LANG": "en_US.UTF-8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shell.ResolveEnvironmentExported(tt.sysEnv, tt.toolPath, tt.overrides)
			assert.Equal(t, tt.want, envMap(got))
		})
	}
}
