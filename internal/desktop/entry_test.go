package desktop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerEntry = `[Desktop Entry]
Type=Application
Name=Player
Name[fr]=Lecteur
Exec=player %U
Icon=player
X-Distraction-Optimized=true
Actions=Preferences;Missing;

# settings
[Desktop Action Preferences]
Name=Preferences
Exec=player --preferences

[Desktop Action Unlisted]
Name=Unlisted
Exec=player --unlisted
`

func TestParse(t *testing.T) {
	entry, err := Parse(strings.NewReader(playerEntry), "org.example.Player")
	require.NoError(t, err)

	assert.Equal(t, "org.example.Player", entry.ID)
	assert.Equal(t, "Player", entry.Name)
	assert.Equal(t, "player %U", entry.Exec)
	assert.Equal(t, "player", entry.Icon)
	assert.True(t, entry.DistractionOptimized)
	assert.True(t, entry.Exported())
	assert.Equal(t, map[string]Action{
		"Preferences": {ID: "Preferences", Name: "Preferences", Exec: "player --preferences"},
	}, entry.Actions)
}

func TestParse_Hidden(t *testing.T) {
	for _, key := range []string{"NoDisplay", "Hidden"} {
		t.Run(key, func(t *testing.T) {
			src := "[Desktop Entry]\nName=x\n" + key + "=true\n"
			entry, err := Parse(strings.NewReader(src), "x")
			require.NoError(t, err)
			assert.False(t, entry.Exported())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing main group", "[Other]\nName=x\n"},
		{"malformed header", "[Desktop Entry\nName=x\n"},
		{"key outside group", "Name=x\n[Desktop Entry]\n"},
		{"line without separator", "[Desktop Entry]\nName\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src), "x")
			assert.Error(t, err)
		})
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		exec string
		want []string
	}{
		{"player", []string{"player"}},
		{"player %U", []string{"player"}},
		{"player --file=%f -x", []string{"player", "--file=", "-x"}},
		{`"/opt/My Player/bin" --prefs`, []string{"/opt/My Player/bin", "--prefs"}},
		{`sh -c "echo \"hi\""`, []string{"sh", "-c", `echo "hi"`}},
		{"printf 100%%", []string{"printf", "100%"}},
		{`player ""`, []string{"player", ""}},
		{"  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.exec, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandLine(tt.exec))
		})
	}
}
