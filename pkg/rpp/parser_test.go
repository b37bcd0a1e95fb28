package rpp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProject = `<REAPER_PROJECT 0.1 "7.22/macOS-arm64" 1735524019
  TEMPO 121 4 4
  <TRACK {8A4843A5-257E-9F43-98B8-8F734973B793}
    NAME "intro lead"
    PEAKCOL 16576
    VOLPAN 0.91875046047611 0 -1 -1 1
    MUTESOLO 0 0 0
    <FXCHAIN
      WNDRECT 0 428 1059 516
      SHOW 0
      LASTSEL 0
      BYPASS 0 0 0
      <VST "VST3: ValhallaSupermassive (Valhalla DSP, LLC)" ValhallaSupermassive.vst3 0 "" 588216008{565354734D617376616C68616C6C6173} ""
        yHYPI+5e7f4CAAAAAQAAAAAAAAACAAAAAAAAAAIAAAABAAAAAAAAAAIAAAAAAAAALQMAAAEAAAD//xAA
        AAAQAAAA
      >
      FLOATPOS 0 0 0 0
    >
  >
`

const sampleProjectWithItems = `<REAPER_PROJECT 0.1 "7.22/macOS-arm64" 1735524019
  TEMPO 120 4 4
  <TRACK {12345678-1234-1234-1234-123456789ABC}
    NAME "Test Track"
    VOLPAN 1.0 0.0 -1 -1 1
    MUTESOLO 0 0
    <ITEM
      POSITION 0.0
      LENGTH 5.5
      <SOURCE WAVE
        FILE "test_audio.wav"
      >
    >
    <ITEM
      POSITION 6.0
      LENGTH 3.2
      <SOURCE WAVE
        FILE "test_audio2.wav"
      >
    >
  >
>
`

func TestParseProjectBasics(t *testing.T) {
	project, err := NewParser().Parse(sampleProject, "/projects/demo.rpp")
	require.NoError(t, err)

	assert.Equal(t, 121.0, project.Tempo)
	assert.Equal(t, "4/4", project.TimeSignature)
	assert.Equal(t, "demo", project.Name)
	assert.Equal(t, "/projects/demo.rpp", project.Location)
	require.Len(t, project.Tracks, 1)
}

func TestParseTrackProperties(t *testing.T) {
	project, err := NewParser().Parse(sampleProject, "/projects/demo.rpp")
	require.NoError(t, err)

	track := project.Tracks[0]
	assert.Equal(t, "intro lead", track.Name)
	assert.Equal(t, 0.91875046047611, track.Volume)
	assert.Equal(t, 0.0, track.Pan)
	assert.False(t, track.Mute)
	assert.False(t, track.Solo)
}

func TestParseFXChain(t *testing.T) {
	project, err := NewParser().Parse(sampleProject, "/projects/demo.rpp")
	require.NoError(t, err)

	track := project.Tracks[0]
	require.Len(t, track.Effects, 1)

	fx := track.Effects[0]
	assert.Equal(t, "VST3: ValhallaSupermassive (Valhalla DSP, LLC)", fx.Name)
	assert.False(t, fx.Bypassed)
	// Only the pure-alphanumeric chunk is accumulated; the chunk containing
	// base64 symbol characters is skipped.
	assert.Equal(t, "AAAQAAAA", fx.Params.Data)
	assert.False(t, fx.Params.Truncated)
}

func TestParseEncodedDataTruncation(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<TRACK\n<FXCHAIN\n<VST \"VST3: Big\" big.vst3\n")
	for i := 0; i < 20; i++ {
		sb.WriteString(strings.Repeat("A", 100) + "\n")
	}
	sb.WriteString(">\n>\n>\n")

	project, err := NewParser().Parse(sb.String(), "/p/x.rpp")
	require.NoError(t, err)

	fx := project.Tracks[0].Effects[0]
	assert.True(t, fx.Params.Truncated)
	assert.Equal(t, 2000, fx.Params.OriginalSize)
	assert.Empty(t, fx.Params.Data)
}

func TestParseItemBlocks(t *testing.T) {
	project, err := NewParser().Parse(sampleProjectWithItems, "/projects/session/take.rpp")
	require.NoError(t, err)

	require.Len(t, project.Tracks, 1)
	track := project.Tracks[0]
	require.Len(t, track.Items, 2)

	item1 := track.Items[0]
	assert.Equal(t, 0.0, item1.Position)
	assert.Equal(t, 5.5, item1.Length)
	assert.Equal(t, filepath.Join("/projects/session", "test_audio.wav"), item1.FilePath)

	item2 := track.Items[1]
	assert.Equal(t, 6.0, item2.Position)
	assert.Equal(t, 3.2, item2.Length)
	assert.True(t, strings.HasSuffix(item2.FilePath, "test_audio2.wav"))
	assert.True(t, filepath.IsAbs(item2.FilePath))
}

func TestAbsolutePathUnchanged(t *testing.T) {
	content := `<TRACK
NAME "Absolute Path Track"
<ITEM
POSITION 0.0
LENGTH 2.0
<SOURCE WAVE
FILE "/absolute/path/to/audio.wav"
>
>
>
`
	project, err := NewParser().Parse(content, "/projects/p.rpp")
	require.NoError(t, err)

	require.Len(t, project.Tracks[0].Items, 1)
	assert.Equal(t, "/absolute/path/to/audio.wav", project.Tracks[0].Items[0].FilePath)
}

func TestTrackWithItemsAndFX(t *testing.T) {
	content := `<REAPER_PROJECT 0.1 "7.22/macOS-arm64" 1735524019
  <TRACK {12345678-1234-1234-1234-123456789ABC}
    NAME "Complex Track"
    <FXCHAIN
      <VST "VST3: TestPlugin" TestPlugin.vst3
      >
      BYPASS 0 0
    >
    <ITEM
      POSITION 1.0
      LENGTH 2.0
      <SOURCE WAVE
        FILE "test.wav"
      >
    >
  >
>
`
	project, err := NewParser().Parse(content, "/p/mix.rpp")
	require.NoError(t, err)

	track := project.Tracks[0]
	require.Len(t, track.Effects, 1)
	assert.Equal(t, "VST3: TestPlugin", track.Effects[0].Name)
	require.Len(t, track.Items, 1)
	assert.Equal(t, 1.0, track.Items[0].Position)
	assert.Equal(t, 2.0, track.Items[0].Length)
}

func TestEmptyProject(t *testing.T) {
	project, err := NewParser().Parse("<REAPER_PROJECT 0.1 \"7.22/macOS-arm64\" 1735524019\n>", "/p/empty.rpp")
	require.NoError(t, err)
	assert.Empty(t, project.Tracks)
}

func TestEmptyTrackHasEmptyItemList(t *testing.T) {
	content := `<TRACK
NAME "Empty Track"
VOLPAN 1.0 0.0 -1 -1 1
>
`
	project, err := NewParser().Parse(content, "/p/x.rpp")
	require.NoError(t, err)

	track := project.Tracks[0]
	assert.NotNil(t, track.Items)
	assert.Empty(t, track.Items)
	assert.NotNil(t, track.Effects)
	assert.Empty(t, track.Effects)
}

func TestParseIsIdempotent(t *testing.T) {
	p := NewParser()
	first, err := p.Parse(sampleProjectWithItems, "/p/a.rpp")
	require.NoError(t, err)
	second, err := p.Parse(sampleProjectWithItems, "/p/a.rpp")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.rpp")
	require.NoError(t, os.WriteFile(path, []byte(sampleProjectWithItems), 0o644))

	project, err := NewParser().ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "session", project.Name)
	require.Len(t, project.Tracks, 1)
	assert.Equal(t, filepath.Join(dir, "test_audio.wav"), project.Tracks[0].Items[0].FilePath)
}

func TestParseFileMissing(t *testing.T) {
	_, err := NewParser().ParseFile(filepath.Join(t.TempDir(), "nope.rpp"))
	assert.Error(t, err)
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad tempo bpm", "TEMPO fast 4 4\n", "TEMPO"},
		{"short tempo", "TEMPO 120 4\n", "TEMPO"},
		{"bad volume", "<TRACK\nVOLPAN loud 0 -1 -1 1\n>\n", "VOLPAN volume"},
		{"bad pan", "<TRACK\nVOLPAN 1.0 wide -1 -1 1\n>\n", "VOLPAN pan"},
		{"bad mutesolo", "<TRACK\nMUTESOLO yes 0 0\n>\n", "MUTESOLO mute"},
		{"bad bypass", "<TRACK\n<FXCHAIN\n<VST \"X\"\nBYPASS maybe 0\n>\n>\n>\n", "BYPASS"},
		{"bad position", "<TRACK\n<ITEM\nPOSITION early\n>\n>\n", "POSITION"},
		{"bad length", "<TRACK\n<ITEM\nLENGTH long\n>\n>\n", "LENGTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(tt.content, "/p/x.rpp")
			require.Error(t, err)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.field, formatErr.Field)
			assert.Greater(t, formatErr.Line, 0)
		})
	}
}

func TestOverlappingContextsFailFast(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"item inside fx chain", "<TRACK\n<FXCHAIN\n<ITEM\n>\n>\n>\n"},
		{"fx chain inside item", "<TRACK\n<ITEM\n<FXCHAIN\n>\n>\n>\n"},
		{"track inside item", "<TRACK\n<ITEM\n<TRACK\n>\n>\n>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(tt.content, "/p/x.rpp")
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestUnknownDirectivesIgnored(t *testing.T) {
	content := `<TRACK
NAME "With Extras"
PEAKCOL 16576
BEAT -1
AUTOMODE 0
FREEMODE 0
>
`
	project, err := NewParser().Parse(content, "/p/x.rpp")
	require.NoError(t, err)
	assert.Equal(t, "With Extras", project.Tracks[0].Name)
}

func TestBareNameAndFileTokens(t *testing.T) {
	content := `<TRACK
NAME Drum_Bus
<ITEM
<SOURCE WAVE
FILE kick.wav
>
>
>
`
	project, err := NewParser().Parse(content, "/songs/groove.rpp")
	require.NoError(t, err)

	track := project.Tracks[0]
	assert.Equal(t, "Drum_Bus", track.Name)
	assert.Equal(t, filepath.Join("/songs", "kick.wav"), track.Items[0].FilePath)
}

func TestNonWaveSourceIgnoresFile(t *testing.T) {
	content := `<TRACK
<ITEM
POSITION 0.0
LENGTH 4.0
<SOURCE MIDI
FILE "notes.mid"
>
>
>
`
	project, err := NewParser().Parse(content, "/p/x.rpp")
	require.NoError(t, err)

	require.Len(t, project.Tracks[0].Items, 1)
	assert.Empty(t, project.Tracks[0].Items[0].FilePath)
	assert.Equal(t, 4.0, project.Tracks[0].Items[0].Length)
}

func TestImplicitFXEntryClose(t *testing.T) {
	// A new <VST while another entry is open closes the previous entry.
	content := `<TRACK
<FXCHAIN
<VST "VST3: First" first.vst3
<VST "VST3: Second" second.vst3
>
>
>
`
	project, err := NewParser().Parse(content, "/p/x.rpp")
	require.NoError(t, err)

	effects := project.Tracks[0].Effects
	require.Len(t, effects, 2)
	assert.Equal(t, "VST3: First", effects[0].Name)
	assert.Equal(t, "VST3: Second", effects[1].Name)
}

func TestEffectNameFallback(t *testing.T) {
	content := "<TRACK\n<FXCHAIN\n<VST unquoted.vst3\n>\n>\n>\n"
	project, err := NewParser().Parse(content, "/p/x.rpp")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", project.Tracks[0].Effects[0].Name)
}
