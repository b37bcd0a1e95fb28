package rpp

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FormatError reports a directive field that failed to parse as its expected
// type. It is fatal: a half-populated project is worse than no project, so the
// parser aborts instead of skipping the line.
type FormatError struct {
	Line  int    // 1-based line number in the source
	Field string // directive or field that failed
	Value string // offending text
	Err   error  // underlying parse error, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: invalid %s field %q: %v", e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("line %d: invalid %s field %q", e.Line, e.Field, e.Value)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// contextKind tags an entry of the open-context stack. The bare ">" closing
// token is syntactically identical for every block kind, so the parser keeps
// an explicit record of what is currently open and unwinds exactly one
// context per occurrence.
type contextKind int

const (
	ctxTrack contextKind = iota
	ctxFXChain
	ctxFXEntry
	ctxItem
	ctxSource
)

func (k contextKind) String() string {
	switch k {
	case ctxTrack:
		return "track"
	case ctxFXChain:
		return "fx chain"
	case ctxFXEntry:
		return "fx entry"
	case ctxItem:
		return "item"
	case ctxSource:
		return "source"
	default:
		return "unknown"
	}
}

// Parser parses the mix-diagnostics subset of the REAPER project grammar.
// Unknown directives are ignored for forward compatibility; malformed numeric
// fields are fatal FormatErrors.
type Parser struct{}

// NewParser creates a new project parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a project file. Relative media paths are
// resolved against the file's directory.
func (p *Parser) ParseFile(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return p.Parse(string(raw), path)
}

// Parse parses raw project text. location is the path the text came from and
// is used for the project name and for resolving relative media paths.
func (p *Parser) Parse(content, location string) (*Project, error) {
	base := filepath.Base(location)
	project := &Project{
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
		Location: location,
		Tracks:   []Track{},
	}

	st := &parseState{
		project: project,
		baseDir: filepath.Dir(location),
	}

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := st.consume(i+1, line); err != nil {
			return nil, err
		}
	}

	return project, nil
}

// parseState carries everything that is open mid-parse.
type parseState struct {
	project *Project
	baseDir string

	stack      []contextKind
	tracks     []*Track // builders for open track contexts, parallel to ctxTrack entries
	chain      []Effect
	fx         *fxState
	item       *MediaItem
	sourceWave []bool // wave-ness per open source context, innermost last
}

// fxState accumulates one effect entry before finalization.
type fxState struct {
	name     string
	bypassed bool
	encoded  []string
}

func (st *parseState) top() (contextKind, bool) {
	if len(st.stack) == 0 {
		return 0, false
	}
	return st.stack[len(st.stack)-1], true
}

func (st *parseState) currentTrack() *Track {
	if len(st.tracks) == 0 {
		return nil
	}
	return st.tracks[len(st.tracks)-1]
}

func (st *parseState) consume(lineNo int, line string) error {
	switch {
	case line == ">":
		st.closeTop()
		return nil

	case strings.HasPrefix(line, "TEMPO"):
		return st.parseTempo(lineNo, line)

	case strings.HasPrefix(line, "<TRACK"):
		return st.openTrack(lineNo)

	case strings.HasPrefix(line, "<FXCHAIN"):
		return st.openFXChain(lineNo)

	case strings.HasPrefix(line, "<VST"):
		st.openFXEntry(line)
		return nil

	case strings.HasPrefix(line, "<ITEM"):
		return st.openItem(lineNo)

	case strings.HasPrefix(line, "<SOURCE"):
		st.openSource(line)
		return nil

	case strings.HasPrefix(line, "NAME"):
		if t := st.currentTrack(); t != nil {
			t.Name = parseNameValue(line)
		}
		return nil

	case strings.HasPrefix(line, "VOLPAN"):
		return st.parseVolPan(lineNo, line)

	case strings.HasPrefix(line, "MUTESOLO"):
		return st.parseMuteSolo(lineNo, line)

	case strings.HasPrefix(line, "BYPASS"):
		return st.parseBypass(lineNo, line)

	case strings.HasPrefix(line, "POSITION"):
		return st.parseItemField(lineNo, line, "POSITION")

	case strings.HasPrefix(line, "LENGTH"):
		return st.parseItemField(lineNo, line, "LENGTH")

	case strings.HasPrefix(line, "FILE"):
		st.parseFile(line)
		return nil

	default:
		// Opaque encoded parameter data inside an open effect entry;
		// everything else is an unrecognized directive and is skipped.
		if top, ok := st.top(); ok && top == ctxFXEntry && isAlphanumeric(line) {
			st.fx.encoded = append(st.fx.encoded, line)
		}
		return nil
	}
}

// closeTop resolves a bare ">" against the innermost open context. With
// nothing open the token belongs to a block the grammar subset does not
// track (e.g. the REAPER_PROJECT envelope) and is ignored.
func (st *parseState) closeTop() {
	top, ok := st.top()
	if !ok {
		return
	}
	st.stack = st.stack[:len(st.stack)-1]

	switch top {
	case ctxFXEntry:
		st.chain = append(st.chain, st.fx.finalize())
		st.fx = nil

	case ctxFXChain:
		if t := st.currentTrack(); t != nil {
			t.Effects = st.chain
		}
		st.chain = nil

	case ctxSource:
		st.sourceWave = st.sourceWave[:len(st.sourceWave)-1]

	case ctxItem:
		if t := st.currentTrack(); t != nil {
			t.Items = append(t.Items, *st.item)
		}
		st.item = nil

	case ctxTrack:
		done := st.tracks[len(st.tracks)-1]
		st.tracks = st.tracks[:len(st.tracks)-1]
		st.project.Tracks = append(st.project.Tracks, *done)
	}
}

func (st *parseState) openTrack(lineNo int) error {
	if top, ok := st.top(); ok && top != ctxTrack {
		return &FormatError{Line: lineNo, Field: "TRACK", Value: "<TRACK", Err: fmt.Errorf("track opened inside %s block", top)}
	}
	st.stack = append(st.stack, ctxTrack)
	st.tracks = append(st.tracks, &Track{
		Volume:  1.0,
		Pan:     0.0,
		Effects: []Effect{},
		Items:   []MediaItem{},
	})
	return nil
}

func (st *parseState) openFXChain(lineNo int) error {
	top, ok := st.top()
	if !ok {
		// No track open; skip like any other unrecognized context.
		return nil
	}
	if top != ctxTrack {
		return &FormatError{Line: lineNo, Field: "FXCHAIN", Value: "<FXCHAIN", Err: fmt.Errorf("fx chain opened inside %s block", top)}
	}
	st.stack = append(st.stack, ctxFXChain)
	st.chain = []Effect{}
	return nil
}

// openFXEntry starts a new effect entry. A "<VST" while another entry is
// still open closes the previous entry first — some writers omit the inner
// closing token.
func (st *parseState) openFXEntry(line string) {
	top, ok := st.top()
	if !ok {
		return
	}
	switch top {
	case ctxFXEntry:
		st.stack = st.stack[:len(st.stack)-1]
		st.chain = append(st.chain, st.fx.finalize())
	case ctxFXChain:
		// expected
	default:
		return
	}
	st.stack = append(st.stack, ctxFXEntry)
	st.fx = &fxState{name: parseQuoted(line, "Unknown")}
}

func (st *parseState) openItem(lineNo int) error {
	top, ok := st.top()
	if !ok {
		return nil
	}
	if top != ctxTrack {
		return &FormatError{Line: lineNo, Field: "ITEM", Value: "<ITEM", Err: fmt.Errorf("item opened inside %s block", top)}
	}
	st.stack = append(st.stack, ctxItem)
	st.item = &MediaItem{}
	return nil
}

// openSource pushes a source sub-block of any kind so its closing token
// unwinds correctly; FILE is only captured inside WAVE sources.
func (st *parseState) openSource(line string) {
	top, ok := st.top()
	if !ok || (top != ctxItem && top != ctxSource) {
		return
	}
	st.stack = append(st.stack, ctxSource)
	st.sourceWave = append(st.sourceWave, strings.HasPrefix(line, "<SOURCE WAVE"))
}

func (st *parseState) parseTempo(lineNo int, line string) error {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return &FormatError{Line: lineNo, Field: "TEMPO", Value: line, Err: fmt.Errorf("expected bpm, beats and denominator")}
	}
	bpm, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return &FormatError{Line: lineNo, Field: "TEMPO", Value: parts[1], Err: err}
	}
	if _, err := strconv.Atoi(parts[2]); err != nil {
		return &FormatError{Line: lineNo, Field: "TEMPO", Value: parts[2], Err: err}
	}
	if _, err := strconv.Atoi(parts[3]); err != nil {
		return &FormatError{Line: lineNo, Field: "TEMPO", Value: parts[3], Err: err}
	}
	st.project.Tempo = bpm
	st.project.TimeSignature = parts[2] + "/" + parts[3]
	return nil
}

func (st *parseState) parseVolPan(lineNo int, line string) error {
	t := st.currentTrack()
	if t == nil {
		return nil
	}
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return nil // keep defaults
	}
	volume, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return &FormatError{Line: lineNo, Field: "VOLPAN volume", Value: parts[1], Err: err}
	}
	pan, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return &FormatError{Line: lineNo, Field: "VOLPAN pan", Value: parts[2], Err: err}
	}
	t.Volume = volume
	t.Pan = pan
	return nil
}

func (st *parseState) parseMuteSolo(lineNo int, line string) error {
	t := st.currentTrack()
	if t == nil {
		return nil
	}
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return nil
	}
	mute, err := strconv.Atoi(parts[1])
	if err != nil {
		return &FormatError{Line: lineNo, Field: "MUTESOLO mute", Value: parts[1], Err: err}
	}
	solo, err := strconv.Atoi(parts[2])
	if err != nil {
		return &FormatError{Line: lineNo, Field: "MUTESOLO solo", Value: parts[2], Err: err}
	}
	t.Mute = mute != 0
	t.Solo = solo != 0
	return nil
}

// parseBypass applies only to an open effect entry; BYPASS lines in the chain
// preamble belong to chain-level state outside the diagnostic subset.
func (st *parseState) parseBypass(lineNo int, line string) error {
	if top, ok := st.top(); !ok || top != ctxFXEntry {
		return nil
	}
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil
	}
	v, err := strconv.Atoi(parts[1])
	if err != nil {
		return &FormatError{Line: lineNo, Field: "BYPASS", Value: parts[1], Err: err}
	}
	st.fx.bypassed = v != 0
	return nil
}

func (st *parseState) parseItemField(lineNo int, line, field string) error {
	if st.item == nil {
		return nil
	}
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil
	}
	v, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return &FormatError{Line: lineNo, Field: field, Value: parts[1], Err: err}
	}
	if field == "POSITION" {
		st.item.Position = v
	} else {
		st.item.Length = v
	}
	return nil
}

func (st *parseState) parseFile(line string) {
	if st.item == nil || len(st.sourceWave) == 0 || !st.sourceWave[len(st.sourceWave)-1] {
		return
	}
	var path string
	if strings.Contains(line, `"`) {
		path = strings.SplitN(line, `"`, 3)[1]
	} else {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return
		}
		path = parts[1]
	}
	st.item.FilePath = st.resolvePath(path)
}

// resolvePath makes a media path absolute relative to the project directory.
func (st *parseState) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	joined := filepath.Join(st.baseDir, path)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return joined
	}
	return abs
}

func (fx *fxState) finalize() Effect {
	return Effect{
		Name:     fx.name,
		Bypassed: fx.bypassed,
		Params:   newEncodedBlob(strings.Join(fx.encoded, "")),
	}
}

// parseNameValue extracts a NAME value, preferring a double-quoted segment
// over the bare remainder of the line.
func parseNameValue(line string) string {
	if strings.Contains(line, `"`) {
		return strings.SplitN(line, `"`, 3)[1]
	}
	parts := strings.SplitN(line, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// parseQuoted returns the first double-quoted segment of a line, or fallback
// when the line has no quoted segment.
func parseQuoted(line, fallback string) string {
	parts := strings.Split(line, `"`)
	if len(parts) > 1 {
		return parts[1]
	}
	return fallback
}

// isAlphanumeric reports whether the line consists solely of ASCII letters
// and digits. Encoded parameter lines containing base64 symbol characters are
// deliberately excluded, matching how project writers chunk the payload.
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
