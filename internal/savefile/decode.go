// SPDX-License-Identifier: MPL-2.0

package savefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fmm-go/fmm/internal/binio"
	"github.com/fmm-go/fmm/internal/proptree"
	"github.com/fmm-go/fmm/pkg/modident"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zlib"
)

// MaxLevelSize caps how much of the level-state blob is read.
// Anything past it is ignored.
const MaxLevelSize = 1 << 20

const (
	compressedLevel = "level.dat0"
	rawLevel        = "level.dat"

	// Reserved bytes after the scenario fields and after each mod name.
	reservedAfterScenario = 14
	reservedPerMod        = 7
	// Checksum preceding the startup-settings tree.
	settingsChecksumSize = 4
)

type (
	// Metadata is what a save declares about itself.
	Metadata struct {
		// Path is the archive the metadata was read from.
		Path string
		// LevelEntry is the archive member that held the level state.
		LevelEntry string
		Compressed bool

		GameVersion modident.Version
		Scenario    string
		ScenarioMod string
		// Mods are the mods the save requires, in save order. Versions are
		// not recoverable from the header and are always absent.
		Mods []modident.Ident
		// StartupSettings is the startup-settings dictionary stored with the
		// save, or nil when the blob ends after the mod list or settings
		// decoding was disabled.
		StartupSettings *proptree.Tree
	}

	// Option configures decoding.
	Option func(*options)

	options struct {
		logger       *log.Logger
		skipSettings bool
	}
)

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutStartupSettings stops decoding after the mod list.
func WithoutStartupSettings() Option {
	return func(o *options) { o.skipSettings = true }
}

func newOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decode opens the save archive at path and decodes its metadata.
// Decoding is all-or-nothing: on error no metadata is returned.
func Decode(path string, opts ...Option) (*Metadata, error) {
	o := newOptions(opts)

	level, entry, compressed, err := readLevel(path)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("read level state", "save", path, "entry", entry, "compressed", compressed, "bytes", len(level))

	meta, err := parse(level, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	meta.Path = path
	meta.LevelEntry = entry
	meta.Compressed = compressed
	return meta, nil
}

// Parse decodes an already extracted level-state blob.
func Parse(level []byte, opts ...Option) (*Metadata, error) {
	return parse(level, newOptions(opts))
}

// readLevel extracts at most MaxLevelSize bytes of the level-state member.
func readLevel(path string) (level []byte, entry string, compressed bool, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to open save %s: %w", path, err)
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close save %s: %w", path, closeErr)
		}
	}()

	file := findMember(zr.File, compressedLevel)
	compressed = file != nil
	if file == nil {
		file = findMember(zr.File, rawLevel)
	}
	if file == nil {
		return nil, "", false, fmt.Errorf("%s: %w", path, ErrNoLevelDat)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to open %s in %s: %w", file.Name, path, err)
	}
	defer func() { _ = rc.Close() }() // Read-only member; close error is non-critical

	var src io.Reader = rc
	if compressed {
		zlr, err := zlib.NewReader(rc)
		if err != nil {
			return nil, "", false, fmt.Errorf("%s in %s: %w", file.Name, path, &MalformedError{Field: "zlib header", Err: err})
		}
		defer func() { _ = zlr.Close() }()
		src = zlr
	}

	level, err = readCapped(src, MaxLevelSize)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to read %s in %s: %w", file.Name, path, err)
	}
	return level, file.Name, compressed, nil
}

func findMember(files []*zip.File, fragment string) *zip.File {
	for _, f := range files {
		if strings.Contains(f.Name, fragment) {
			return f
		}
	}
	return nil
}

// readCapped reads from r until EOF or until limit bytes are buffered.
// The buffer is allocated once at limit size and never grows.
func readCapped(r io.Reader, limit int) ([]byte, error) {
	buf := make([]byte, limit)
	n := 0
	for n < limit {
		m, err := r.Read(buf[n:])
		n += m
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return buf[:n], nil
}

func parse(level []byte, o options) (*Metadata, error) {
	r := bytes.NewReader(level)
	meta := &Metadata{}

	var version [4]uint16
	for i := range version {
		v, err := binio.Read[uint16](r)
		if err != nil {
			return nil, &MalformedError{Field: "game version", Err: err}
		}
		version[i] = v
	}
	meta.GameVersion = modident.NewVersion(uint64(version[0]), uint64(version[1]), uint64(version[2]))

	if err := binio.Skip(r, 1); err != nil {
		return nil, &MalformedError{Field: "reserved header", Err: err}
	}
	campaign, err := readShortString(r)
	if err != nil {
		return nil, &MalformedError{Field: "campaign", Err: err}
	}
	if campaign != "" {
		return nil, &CampaignError{Campaign: campaign}
	}

	if meta.Scenario, err = readShortString(r); err != nil {
		return nil, &MalformedError{Field: "scenario name", Err: err}
	}
	if meta.ScenarioMod, err = readShortString(r); err != nil {
		return nil, &MalformedError{Field: "scenario mod", Err: err}
	}
	if err := binio.Skip(r, reservedAfterScenario); err != nil {
		return nil, &MalformedError{Field: "reserved scenario data", Err: err}
	}

	count, err := binio.Read[uint8](r)
	if err != nil {
		return nil, &MalformedError{Field: "mod count", Err: err}
	}
	meta.Mods = make([]modident.Ident, 0, count)
	for i := range int(count) {
		name, err := readShortString(r)
		if err != nil {
			return nil, &MalformedError{Field: fmt.Sprintf("mod %d name", i), Err: err}
		}
		if err := binio.Skip(r, reservedPerMod); err != nil {
			return nil, &MalformedError{Field: fmt.Sprintf("mod %d version", i), Err: err}
		}
		meta.Mods = append(meta.Mods, modident.New(name))
	}

	if o.skipSettings || r.Len() == 0 {
		return meta, nil
	}

	if err := binio.Skip(r, settingsChecksumSize); err != nil {
		return nil, &MalformedError{Field: "startup settings checksum", Err: err}
	}
	settings, err := proptree.Decode(r)
	if err != nil {
		return nil, &MalformedError{Field: "startup settings", Err: err}
	}
	if _, ok := settings.AsDictionary(); !ok {
		return nil, &MalformedError{Field: "startup settings", Err: fmt.Errorf("root is a %s, want dictionary", settings.Kind())}
	}
	o.logger.Debug("decoded startup settings", "remaining", r.Len())
	meta.StartupSettings = &settings
	return meta, nil
}

// readShortString reads a string prefixed by a one-byte length. Invalid
// UTF-8 is replaced rather than rejected.
func readShortString(r io.Reader) (string, error) {
	n, err := binio.Read[uint8](r)
	if err != nil {
		return "", err
	}
	b, err := binio.ReadBytes(r, int(n))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(b), "\uFFFD"), nil
}
