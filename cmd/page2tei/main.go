// Command page2tei converts PAGE-XML transcriptions produced by
// handwritten-text-recognition tools into TEI P5 scholarly editions.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ulikunitz/xz"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/markup"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/logging"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/pageparse"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/presets"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/tei"
)

const version = "1.0.0"

// MetadataFlags overrides individual preset fields from the command line.
type MetadataFlags struct {
	Title         string `help:"Title of the work"`
	Author        string `help:"Original author"`
	EditionEditor string `help:"Editor of the diplomatic edition"`
	Translator    string `help:"Translator (for translation editions)"`
	Resp          string `help:"Responsibility statement"`
	RespName      string `help:"Name for the responsibility statement"`
	Publisher     string `help:"Publisher"`
	PubDate       string `help:"Publication date"`

	Country     string `help:"Holding country"`
	Region      string `help:"Region"`
	Settlement  string `help:"Settlement/city"`
	District    string `help:"District"`
	GeogName    string `help:"Geographic name"`
	Institution string `help:"Holding institution"`
	Repository  string `help:"Repository"`
	Collection  string `help:"Collection"`
	IdnoOld     string `help:"Old catalog ID"`
	IdnoNew     string `help:"New museum ID"`
	IdnoSiglum  string `help:"Siglum"`

	OrigPlace     string `help:"Original place"`
	OrigNotBefore string `help:"Origin notBefore date"`
	OrigNotAfter  string `help:"Origin notAfter date"`
	OrigLabel     string `help:"Origin date label"`

	PageN    string `help:"Page number/label"`
	PageSide string `enum:"recto,verso," default:"" help:"Page side"`
}

// CLI defines the command-line interface for page2tei.
var CLI struct {
	Input      string `name:"input" short:"i" default:"-" help:"Input PAGE-XML file (.xz accepted) or \"-\" for stdin"`
	Output     string `name:"output" short:"o" default:"-" help:"Output TEI-XML file (.xz accepted) or \"-\" for stdout"`
	Edition    string `enum:"diplomatic,translation," default:"" help:"Edition type; auto-detected from the input filename when omitted"`
	PresetFile string `name:"preset-file" type:"existingfile" help:"YAML preset file overriding the built-in metadata"`

	Meta MetadataFlags `embed:""`

	LogLevel  string           `enum:"debug,info,warn,error" default:"info" help:"Log level"`
	LogFormat string           `enum:"text,json" default:"text" help:"Log format"`
	Version   kong.VersionFlag `help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("page2tei"),
		kong.Description("Convert PAGE-XML transcriptions to TEI P5 with comprehensive semantic markup."),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	logging.InitLogger(logLevel(CLI.LogLevel), logFormat(CLI.LogFormat))

	in, inputName, err := openInput(CLI.Input)
	if err != nil {
		return err
	}
	doc, parseErr := pageparse.Parse(in)
	if err := in.Close(); err != nil {
		return errors.NewIO("close", inputName, err)
	}
	if parseErr != nil {
		return parseErr
	}

	meta, err := resolveMetadata(inputName)
	if err != nil {
		return err
	}

	root, report, err := tei.Build(doc, meta)
	if err != nil {
		return err
	}

	for _, skipped := range doc.Skipped {
		logging.AnnotationError(skipped.LineID, skipped.Kind, skipped.Err)
	}
	for _, issue := range report.RangeErrors {
		logging.AnnotationError(issue.LineID, "range", issue.Err)
	}
	for _, overlap := range report.Overlaps {
		ev := overlap.Event
		logging.OverlapApplied(overlap.LineID, ev.Kind.String(),
			ev.Offset, ev.Length, ev.KeptOffset, ev.KeptLength)
	}

	output := markup.Serialize(root, markup.FormatOptions{Indent: "  "})
	if err := writeOutput(CLI.Output, output); err != nil {
		return err
	}

	logging.ConversionSummary(inputName, report.Lines,
		len(report.RangeErrors), report.UnknownKinds, len(report.Overlaps),
		report.SourceHash)
	if CLI.Output != "-" {
		fmt.Fprintf(os.Stderr, "converted %s -> %s (%d lines, %d range errors, %d unknown kinds, %d overlap truncations)\n",
			inputName, CLI.Output, report.Lines,
			len(report.RangeErrors), report.UnknownKinds, len(report.Overlaps))
	}
	return nil
}

// resolveMetadata layers the metadata sources: built-in preset, then the
// optional preset file, then individual flags.
func resolveMetadata(inputName string) (presets.Metadata, error) {
	edition := CLI.Edition
	if edition == "" {
		edition = presets.DetectEdition(inputName)
	}
	if edition == "" {
		return presets.Metadata{}, errors.NewValidation("edition",
			"cannot detect edition type from the input filename; pass --edition")
	}

	meta := presets.ForEdition(edition)
	if CLI.PresetFile != "" {
		if err := presets.LoadFile(CLI.PresetFile, &meta); err != nil {
			return presets.Metadata{}, err
		}
	}
	applyOverrides(&meta, CLI.Meta)
	return meta, nil
}

func applyOverrides(meta *presets.Metadata, flags MetadataFlags) {
	for _, o := range []struct {
		dst *string
		src string
	}{
		{&meta.Title, flags.Title},
		{&meta.Author, flags.Author},
		{&meta.EditionEditor, flags.EditionEditor},
		{&meta.Translator, flags.Translator},
		{&meta.Resp, flags.Resp},
		{&meta.RespName, flags.RespName},
		{&meta.Publisher, flags.Publisher},
		{&meta.PubDate, flags.PubDate},
		{&meta.Country, flags.Country},
		{&meta.Region, flags.Region},
		{&meta.Settlement, flags.Settlement},
		{&meta.District, flags.District},
		{&meta.GeogName, flags.GeogName},
		{&meta.Institution, flags.Institution},
		{&meta.Repository, flags.Repository},
		{&meta.Collection, flags.Collection},
		{&meta.IdnoOld, flags.IdnoOld},
		{&meta.IdnoNew, flags.IdnoNew},
		{&meta.IdnoSiglum, flags.IdnoSiglum},
		{&meta.OrigPlace, flags.OrigPlace},
		{&meta.OrigNotBefore, flags.OrigNotBefore},
		{&meta.OrigNotAfter, flags.OrigNotAfter},
		{&meta.OrigLabel, flags.OrigLabel},
		{&meta.PageN, flags.PageN},
		{&meta.PageSide, flags.PageSide},
	} {
		if o.src != "" {
			*o.dst = o.src
		}
	}
}

// openInput opens the conversion source: stdin for "-", otherwise a
// file, transparently decompressing .xz archives of HTR exports.
func openInput(path string) (io.ReadCloser, string, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.NewIO("open", path, err)
	}
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, "", errors.NewIO("decompress", path, err)
		}
		return &xzReadCloser{Reader: xr, file: f}, path, nil
	}
	return f, path, nil
}

type xzReadCloser struct {
	*xz.Reader
	file *os.File
}

func (r *xzReadCloser) Close() error { return r.file.Close() }

func writeOutput(path string, data []byte) error {
	if path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return errors.NewIO("write", "stdout", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	var w io.Writer = f
	var xw *xz.Writer
	if strings.HasSuffix(path, ".xz") {
		xw, err = xz.NewWriter(f)
		if err != nil {
			f.Close()
			return errors.NewIO("compress", path, err)
		}
		w = xw
	}
	if _, err := w.Write(data); err != nil {
		f.Close()
		return errors.NewIO("write", path, err)
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			f.Close()
			return errors.NewIO("compress", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return errors.NewIO("close", path, err)
	}
	return nil
}

func logLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	}
	return logging.LevelInfo
}

func logFormat(s string) logging.Format {
	if s == "json" {
		return logging.FormatJSON
	}
	return logging.FormatText
}
