package sheet

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ekle/fontsheet/internal/core"
	"github.com/ekle/fontsheet/internal/fnt"
	"github.com/ekle/fontsheet/internal/header"
	"github.com/ekle/fontsheet/internal/render"
)

// Face measures and draws glyphs.
type Face interface {
	Measurer
	Drawer
}

// Config holds the parameters of one run.
type Config struct {
	GlyphFile string   // glyph list, whitespace separated
	OutputDir string   // parent of the sheet's folder
	Name      string   // logical sheet name
	Font      string   // font name or path
	Size      float64  // point size
	Weight    string   // optional weight, e.g. "Bold"
	Threshold *float64 // alpha threshold, DefaultThreshold if nil
	DPI       float64  // resolution, 72 if zero
	Embedded  bool     // embed the sheet PNG in the .fnt file
	Header    bool     // also write a packed C table
	Mode      Mode
}

// Result summarizes a run.
type Result struct {
	Metrics  Metrics
	Layout   *Layout
	Sheet    image.Image // binarized sheet
	Files    []string    // artifacts written
	Failures []error     // artifacts skipped
}

// Process builds one glyph sheet.
type Process struct {
	conf   Config
	face   Face
	source string
}

// Option configures a Process.
type Option func(*Process)

// WithFace makes a Process use face instead of resolving Config.Font.
func WithFace(face Face, source string) Option {
	return func(p *Process) {
		p.face = face
		p.source = source
	}
}

// NewProcess prepares a run. Names are trimmed of surrounding whitespace.
func NewProcess(conf Config, opts ...Option) *Process {
	conf.Name = strings.TrimSpace(conf.Name)
	conf.Font = strings.TrimSpace(conf.Font)
	conf.Weight = strings.TrimSpace(conf.Weight)
	if conf.DPI == 0 {
		conf.DPI = 72
	}
	p := &Process{conf: conf}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Threshold is the effective alpha threshold.
func (p *Process) Threshold() float64 {
	if p.conf.Threshold == nil {
		return DefaultThreshold
	}
	return *p.conf.Threshold
}

// Run loads the glyph list, builds the sheet and writes all artifacts.
// It fails if the font cannot be resolved or the glyph list cannot be read.
// Artifacts that cannot be written are listed in Result.Failures.
func (p *Process) Run(ctx context.Context) (*Result, error) {
	pterm.Info.Printfln("Loading glyph file %s for %s", p.conf.GlyphFile, p.conf.Name)
	if err := p.resolveFace(); err != nil {
		return nil, err
	}
	tokens, err := LoadTokens(p.conf.GlyphFile)
	if err != nil {
		return nil, err
	}
	pterm.Info.Printfln("%d glyphs to build for %s", len(tokens), p.conf.Name)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := p.Build(tokens)
	if err := ctx.Err(); err != nil {
		return res, err
	}
	p.save(res)
	return res, nil
}

func (p *Process) resolveFace() error {
	if p.face != nil {
		return nil
	}
	f, err := render.Resolve(p.conf.Font, p.conf.Weight)
	if err != nil {
		return err
	}
	face, err := render.NewFace(f.SFNT, f.Name, p.conf.Size, p.conf.DPI)
	if err != nil {
		return core.WrapError(err, core.EFONT, "font %s cannot be scaled to %gpt", f, p.conf.Size)
	}
	face.LogMetrics()
	p.face, p.source = face, f.String()
	return nil
}

// Build measures, lays out, renders and binarizes tokens. It does not touch
// the file system.
func (p *Process) Build(tokens []Token) *Result {
	res := &Result{}
	tracer().Debugf("glyphs in order: %s", Glyphs(tokens))
	res.Metrics = ComputeMetrics(tokens, p.face)
	res.Layout = NewLayout(len(tokens), res.Metrics.Cell, p.conf.Mode)
	dim := res.Layout.Dimensions()
	pterm.Info.Printfln("Setting cell size to %dx%dpx for sheet size of %dx%dpx",
		res.Metrics.Cell.W, res.Metrics.Cell.H, dim.X, dim.Y)
	raw := res.Layout.Render(tokens, p.face)
	res.Sheet = Binarize(raw, p.Threshold())
	tracer().Debugf("binarized %v sheet at threshold %.2f (%s mode)", dim, p.Threshold(), p.conf.Mode)
	return res
}

// save writes the sheet image, the optional C table and the .fnt file.
func (p *Process) save(res *Result) {
	namer := fnt.Namer{
		Dir:    p.conf.OutputDir,
		Name:   p.conf.Name,
		Size:   p.conf.Size,
		Weight: p.conf.Weight,
		Clean:  p.conf.Mode == ModeClean,
	}
	folder, err := namer.Folder()
	if err != nil {
		res.fail(err)
		return
	}
	cell := res.Metrics.Cell
	var pngData []byte
	var buf bytes.Buffer
	if err := png.Encode(&buf, res.Sheet); err != nil {
		res.fail(core.WrapError(err, core.ERASTER, "sheet cannot be encoded as PNG"))
	} else {
		pngData = buf.Bytes()
		imageName := namer.TableImage(cell.W, cell.H)
		if p.conf.Embedded {
			imageName = namer.SampleImage(cell.W, cell.H)
		}
		res.write(filepath.Join(folder, imageName), func(path string) error {
			return os.WriteFile(path, pngData, 0644)
		})
	}
	if p.conf.Header {
		res.write(filepath.Join(folder, namer.Header(cell.W, cell.H)), func(path string) error {
			return p.writeHeader(path, res)
		})
	}
	model := fnt.Model{
		Width:    cell.W,
		Height:   cell.H,
		Embedded: p.conf.Embedded,
		Glyphs:   res.Metrics.Glyphs,
	}
	if p.conf.Embedded {
		model.Data = pngData
	}
	fontFile := filepath.Join(folder, namer.FontFile(cell.W, cell.H))
	res.write(fontFile, func(path string) error {
		if err := fnt.WriteFile(path, model); err != nil {
			return err
		}
		pterm.Info.Printfln("%d glyphs written to %s font file at %s", len(model.Glyphs), p.conf.Name, path)
		return nil
	})
}

func (p *Process) writeHeader(path string, res *Result) (err error) {
	t := header.Table{
		Name:   p.conf.Name,
		Source: p.source,
		Width:  res.Metrics.Cell.W,
		Height: res.Metrics.Cell.H,
		Glyphs: make([]header.Glyph, res.Layout.Len()),
	}
	for k := range t.Glyphs {
		t.Glyphs[k] = header.Glyph{
			Label: res.Metrics.Glyphs[k].Label,
			Cell:  res.Layout.CellRect(k),
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return header.Write(f, t, res.Sheet)
}

// write runs save for path and records the outcome.
func (res *Result) write(path string, save func(string) error) {
	if err := save(path); err != nil {
		if core.Code(err) != core.EWRITE {
			err = core.WrapError(err, core.EWRITE, "cannot write %s", path)
		}
		res.fail(err)
		return
	}
	tracer().Debugf("wrote %s", path)
	res.Files = append(res.Files, path)
}

func (res *Result) fail(err error) {
	core.UserError(err)
	res.Failures = append(res.Failures, err)
}
