package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/font/sfnt"

	"github.com/ekle/fontsheet/internal/core"
)

// bundled are the Go fonts, keyed by normalized name.
var bundled = map[string][]byte{
	"goregular":          goregular.TTF,
	"gobold":             gobold.TTF,
	"goitalic":           goitalic.TTF,
	"gobolditalic":       gobolditalic.TTF,
	"gomedium":           gomedium.TTF,
	"gomediumitalic":     gomediumitalic.TTF,
	"gomono":             gomono.TTF,
	"gomonobold":         gomonobold.TTF,
	"gomonoitalic":       gomonoitalic.TTF,
	"gomonobolditalic":   gomonobolditalic.TTF,
	"gosmallcaps":        gosmallcaps.TTF,
	"gosmallcapsitalic":  gosmallcapsitalic.TTF,
	"go":                 goregular.TTF,
	"goregularregular":   goregular.TTF,
	"gomonoregular":      gomono.TTF,
	"gosmallcapsregular": gosmallcaps.TTF,
}

// Font is a parsed font together with where it was found.
type Font struct {
	Name   string
	Source string // file path, or "bundled"
	SFNT   *sfnt.Font
}

// Resolve finds a font by name. name may be a path to a font file, the
// name of a bundled Go font ("GoRegular", "GoMono", ...), or the PostScript
// or file name of an installed font. weight, if not empty, narrows the
// search: "Helvetica" with weight "Bold" tries Helvetica-Bold first.
func Resolve(name, weight string) (*Font, error) {
	name = strings.TrimSpace(name)
	weight = strings.TrimSpace(weight)
	if name == "" {
		return nil, core.Error(core.EFONT, "no font name given")
	}
	if fi, err := os.Stat(name); err == nil && fi.Mode().IsRegular() {
		return load(name, name, weight)
	}
	candidates := candidateNames(name, weight)
	for _, c := range candidates {
		if ttf, ok := bundled[normalize(c)]; ok {
			tracer().Debugf("%s is a bundled Go font", c)
			f, err := sfnt.Parse(ttf)
			if err != nil {
				return nil, core.WrapError(err, core.EFONT, "bundled font %s is corrupt", c)
			}
			return &Font{Name: c, Source: "bundled", SFNT: f}, nil
		}
	}
	for _, c := range candidates {
		fpath, err := findfont.Find(c)
		if err != nil || fpath == "" {
			continue
		}
		tracer().Debugf("%s is a system font at %s", c, fpath)
		return load(fpath, c, weight)
	}
	return nil, core.Error(core.EFONT,
		"a font by the name '%s' can not be found installed on this computer", name)
}

// candidateNames lists the names to try, most specific first.
func candidateNames(name, weight string) []string {
	if weight == "" {
		return []string{name}
	}
	r, n := utf8.DecodeRuneInString(weight)
	w := string(unicode.ToUpper(r)) + weight[n:]
	return []string{
		name + "-" + w,
		name + w,
		name + " " + w,
		name,
	}
}

func load(path, name, weight string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EFONT, "font file %s cannot be read", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		return loadCollection(data, path, name, weight)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, core.WrapError(err, core.EFONT, "font file %s cannot be parsed", path)
	}
	return &Font{Name: name, Source: path, SFNT: f}, nil
}

// loadCollection picks the font of a collection whose PostScript or full
// name matches name and weight best. Without a match the first font is used.
func loadCollection(data []byte, path, name, weight string) (*Font, error) {
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, core.WrapError(err, core.EFONT, "font collection %s cannot be parsed", path)
	}
	var first *sfnt.Font
	wanted := map[string]bool{}
	for _, cand := range candidateNames(name, weight) {
		wanted[normalize(cand)] = true
	}
	for i := 0; i < c.NumFonts(); i++ {
		f, err := c.Font(i)
		if err != nil {
			continue
		}
		if first == nil {
			first = f
		}
		for _, id := range []sfnt.NameID{sfnt.NameIDPostScript, sfnt.NameIDFull} {
			n, err := f.Name(nil, id)
			if err == nil && wanted[normalize(n)] {
				tracer().Debugf("collection %s: using font #%d %s", path, i, n)
				return &Font{Name: n, Source: path, SFNT: f}, nil
			}
		}
	}
	if first == nil {
		return nil, core.Error(core.EFONT, "font collection %s holds no usable font", path)
	}
	tracer().Infof("collection %s has no font %s, using its first font", path, name)
	return &Font{Name: name, Source: path, SFNT: first}, nil
}

// normalize lower-cases a font name and drops separators.
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if ext := filepath.Ext(name); ext == ".ttf" || ext == ".otf" || ext == ".ttc" {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, name)
}

func (f *Font) String() string {
	return fmt.Sprintf("%s (%s)", f.Name, f.Source)
}
