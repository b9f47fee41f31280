package fnt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ekle/fontsheet/internal/core"
)

// Namer derives the output file names of a sheet.
type Namer struct {
	Dir    string  // output directory; files go to Dir/Name
	Name   string  // logical sheet name
	Size   float64 // point size
	Weight string  // optional weight, e.g. "bold"
	Clean  bool    // always title-case the weight
}

// Folder returns the sheet's output folder, creating it if necessary.
func (n Namer) Folder() (string, error) {
	dir := filepath.Join(n.Dir, n.Name)
	fi, err := os.Stat(dir)
	switch {
	case err == nil && fi.IsDir():
		return dir, nil
	case err == nil:
		return dir, core.Error(core.EWRITE, "output folder %s is not a directory", dir)
	case !os.IsNotExist(err):
		return dir, core.WrapError(err, core.EWRITE, "output folder %s cannot be accessed", dir)
	}
	tracer().Infof("creating folder %s", dir)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return dir, core.WrapError(err, core.EWRITE, "output folder cannot be created: %s", dir)
	}
	return dir, nil
}

// FontFile is the .fnt file name for a cell size.
func (n Namer) FontFile(w, h int) string {
	return fmt.Sprintf("%s-%d-%d.fnt", n.stem(), w, h)
}

// TableImage is the sheet image written next to a .fnt without embedded data.
func (n Namer) TableImage(w, h int) string {
	return fmt.Sprintf("%s-table-%d-%d.png", n.stem(), w, h)
}

// SampleImage is the sheet image written alongside an embedded .fnt.
func (n Namer) SampleImage(w, h int) string {
	return fmt.Sprintf("sample-%s-%d-%d.png", n.stem(), w, h)
}

// Header is the C source file holding the packed sheet.
func (n Namer) Header(w, h int) string {
	return fmt.Sprintf("%s-%d-%d.h", n.stem(), w, h)
}

// stem is the sheet name, followed by size and weight if a weight is set.
func (n Namer) stem() string {
	var b strings.Builder
	b.WriteString(n.Name)
	if n.Weight != "" {
		fmt.Fprintf(&b, "-%d-%s", int(n.Size), n.weight())
	}
	return b.String()
}

// weight keeps a weight verbatim if its first letter is already in title
// case, otherwise title-cases all of it. In clean mode it always title-cases.
func (n Namer) weight() string {
	title := cases.Title(language.Und).String(n.Weight)
	if n.Clean {
		return title
	}
	first, _ := utf8.DecodeRuneInString(n.Weight)
	tfirst, _ := utf8.DecodeRuneInString(title)
	if first == tfirst {
		return n.Weight
	}
	return title
}
