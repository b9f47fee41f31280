package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	flags "github.com/jessevdk/go-flags"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/ekle/fontsheet/internal/core"
	"github.com/ekle/fontsheet/internal/sheet"
)

var conf struct {
	Output     string         `short:"o" long:"output"    description:"output directory"                                   ini-name:"output"`
	Name       string         `short:"n" long:"name"      description:"name of output font sheet"                          ini-name:"name"`
	Font       string         `short:"f" long:"font"      description:"PostScript name or path of the font to render"      ini-name:"font"`
	Size       float64        `short:"s" long:"size"      description:"point size of font to render"                       ini-name:"size"`
	Weight     string         `short:"w" long:"weight"    description:"weight name of font [Regular,Bold,...]"             ini-name:"weight"`
	Threshold  float64        `short:"t" long:"threshold" description:"alpha between transparent and black pixels [0.0-1.0]" ini-name:"threshold" default:"0.5"`
	Embedded   bool           `short:"e" long:"embedded"  description:"embed font image in .fnt file"                      ini-name:"embedded"`
	Header     bool           `short:"c" long:"header"    description:"also write the sheet as a packed C table"          ini-name:"header"`
	Clean      bool           `long:"clean"               description:"wrap rows after 16 cells and title-case weights"   ini-name:"clean"`
	DPI        float64        `long:"dpi"                 description:"resolution used to convert points to pixels"       ini-name:"dpi" default:"72"`
	Debug      bool           `short:"d" long:"debug"     description:"display some debug information"                     no-ini:"true"`
	Config     flags.Filename `long:"config"              description:"read defaults from an ini file"                     no-ini:"true"`
	DumpConfig bool           `long:"dump-config"         description:"print the effective options as ini and exit"        no-ini:"true"`
	Args       struct {
		GlyphFile flags.Filename `positional-arg-name:"glyph-file" description:"glyph order file"`
	} `positional-args:"yes"`
}

var parser = flags.NewParser(&conf, flags.Default)

func main() {
	parser.ShortDescription = "Creates .fnt glyph sheets from installed fonts"
	args, err := parser.Parse()
	if err == nil && conf.Config != "" {
		ini := flags.NewIniParser(parser)
		ini.ParseAsDefaults = true
		if err = ini.ParseFile(string(conf.Config)); err == nil {
			args, err = parser.Parse() // command line wins over ini file
		}
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if _, ok := err.(*flags.Error); !ok {
			fmt.Println(err)
		}
		os.Exit(1)
	}
	if len(args) > 0 {
		pterm.Error.Println("do not provide additional parameters")
		os.Exit(1)
	}
	if conf.DumpConfig {
		flags.NewIniParser(parser).Write(os.Stdout, flags.IniIncludeDefaults)
		return
	}
	if err := validate(); err != nil {
		pterm.Error.Println(err)
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}
	setupTracing()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx))
}

func validate() error {
	switch {
	case conf.Args.GlyphFile == "":
		return fmt.Errorf("the required argument `glyph-file` was not provided")
	case conf.Output == "":
		return fmt.Errorf("the required flag `-o, --output' was not specified")
	case conf.Name == "":
		return fmt.Errorf("the required flag `-n, --name' was not specified")
	case conf.Font == "":
		return fmt.Errorf("the required flag `-f, --font' was not specified")
	case conf.Size <= 0:
		return fmt.Errorf("the point size must be positive, is %g", conf.Size)
	}
	return nil
}

func setupTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	traceConf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.fontsheet": "Info",
	}
	if err := trace2go.ConfigureRoot(traceConf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if conf.Debug {
		tracing.Select("fontsheet").SetTraceLevel(tracing.LevelDebug)
		pterm.EnableDebugMessages()
		pterm.Debug.Printfln("draw options: size %gpt at %g dpi, threshold %.2f", conf.Size, conf.DPI, conf.Threshold)
	} else {
		tracing.Select("fontsheet").SetTraceLevel(tracing.LevelError)
	}
}

func run(ctx context.Context) int {
	mode := sheet.ModeStrict
	if conf.Clean {
		mode = sheet.ModeClean
	}
	threshold := conf.Threshold
	p := sheet.NewProcess(sheet.Config{
		GlyphFile: string(conf.Args.GlyphFile),
		OutputDir: conf.Output,
		Name:      conf.Name,
		Font:      conf.Font,
		Size:      conf.Size,
		Weight:    conf.Weight,
		Threshold: &threshold,
		DPI:       conf.DPI,
		Embedded:  conf.Embedded,
		Header:    conf.Header,
		Mode:      mode,
	})
	res, err := p.Run(ctx)
	if err != nil {
		core.UserError(err)
		if core.Code(err) == core.EFONT {
			pterm.Info.Println("Find the PostScript name of your font with a font manager, or pass the path of the font file")
		}
		return 1
	}
	if len(res.Failures) > 0 {
		return 1
	}
	return 0
}
