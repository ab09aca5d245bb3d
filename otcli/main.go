package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/outline"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/subset"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer traces with key 'outline.cli'
func tracer() tracing.Trace {
	return tracing.Select("outline.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.outline.cli":    "Info",
		"trace.outline":        "Error",
		"trace.outline.glyf":   "Error",
		"trace.outline.subset": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (default: Go Regular)")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)                // will set the correct level later
	pterm.Info.Println("Welcome to the TrueType outline CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("glyf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, gid: -1}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font   *outline.Font
	repl   *readline.Instance
	table  ot.Table
	gid    int // current glyph, or -1
	flags  subset.Flags
	subset []byte // result of last subset command
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s", intp.font.Fontname))
	if intp.table != nil {
		sb.WriteString(fmt.Sprintf(" table=%s", intp.table.Self().NameTag()))
	}
	if intp.gid >= 0 {
		sb.WriteString(fmt.Sprintf(" glyph=%d", intp.gid))
	}
	if intp.flags != 0 {
		sb.WriteString(fmt.Sprintf(" flags=%s", intp.flags))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	INFO
	TABLE
	GLYPH
	CHAR
	POINTS
	PATH
	COMPONENTS
	LOCA
	FLAGS
	SUBSET
	SAVE
)

var opMap = map[string]int{
	"quit":       QUIT,
	"help":       HELP,
	"info":       INFO,
	"table":      TABLE,
	"glyph":      GLYPH,
	"char":       CHAR,
	"points":     POINTS,
	"path":       PATH,
	"components": COMPONENTS,
	"loca":       LOCA,
	"flags":      FLAGS,
	"subset":     SUBSET,
	"save":       SAVE,
}

var opNames = []string{
	"quit",
	"help",
	"info",
	"table",
	"glyph",
	"char",
	"points",
	"path",
	"components",
	"loca",
	"flags",
	"subset",
	"save",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.SplitN(step, ":", 3) // e.g.  "glyph:36" or "char:A" or "subset:Hello" or "help:loca"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:       quitOp,
	HELP:       helpOp,
	INFO:       infoOp,
	TABLE:      tableOp,
	GLYPH:      glyphOp,
	CHAR:       charOp,
	POINTS:     pointsOp,
	PATH:       pathOp,
	COMPONENTS: componentsOp,
	LOCA:       locaOp,
	FLAGS:      flagsOp,
	SUBSET:     subsetOp,
	SAVE:       saveOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

// loadFont loads a font from a file, or Go Regular if fontname is empty.
func (intp *Intp) loadFont(fontname string) (err error) {
	if fontname == "" {
		intp.font, err = outline.FromBinary(goregular.TTF)
	} else {
		intp.font, err = outline.LoadFont(fontname)
	}
	if err != nil {
		tracer().Errorf("cannot load font %q: %s", fontname, err)
		return
	}
	tracer().Infof("loaded font = %s", intp.font.Fontname)
	pterm.Printf("font tables: %v\n", intp.font.OT.TableTags())
	return
}

// ----------------------------------------------------------------------

var ErrNoTable = errors.New("no table set")
var ErrNoGlyph = errors.New("no glyph selected")

func (intp *Intp) checkTable() error {
	if intp.table == nil {
		return ErrNoTable
	}
	return nil
}

func (intp *Intp) checkGlyph() (ot.GlyphIndex, error) {
	if intp.gid < 0 {
		return 0, ErrNoGlyph
	}
	return ot.GlyphIndex(intp.gid), nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
