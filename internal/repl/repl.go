// Package repl implements the interactive notebook editor. It is the
// caller the engine contract assumes: every edit triggers a debounced
// recompute, and the collection is autosaved after an independent delay.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"regpad/internal/docfile"
	"regpad/internal/highlight"
	"regpad/internal/notebook"
	"regpad/internal/session"
	"regpad/internal/simulate"
	"regpad/internal/store"
)

// Quiescence delays: recompute shortly after the user stops editing, save
// a little later still.
const (
	resimDelay = 250 * time.Millisecond
	saveDelay  = 2 * time.Second
)

// Session holds the open collection and the current editing position.
type Session struct {
	mu     sync.Mutex
	store  *store.Store
	col    *notebook.Collection
	class  *notebook.Class
	method *notebook.Method

	resim *session.Debounce
	save  *session.Debounce
	color bool
}

// Start loads the collection from the store and runs the editor loop until
// exit or EOF.
func Start(st *store.Store) error {
	col, err := st.LoadCollection(context.Background())
	if err != nil {
		return err
	}

	s := &Session{
		store: st,
		col:   col,
		color: isatty.IsTerminal(os.Stdout.Fd()),
	}
	s.resim = session.NewDebounce(resimDelay, s.recomputeCurrent)
	s.save = session.NewDebounce(saveDelay, s.persist)

	fmt.Printf("regpad | %d classes in %s | type 'help' for commands\n",
		len(col.Classes), st.Path())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(s.prompt())
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		s.dispatch(line)
	}

	// never lose the last edit on the way out
	s.resim.Flush()
	s.save.Cancel()
	s.persist()
	return nil
}

func (s *Session) prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.method != nil:
		return fmt.Sprintf("%s/%s> ", s.class.Friendly, s.method.Name)
	case s.class != nil:
		return fmt.Sprintf("%s> ", s.class.Friendly)
	default:
		return "regpad> "
	}
}

func (s *Session) dispatch(input string) {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(input, cmd))

	switch cmd {
	case "help":
		s.printHelp()
	case "classes":
		s.listClasses()
	case "newclass":
		s.newClass(args)
	case "use":
		s.useClass(rest)
	case "newmethod":
		s.newMethod(rest)
	case "open":
		s.openMethod(rest)
	case "lines":
		s.listLines()
	case "note":
		s.editLine(args, rest, true)
	case "script":
		s.editLine(args, rest, false)
	case "addline":
		s.addLine(rest)
	case "addreg":
		s.addRegister(args)
	case "show":
		s.showSnapshot(args)
	case "live":
		s.showLive()
	case "export":
		s.exportMethod(rest)
	case "import":
		s.importMethod(rest)
	case "save":
		s.resim.Flush()
		s.save.Cancel()
		s.persist()
		fmt.Println("saved")
	default:
		fmt.Printf("unknown command %q, type 'help'\n", cmd)
	}
}

func (s *Session) printHelp() {
	fmt.Print(`Commands:
  classes                     list classes
  newclass <name> [obf] [friendly]
  use <class>                 select a class (any of its names)
  newmethod <name>            create a method in the current class
  open <method>               open a method
  lines                       show the method's lines
  note <n> <text>             set notes on line n
  script <n> <text>           set the script on line n (v0 = 5; p0 = "x")
  addline [notes]             append an empty line
  addreg p|v                  declare the next parameter/local register
  show <n>                    register snapshot after line n
  live                        register state after the last line
  export <file>               write the current method as a document
  import <file>               read a method document into the current class
  save                        persist immediately
  exit
`)
}

func (s *Session) listClasses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.col.Classes) == 0 {
		fmt.Println("no classes yet, try 'newclass'")
		return
	}
	for _, cl := range s.col.Classes {
		fmt.Printf("%s (%s / %s)\n", cl.Friendly, cl.Name, cl.Obfuscated)
		for _, m := range cl.Methods {
			edited := ""
			if !m.UpdatedAt.IsZero() {
				edited = ", edited " + humanize.Time(m.UpdatedAt)
			}
			fmt.Printf("  %s  (%d lines, p%d/v%d%s)\n",
				m.Name, len(m.Lines), m.ParamCount, m.LocalCount, edited)
		}
	}
}

func (s *Session) newClass(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: newclass <name> [obfuscated] [friendly]")
		return
	}
	name := args[0]
	obf, friendly := name, name
	if len(args) > 1 {
		obf = args[1]
	}
	if len(args) > 2 {
		friendly = args[2]
	}
	s.mu.Lock()
	s.class = s.col.AddClass(name, obf, friendly)
	s.method = nil
	s.mu.Unlock()
	s.save.Trigger()
	fmt.Printf("class %s created\n", friendly)
}

func (s *Session) useClass(name string) {
	if name == "" {
		fmt.Println("usage: use <class>")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cl := s.col.Class(name)
	if cl == nil {
		fmt.Printf("no class %q\n", name)
		return
	}
	s.class = cl
	s.method = nil
}

func (s *Session) newMethod(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.class == nil {
		fmt.Println("select a class first ('use <class>')")
		return
	}
	if name == "" {
		fmt.Println("usage: newmethod <name>")
		return
	}
	m := simulate.NewMethod(name)
	s.class.Methods = append(s.class.Methods, m)
	s.method = m
	s.save.Trigger()
	fmt.Printf("method %s created with %d empty lines\n", name, len(m.Lines))
}

func (s *Session) openMethod(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.class == nil {
		fmt.Println("select a class first ('use <class>')")
		return
	}
	m := s.class.Method(name)
	if m == nil {
		fmt.Printf("no method %q in %s\n", name, s.class.Friendly)
		return
	}
	s.method = m
}

func (s *Session) listLines() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method == nil {
		fmt.Println("open a method first")
		return
	}
	order := make([]notebook.Line, len(s.method.Lines))
	copy(order, s.method.Lines)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Index < order[j].Index })
	for _, ln := range order {
		fmt.Printf("%3d | %-40s | %s\n", ln.Index, s.paint(ln.Notes), s.paint(ln.Script))
	}
}

// editLine updates notes (notes=true) or script on the line with the given
// index, then schedules recompute and save.
func (s *Session) editLine(args []string, rest string, notes bool) {
	if len(args) == 0 {
		fmt.Println("usage: note|script <line> <text>")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("%q is not a line index\n", args[0])
		return
	}
	text := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method == nil {
		fmt.Println("open a method first")
		return
	}
	edited := false
	for i := range s.method.Lines {
		if s.method.Lines[i].Index != idx {
			continue
		}
		if notes {
			s.method.Lines[i].Notes = text
		} else {
			s.method.Lines[i].Script = text
		}
		edited = true
	}
	if !edited {
		fmt.Printf("no line %d\n", idx)
		return
	}
	s.method.Touch()
	s.resim.Trigger()
	s.save.Trigger()
}

func (s *Session) addLine(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method == nil {
		fmt.Println("open a method first")
		return
	}
	ln := s.method.AppendLine(notes, "")
	s.resim.Trigger()
	s.save.Trigger()
	fmt.Printf("line %d added\n", ln.Index)
}

func (s *Session) addRegister(args []string) {
	if len(args) != 1 || (args[0] != "p" && args[0] != "v") {
		fmt.Println("usage: addreg p|v")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method == nil {
		fmt.Println("open a method first")
		return
	}
	var name string
	if args[0] == "p" {
		name = simulate.AddParam(s.method)
	} else {
		name = simulate.AddLocal(s.method)
	}
	s.save.Trigger()
	fmt.Printf("%s declared\n", name)
}

// showSnapshot prints the full register state after the given line, then
// resolves register mentions in the line's notes to their values there,
// the terminal stand-in for hover tooltips.
func (s *Session) showSnapshot(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: show <line>")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("%q is not a line index\n", args[0])
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method == nil {
		fmt.Println("open a method first")
		return
	}
	simulate.Recompute(s.method)
	snap, ok := s.method.Snapshots[idx]
	if !ok {
		fmt.Printf("no line %d\n", idx)
		return
	}
	s.printState(snap)

	if ln, ok := s.method.LineByIndex(idx); ok && ln.Notes != "" {
		for _, span := range highlight.Registers(ln.Notes) {
			if v, ok := snap[span.Register]; ok {
				fmt.Printf("  %s = %s (in notes)\n", s.paint(span.Register), FormatValue(v))
			}
		}
	}
}

func (s *Session) showLive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method == nil {
		fmt.Println("open a method first")
		return
	}
	simulate.Recompute(s.method)
	s.printState(s.method.LiveState)
}

func (s *Session) printState(state notebook.State) {
	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s = %s\n", s.paint(name), FormatValue(state[name]))
	}
}

func (s *Session) exportMethod(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method == nil {
		fmt.Println("open a method first")
		return
	}
	if path == "" {
		fmt.Println("usage: export <file>")
		return
	}
	simulate.Recompute(s.method)
	if err := docfile.WriteMethodFile(path, s.method); err != nil {
		fmt.Printf("export failed: %v\n", err)
		return
	}
	fmt.Printf("wrote %s\n", path)
}

func (s *Session) importMethod(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.class == nil {
		fmt.Println("select a class first ('use <class>')")
		return
	}
	if path == "" {
		fmt.Println("usage: import <file>")
		return
	}
	m, err := docfile.ReadMethodFile(path)
	if err != nil {
		// invalid documents block the import and change nothing
		fmt.Printf("import failed: %v\n", err)
		return
	}
	s.class.Methods = append(s.class.Methods, m)
	s.method = m
	s.save.Trigger()
	fmt.Printf("imported %s (%d lines)\n", m.Name, len(m.Lines))
}

func (s *Session) recomputeCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.method != nil {
		simulate.Recompute(s.method)
	}
}

func (s *Session) persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveCollection(context.Background(), s.col); err != nil {
		fmt.Printf("save failed: %v\n", err)
	}
}

// paint highlights register mentions when writing to a terminal.
func (s *Session) paint(text string) string {
	if !s.color {
		return text
	}
	spans := highlight.Registers(text)
	if len(spans) == 0 {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, sp := range spans {
		sb.WriteString(text[last:sp.Start])
		sb.WriteString("\x1b[36m")
		sb.WriteString(text[sp.Start:sp.End])
		sb.WriteString("\x1b[0m")
		last = sp.End
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// FormatValue renders a register value the way the notebook displays it.
func FormatValue(v notebook.Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
