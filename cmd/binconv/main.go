package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/yyyoichi/binconv"
	"github.com/yyyoichi/binconv/hexedit"
)

const usage = `commands:
  bit <pos> <0|1>  set one bit (pos 0..7, 0 is the LSB)
  toggle <pos>     flip one bit
  set              set all bits
  clear            clear all bits
  invert           invert the mask
  dec <0..255>     set the mask from a decimal value
  hex <text>       feed text to the hex edit field
  show             print the mask
  help             print this help
  quit             exit`

var errUnknownCommand = errors.New("unknown command")

func main() {
	var (
		grouped = flag.Bool("grouped", true, "separate the bit string nibbles with '_'")
		verbose = flag.Bool("v", false, "log each command")
		script  = flag.String("script", "", "read commands from a file instead of stdin")
	)
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	s := newSession(os.Stdout, *grouped)
	if err := s.run(in); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

type session struct {
	out    io.Writer
	mask   *binconv.Mask
	parser *hexedit.Parser
}

func newSession(out io.Writer, grouped bool) *session {
	s := &session{
		out:    out,
		parser: hexedit.NewParser(),
	}
	s.mask = binconv.New(
		binconv.WithGrouped(grouped),
		binconv.WithOnChange(s.print),
	)
	return s
}

// run executes one command per line until EOF or quit.
// Command errors are reported and do not stop the session.
func (s *session) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		log.Println("command:", line)
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := s.exec(line); err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
	return sc.Err()
}

func (s *session) exec(line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "bit":
		pos, val, ok := strings.Cut(arg, " ")
		if !ok {
			return fmt.Errorf("usage: bit <pos> <0|1>")
		}
		p, err := strconv.Atoi(pos)
		if err != nil {
			return fmt.Errorf("bad position %q: %w", pos, err)
		}
		v, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("bad bit value %q: %w", val, err)
		}
		return s.mask.SetBit(p, v)
	case "toggle":
		p, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("bad position %q: %w", arg, err)
		}
		return s.mask.Toggle(p)
	case "set":
		s.mask.SetAll()
	case "clear":
		s.mask.ClearAll()
	case "invert":
		s.mask.Invert()
	case "dec":
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("bad decimal %q: %w", arg, err)
		}
		return s.mask.SetDecimalInt(v)
	case "hex":
		v := s.mask.SetHex(s.parser, arg)
		log.Printf("hex %q parsed to %s", arg, hexedit.Format(v))
	case "show":
		s.print(s.mask.Snapshot())
	case "help":
		fmt.Fprintln(s.out, usage)
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
	return nil
}

func (s *session) print(v binconv.View) {
	fmt.Fprintf(s.out, "dec=%d hex=%s bits=%s inv=%d invbits=%s\n",
		v.Decimal, v.HexString, v.BitString, v.InvertedDecimal, v.InvertedBitString)
}
