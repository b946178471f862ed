package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio IO поверх потоков процесса.
// Один bufio.Reader на весь сеанс: повторные ReadInput не теряют буферизованный ввод.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewStdio IO на os.Stdin / os.Stdout
func NewStdio() IO {
	return &Stdio{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

// NewStreams IO на произвольных потоках, не терминал
func NewStreams(in io.Reader, out io.Writer) IO {
	return &Stdio{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput печатает подсказку и читает строку.
// Последняя строка без перевода строки тоже возвращается; io.EOF только на пустом остатке.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if !s.IsTerminal() {
		return s.ReadInput(prompt)
	}
	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(s.fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

func (s *Stdio) IsTerminal() bool {
	return s.fd >= 0 && term.IsTerminal(s.fd)
}
