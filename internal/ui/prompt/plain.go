package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Plain reads answers line by line from a reader, e.g. os.Stdin.
type Plain struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewPlain creates a Plain reader writing prompts to out.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: in, out: out}
}

// scan runs once in the background so a blocked read never holds up cancellation
func (p *Plain) scan() {
	p.lines = make(chan lineResult)
	go func() {
		sc := bufio.NewScanner(p.in)
		for sc.Scan() {
			p.lines <- lineResult{line: sc.Text()}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		for {
			p.lines <- lineResult{err: err}
		}
	}()
}

// ReadLine shows the prompt and waits for the next line.
func (p *Plain) ReadLine(ctx context.Context, prompt string) (string, error) {
	p.once.Do(p.scan)
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
		// menus end without a trailing space and get their own line
		if !strings.HasSuffix(prompt, " ") {
			fmt.Fprintln(p.out)
		}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.lines:
		return r.line, r.err
	}
}
