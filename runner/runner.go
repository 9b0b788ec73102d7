// Package runner dispatches palette commands. Actions bound to a shell
// command are run in the background with their output streamed back.
package runner

import (
	"bufio"
	"io"
	"log"
	"os/exec"
	"regexp"
	"slices"
)

var paramRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// maxLineSize bounds a single line of command output.
const maxLineSize = 1 << 20

// SubstituteParams replaces {{param}} with provided values. Placeholders
// without a value are left as written and their names returned once each.
func SubstituteParams(cmd string, values map[string]string) (string, []string) {
	var unresolved []string
	result := paramRegex.ReplaceAllStringFunc(cmd, func(m string) string {
		name := paramRegex.FindStringSubmatch(m)[1]
		if value, ok := values[name]; ok {
			return value
		}
		if !slices.Contains(unresolved, name) {
			unresolved = append(unresolved, name)
		}
		return m
	})
	return result, unresolved
}

// OutputMsg is sent through the channel for each line of output
type OutputMsg struct {
	Line   string
	IsErr  bool
	Done   bool
	ErrMsg string
}

// Run is one dispatched command. Output is closed when the command finishes.
type Run struct {
	Code    string
	Command string
	Output  <-chan OutputMsg
}

// Catalog resolves the shell command bound to an action.
type Catalog interface {
	Exec(code string) (string, bool)
}

// Dispatcher runs dispatched actions and publishes each run on Runs.
type Dispatcher struct {
	catalog Catalog
	runs    chan Run
	logger  *log.Logger
}

func NewDispatcher(catalog Catalog, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		catalog: catalog,
		runs:    make(chan Run, 16),
		logger:  logger,
	}
}

// Runs delivers one Run per dispatched action.
func (d *Dispatcher) Runs() <-chan Run {
	return d.runs
}

// Dispatch starts the action's command, if it has one, without waiting for
// it. A run nobody is reading is dropped.
func (d *Dispatcher) Dispatch(code string) {
	output := make(chan OutputMsg)
	run := Run{Code: code, Output: output}

	if cmd, ok := d.catalog.Exec(code); ok {
		var unresolved []string
		run.Command, unresolved = SubstituteParams(cmd, map[string]string{"code": code})
		for _, name := range unresolved {
			d.logger.Printf("runner: %s: unresolved parameter {{%s}}", code, name)
		}
		go RunCommand(run.Command, output)
	} else {
		close(output)
	}

	select {
	case d.runs <- run:
	default:
		d.logger.Printf("runner: dropped run of %s, nobody is listening", code)
		go func() {
			for range output {
			}
		}()
	}
}

// RunCommand executes a command and streams output through a channel
func RunCommand(cmd string, output chan<- OutputMsg) {
	defer close(output)

	c := exec.Command("sh", "-c", cmd)

	stdout, err := c.StdoutPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	stderr, err := c.StderrPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	if err := c.Start(); err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	// Stream stdout and stderr concurrently
	done := make(chan struct{}, 2)

	streamReader := func(r io.Reader, isErr bool) {
		defer func() { done <- struct{}{} }()

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
		for scanner.Scan() {
			output <- OutputMsg{Line: scanner.Text(), IsErr: isErr}
		}
		if err := scanner.Err(); err != nil {
			output <- OutputMsg{Line: "output truncated: " + err.Error(), IsErr: true}
			// keep the pipe empty so the command can still exit
			_, _ = io.Copy(io.Discard, r)
		}
	}

	go streamReader(stdout, false)
	go streamReader(stderr, true)

	// Wait for both streams
	<-done
	<-done

	err = c.Wait()
	if err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
	} else {
		output <- OutputMsg{Done: true}
	}
}
