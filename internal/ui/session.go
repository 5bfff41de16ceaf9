package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/overlay"
)

const sessionHelp = `Commands:
  search <text>        filter jobs (search with no text clears the filter)
  open <id>            show a job
  close                close the job overlay
  existing             apply with your stored resume
  upload <file.pdf>    apply with a new PDF resume
  click <target> [f]   click backdrop, close, content, existing or upload
  more / back          scroll the job list
  reload               retry loading jobs
  help                 show this help
  quit                 leave`

// ReadFile loads a resume from disk
type ReadFile func(path string) ([]byte, error)

// Session is the interactive stdin loop over a board
type Session struct {
	board    *board.Board
	renderer *Renderer
	out      io.Writer
	readFile ReadFile
	page     int
}

// NewSession connects the renderer to b. page is the scroll step.
func NewSession(b *board.Board, r *Renderer, out io.Writer, page int) *Session {
	if page <= 0 {
		page = 10
	}
	return &Session{board: b, renderer: r, out: out, readFile: os.ReadFile, page: page}
}

// Run reads commands from in until quit, EOF or ctx ends. Pending
// submissions are left to settle; the caller waits for them.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	detach := s.renderer.Attach(s.board)
	defer detach()

	if err := s.board.Load(ctx); err != nil {
		s.renderer.Render(s.board.View())
	}
	fmt.Fprintln(s.out, pterm.Gray("Type 'help' for commands."))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.Exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// Exec runs one command line and reports whether the session should end
func (s *Session) Exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, sessionHelp)
	case "search", "s":
		s.board.SetQuery(arg)
	case "open", "o":
		_, err = s.board.Open(domain.NewJobID(arg))
	case "close":
		s.board.Close()
	case "existing":
		_, err = s.board.ApplyExisting(ctx)
	case "upload":
		err = s.upload(ctx, arg)
	case "click":
		err = s.click(ctx, arg)
	case "more":
		s.renderer.Scroll(s.page)
	case "back":
		s.renderer.Scroll(-s.page)
	case "reload":
		err = s.board.Load(ctx)
	default:
		err = fmt.Errorf("unknown command %q, type 'help'", cmd)
	}

	if err != nil {
		s.report(err)
	}
	return false
}

func (s *Session) upload(ctx context.Context, path string) error {
	file, err := s.resume(path)
	if err != nil {
		return err
	}
	_, err = s.board.ApplyUpload(ctx, file)
	return err
}

func (s *Session) click(ctx context.Context, arg string) error {
	name, path, _ := strings.Cut(arg, " ")
	target, ok := overlay.ParseTarget(name)
	if !ok {
		return fmt.Errorf("unknown click target %q", name)
	}

	var file *domain.ResumeFile
	if target == overlay.TargetUpload {
		var err error
		if file, err = s.resume(strings.TrimSpace(path)); err != nil {
			return err
		}
	}
	_, err := s.board.Click(ctx, target, file)
	return err
}

func (s *Session) resume(path string) (*domain.ResumeFile, error) {
	if path == "" {
		return nil, domain.ErrNoFile
	}
	data, err := s.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	return &domain.ResumeFile{Name: filepath.Base(path), Data: data}, nil
}

func (s *Session) report(err error) {
	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		fmt.Fprintln(s.out, pterm.Warning.Sprint("Please wait, your application is still being submitted."))
	case domain.IsValidationError(err):
		fmt.Fprintln(s.out, pterm.Warning.Sprint(err))
	default:
		fmt.Fprintln(s.out, pterm.Error.Sprint(err))
		if hint := domain.Hint(err); hint != "" {
			fmt.Fprintln(s.out, pterm.Info.Sprint(hint))
		}
	}
}
