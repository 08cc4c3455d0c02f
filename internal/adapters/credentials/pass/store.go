package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

const defaultEntry = "harvestguru/session"

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps the session credential in the pass password manager under
// a single entry.
type Store struct {
	entry string
	run   runFunc
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(entry string) *Store {
	if strings.TrimSpace(entry) == "" {
		entry = defaultEntry
	}

	return &Store{entry: entry, run: runPassCommand}
}

func (s *Store) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", s.entry)
	if err != nil {
		if isMissingEntry(stderr) {
			return "", domain.ErrCredentialNotFound
		}
		return "", formatError("load", s.entry, err, stderr)
	}

	stdout = strings.TrimSuffix(stdout, "\n")
	stdout = strings.TrimSuffix(stdout, "\r")
	if stdout == "" {
		return "", domain.ErrCredentialNotFound
	}

	return stdout, nil
}

func (s *Store) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("access token is empty")
	}

	_, stderr, err := s.run(ctx, token+"\n", "insert", "-m", "-f", s.entry)
	if err != nil {
		return formatError("save", s.entry, err, stderr)
	}

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", s.entry)
	if err != nil {
		if isMissingEntry(stderr) {
			return nil
		}
		return formatError("clear", s.entry, err, stderr)
	}

	return nil
}

func isMissingEntry(stderr string) bool {
	return strings.Contains(stderr, "is not in the password store")
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, entry string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
}
