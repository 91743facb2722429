package seed

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"github.com/skybi/schools-server/internal/school"
	"io"
	"os"
	"strings"
)

//go:embed schools.txt
var defaultNames string

// DefaultNames returns the names of the schools a fresh installation is populated with
func DefaultNames() []string {
	names, _ := ReadNames(strings.NewReader(defaultNames))
	return names
}

// ReadNames reads one school name per line.
// Surrounding whitespace is trimmed; blank lines and lines starting with '#' are skipped.
func ReadNames(reader io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ReadNamesFromFile reads school names out of the file at the given path (see ReadNames)
func ReadNamesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadNames(file)
}

// Populate creates a school for every given name in order, but only if the repository holds no schools yet.
// It returns the amount of created schools.
func Populate(ctx context.Context, repo school.Repository, names []string) (int, error) {
	_, n, err := repo.List(ctx, 0, 1)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for i, name := range names {
		if _, err := repo.Create(ctx, name); err != nil {
			return i, fmt.Errorf("could not create school %q: %w", name, err)
		}
	}
	return len(names), nil
}
