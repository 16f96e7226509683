// cmd/vita/input.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"vita/internal/platform/config"
)

// collectInputs reúne los hosts sin validar: -d, -f y argumentos. Solo si
// no hay ninguno de los tres se lee stdin.
func collectInputs(in config.Input, stdin io.Reader) ([]string, error) {
	var inputs []string
	if in.Domain != "" {
		inputs = append(inputs, in.Domain)
	}
	if in.File != "" {
		lines, err := readHostFile(in.File)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, lines...)
	}
	inputs = append(inputs, in.Args...)

	if len(inputs) > 0 || stdin == nil {
		return inputs, nil
	}
	return readWords(stdin)
}

// readHostFile lee un host por línea; ignora líneas vacías y comentarios.
func readHostFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hosts file: %w", err)
	}
	defer f.Close()

	var hosts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read hosts file: %w", err)
	}
	return hosts, nil
}

// readWords separa r por espacios en blanco.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return words, nil
}
