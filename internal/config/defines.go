package config

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

// Matches the configuration block firmware projects put in front of the
// alias header, e.g. "#define TMRA_TARGET 3" or "#define TMRB_ALT_PIN TRUE".
var defineLineRegex = regexp.MustCompile(`^\s*#\s*define\s+TMR([A-Da-d])_(TARGET|ALT_PIN)\b\s*(\S*)`)

func parseDefines(r io.Reader, timers *Timers) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		matches := defineLineRegex.FindStringSubmatch(scanner.Text())
		if len(matches) != 4 {
			continue
		}

		l, err := model.ParseLogical(matches[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		tc := timers.Get(l)
		value := strings.TrimSuffix(strings.TrimPrefix(matches[3], "("), ")")
		if value == "" || strings.HasPrefix(value, "//") || strings.HasPrefix(value, "/*") {
			return fmt.Errorf("line %d: TMR%s_%s has no value", lineNo, l, matches[2])
		}

		switch matches[2] {
		case "TARGET":
			// Integer literal as the preprocessor reads it: decimal, hex or
			// octal, with an optional U/L suffix.
			v, err := strconv.ParseInt(strings.TrimRight(value, "uUlL"), 0, 0)
			if err != nil {
				return fmt.Errorf("line %d: TMR%s_TARGET %q is not an integer", lineNo, l, matches[3])
			}
			n := int(v)
			tc.Target = &n
		case "ALT_PIN":
			b, err := parseFlag(value)
			if err != nil {
				return fmt.Errorf("line %d: TMR%s_ALT_PIN: %w", lineNo, l, err)
			}
			tc.AltPin = b
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error scanning defines: %w", err)
	}
	return nil
}

func parseFlag(v string) (bool, error) {
	switch strings.ToUpper(v) {
	case "TRUE", "1", "ENABLE":
		return true, nil
	case "FALSE", "0", "DISABLE":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected flag value %q", v)
	}
}
