package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "COT"

// FormatNumber builds the human-facing quotation number, e.g. COT-2025-001.
func FormatNumber(year, counter int) string {
	return fmt.Sprintf("%s-%d-%03d", numberPrefix, year, counter)
}

// ParseNumber splits a canonical number into year and counter.
func ParseNumber(number string) (year, counter int, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != numberPrefix {
		return 0, 0, fmt.Errorf("quotation number %q is not in COT-<year>-<counter> form", number)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return 0, 0, fmt.Errorf("quotation number %q has an invalid year", number)
	}
	counter, err = strconv.Atoi(parts[2])
	if err != nil || counter < 1 || len(parts[2]) < 3 {
		return 0, 0, fmt.Errorf("quotation number %q has an invalid counter", number)
	}
	return year, counter, nil
}

// PlaceholderNumber is shown while a real number cannot be obtained. It is
// never accepted as a persisted number.
func PlaceholderNumber(year int) string {
	return fmt.Sprintf("%s-%d-DRAFT", numberPrefix, year)
}

// IsPlaceholderNumber reports whether number came from PlaceholderNumber.
func IsPlaceholderNumber(number string) bool {
	return strings.HasPrefix(number, numberPrefix+"-") && strings.HasSuffix(number, "-DRAFT")
}
