package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wikipeople/wpdb/pkg/normalize"
)

// confirm prints a yes/no prompt and reads one line from stdin.
// Only "yes" and "y" count as confirmation.
func confirm(prompt string) (bool, error) {
	fmt.Printf("%s (yes/no): ", prompt)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}

// parseRadius parses the --radius flag value "lat,lng,km".
func parseRadius(s string) (lat, lng, km float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0,
			fmt.Errorf("radius needs lat,lng,km, got %q", s)
	}

	vals := make([]float64, 3)
	for i, part := range parts {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, 0, 0,
				fmt.Errorf("radius part %q is not a number", part)
		}
	}
	lat, lng, km = vals[0], vals[1], vals[2]

	if lat < -90 || lat > 90 {
		return 0, 0, 0,
			fmt.Errorf("latitude %v is out of [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return 0, 0, 0,
			fmt.Errorf("longitude %v is out of [-180, 180]", lng)
	}
	if km <= 0 {
		return 0, 0, 0,
			fmt.Errorf("radius %v km is not positive", km)
	}
	return lat, lng, km, nil
}

// parseMetaPairs converts repeated --meta "key=value" flags into a
// metadata containment filter. All-digit values become numbers, so
// filters like death_year=1916 match the numeric values the sync
// pipeline stores.
func parseMetaPairs(pairs []string) (map[string]any, error) {
	res := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, val, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if !found || key == "" || val == "" {
			return nil, fmt.Errorf(
				"metadata filter %q is not in key=value form", pair)
		}
		if normalize.IsNumeric(val) {
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf(
					"metadata value %q overflows a number", val)
			}
			res[key] = n
			continue
		}
		res[key] = val
	}
	return res, nil
}
