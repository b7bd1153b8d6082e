package testdata

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// basepath is the root directory of this package.
var basepath string

func init() {
	_, currentFile, _, _ := runtime.Caller(0)
	basepath = filepath.Dir(currentFile)
}

// Path returns the absolute path the given relative file or directory path,
// relative to this testdata/ directory in the user's GOPATH.
// If rel is already absolute, it is returned unmodified.
// Taken from https://github.com/grpc/grpc-go/blob/master/testdata/testdata.go.
func Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(basepath, rel)
}

// Source_Conversions are published positions with their 1 m MGRS
// references, tab separated.
var Source_Conversions = "./conversions.tsv"

type Conversion struct {
	Lat, Lon float64
	MGRS     string
	Place    string
}

// Conversions reads Source_Conversions.
func Conversions() ([]Conversion, error) {
	f, err := os.Open(Path(Source_Conversions))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Conversion
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("%s:%d: want 4 fields, got %d", Source_Conversions, n, len(fields))
		}
		c := Conversion{MGRS: fields[2], Place: fields[3]}
		if c.Lat, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", Source_Conversions, n, err)
		}
		if c.Lon, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", Source_Conversions, n, err)
		}
		out = append(out, c)
	}
	return out, scanner.Err()
}
