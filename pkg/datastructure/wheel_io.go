package datastructure

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/edge-coloring/projective-discharging/pkg/util"
	"github.com/pkg/errors"
)

// ReadWheelFile parses a single-line wheel file "d deg1 ... deg_d" where a
// rim degree may be "?" for undecided. Files ending in .bz2 are decompressed
// transparently.
func ReadWheelFile(filename string) (*Wheel, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	line, err := util.ReadLine(bufio.NewReader(r))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", filename)
	}
	if line == "" {
		return nil, errors.Errorf("%s is empty", filename)
	}
	fields := strings.Fields(line)
	hubDegree, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, errors.Wrapf(err, "bad hub degree in %s", filename)
	}
	if len(fields) != hubDegree+1 {
		return nil, errors.Errorf("%s lists %d rim degrees, want %d", filename, len(fields)-1, hubDegree)
	}

	wheel := NewWheelFromHubDegree(hubDegree)
	for v := 1; v <= hubDegree; v++ {
		if fields[v] == "?" {
			continue
		}
		deg, err := DegreeFromString(fields[v])
		if err != nil {
			return nil, errors.Wrapf(err, "bad rim degree in %s", filename)
		}
		wheel.SetDegree(v, &deg)
	}
	return wheel, nil
}

// WriteWheelFile writes w in the single-line wheel format, bzip2-compressed
// when filename ends in .bz2.
func (w *Wheel) WriteWheelFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer f.Close()

	var out io.Writer = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		defer bz.Close()
		out = bz
	}

	bw := bufio.NewWriter(out)
	if _, err := bw.WriteString(w.String() + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}
