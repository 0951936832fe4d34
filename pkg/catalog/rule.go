package catalog

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/pkg/errors"
)

// Rule is a discharging rule: wherever its near-triangulation embeds in a
// host with the send edge aligned, amount units of charge flow from the send
// edge's tail vertex to its head vertex.
type Rule struct {
	rule       *datastructure.NearTriangulation
	sendEdgeID int
	amount     int
	filename   string
}

func NewRule(from, to, amount int, filename string, rule *datastructure.NearTriangulation) (*Rule, error) {
	sendEdgeID, ok := rule.EdgeID(from, to)
	if !ok {
		return nil, errors.Errorf("%s: no send edge between %d and %d", filename, from+1, to+1)
	}
	return &Rule{rule: rule, sendEdgeID: sendEdgeID, amount: amount, filename: filename}, nil
}

func (r *Rule) NearTriangulation() *datastructure.NearTriangulation {
	return r.rule
}

func (r *Rule) SendEdgeID() int {
	return r.sendEdgeID
}

func (r *Rule) Amount() int {
	return r.amount
}

func (r *Rule) FileName() string {
	return r.filename
}

// ReadRuleFile parses a .rule file: a comment line, a "V from to amount"
// line, then one "v deg-spec u1 u2 ... uk" line per vertex, where deg-spec is
// "k", "k+" or "k-" and the adjacency list runs to the end of the line
// (1-based ids).
func ReadRuleFile(filename string) (*Rule, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", filename)
	}
	if len(lines) < 2 {
		return nil, errors.Errorf("%s ends unexpectedly", filename)
	}
	// lines[0] is a free comment.
	header := strings.Fields(lines[1])
	if len(header) != 4 {
		return nil, errors.Errorf("%s: header %q, want \"V from to amount\"", filename, lines[1])
	}
	vertexSize, err0 := strconv.Atoi(header[0])
	from, err1 := strconv.Atoi(header[1])
	to, err2 := strconv.Atoi(header[2])
	amount, err3 := strconv.Atoi(header[3])
	for _, err := range []error{err0, err1, err2, err3} {
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad header %q", filename, lines[1])
		}
	}
	from--
	to--
	if len(lines) != vertexSize+2 {
		return nil, errors.Errorf("%s lists %d vertex lines, want %d", filename, len(lines)-2, vertexSize)
	}

	adj := datastructure.NewAdjacency(vertexSize)
	degrees := make([]*datastructure.Degree, vertexSize)
	for vi := 0; vi < vertexSize; vi++ {
		fields := strings.Fields(lines[vi+2])
		if len(fields) < 2 {
			return nil, errors.Errorf("%s: vertex line %q is too short", filename, lines[vi+2])
		}
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad vertex id %q", filename, fields[0])
		}
		v--
		if v != vi {
			return nil, errors.Errorf("%s lists vertex %d out of order, want %d", filename, v+1, vi+1)
		}
		deg, err := datastructure.DegreeFromString(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: vertex %d", filename, v+1)
		}
		degrees[v] = &deg
		for _, uStr := range fields[2:] {
			u, err := strconv.Atoi(uStr)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: bad neighbor %q of vertex %d", filename, uStr, v+1)
			}
			u--
			if u < 0 || u >= vertexSize {
				return nil, errors.Errorf("%s: vertex %d is adjacent to %d, out of range", filename, v+1, u+1)
			}
			adj.AddEdge(v, u)
		}
	}
	if !adj.Has(from, to) {
		return nil, errors.Errorf("%s: send vertices %d and %d are not adjacent", filename, from+1, to+1)
	}

	return NewRule(from, to, amount, filename, datastructure.NewNearTriangulation(adj, degrees))
}
