// Package catalog loads the immutable inputs of a verification run: the
// reducible configurations and the discharging rules.
package catalog

import (
	"os"
	"strings"

	"github.com/edge-coloring/projective-discharging/pkg"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/util"
	"github.com/pkg/errors"
)

// Configuration is a reducible configuration: a near-triangulation plus the
// size of the ring that surrounded it in the plane. When the interior is
// 2-connected the ring is elided at load time; otherwise the ring vertices
// stay and matching excludes them from the degree check.
type Configuration struct {
	conf         *datastructure.NearTriangulation
	ringSize     int
	insideEdgeID int
	hasCutVertex bool
	filename     string
}

func newConfiguration(ringSize int, hasCutVertex bool, filename string, conf *datastructure.NearTriangulation) (*Configuration, error) {
	c := &Configuration{
		conf:         conf,
		ringSize:     ringSize,
		hasCutVertex: hasCutVertex,
		filename:     filename,
	}
	// With ring vertices present the inside edge must be searched for; with
	// the ring elided every edge connects non-ring vertices, so edge 0 works.
	if hasCutVertex {
		found := false
		for id, edge := range conf.Edges() {
			if edge.From >= ringSize && edge.To >= ringSize {
				c.insideEdgeID = id
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("%s has no edge between non-ring vertices", filename)
		}
	} else if len(conf.Edges()) == 0 {
		return nil, errors.Errorf("%s has no interior edge", filename)
	}
	return c, nil
}

func (c *Configuration) NearTriangulation() *datastructure.NearTriangulation {
	return c.conf
}

func (c *Configuration) RingSize() int {
	return c.ringSize
}

func (c *Configuration) HasCutVertex() bool {
	return c.hasCutVertex
}

// InsideEdgeID returns an edge whose endpoints are both non-ring vertices;
// matching pins this edge first.
func (c *Configuration) InsideEdgeID() int {
	return c.insideEdgeID
}

func (c *Configuration) FileName() string {
	return c.filename
}

// Diameter is the graph diameter of the configuration, ignoring paths through
// ring vertices.
func (c *Configuration) Diameter() int {
	const unreachable = 10000
	offset := 0
	if c.hasCutVertex {
		offset = c.ringSize
	}
	n := c.conf.VertexSize() - offset
	dist := make([][]int, n)
	for i := range dist {
		dist[i] = make([]int, n)
		for j := range dist[i] {
			dist[i][j] = unreachable
		}
		dist[i][i] = 0
	}
	for _, e := range c.conf.Edges() {
		if e.From-offset < 0 || e.To-offset < 0 {
			continue
		}
		dist[e.From-offset][e.To-offset] = 1
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				dist[i][j] = util.Min(dist[i][j], dist[i][k]+dist[k][j])
			}
		}
	}
	diam := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			diam = util.Max(diam, dist[i][j])
		}
	}
	return diam
}

// hasCutVertexInterior runs an articulation-point DFS over the interior
// (non-ring) vertices only.
func hasCutVertexInterior(ringSize int, adj *datastructure.Adjacency) bool {
	vertexSize := adj.Size()
	hasCut := false
	ord := 0
	num := make([]int, vertexSize)
	low := make([]int, vertexSize)
	for i := range num {
		num[i] = -1
		low[i] = -1
	}
	var dfs func(v, par int)
	dfs = func(v, par int) {
		num[v] = ord
		ord++
		low[v] = num[v]
		nChild := 0
		for _, u := range adj.Neighbors(v) {
			if u == par || u < ringSize {
				continue
			}
			if num[u] != -1 {
				low[v] = util.Min(low[v], num[u])
				continue
			}
			nChild++
			dfs(u, v)
			low[v] = util.Min(low[v], low[u])
			if par != -1 && num[v] <= low[u] {
				hasCut = true
			}
		}
		if par == -1 && nChild >= 2 {
			hasCut = true
		}
	}
	dfs(ringSize, -1)
	return hasCut
}

// ReadConfFile parses a .conf file: a comment line, a "V R" line, then one
// "v deg adj..." line per interior vertex (1-based ids, ring vertices 1..R).
// Ring edges i-(i+1 mod R) are implicit.
func ReadConfFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	content := string(data)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[i+1:] // first line is a free comment
	}
	tok := newTokenizer(filename, content)

	vertexSize, err := tok.nextInt()
	if err != nil {
		return nil, err
	}
	ringSize, err := tok.nextInt()
	if err != nil {
		return nil, err
	}
	if ringSize <= 0 || vertexSize <= ringSize {
		return nil, errors.Errorf("%s declares %d vertices with ring size %d", filename, vertexSize, ringSize)
	}

	adj := datastructure.NewAdjacency(vertexSize)
	degrees := make([]*datastructure.Degree, vertexSize)
	for v := 0; v < ringSize; v++ {
		adj.AddEdge(v, (v+1)%ringSize)
	}
	for vi := ringSize; vi < vertexSize; vi++ {
		v, err := tok.nextInt()
		if err != nil {
			return nil, err
		}
		v--
		if v != vi {
			return nil, errors.Errorf("%s lists vertex %d out of order, want %d", filename, v+1, vi+1)
		}
		degv, err := tok.nextInt()
		if err != nil {
			return nil, err
		}
		deg := datastructure.NewFixedDegree(degv)
		degrees[v] = &deg
		for i := 0; i < degv; i++ {
			u, err := tok.nextInt()
			if err != nil {
				return nil, err
			}
			u--
			if u < 0 || u >= vertexSize {
				return nil, errors.Errorf("%s: vertex %d is adjacent to %d, out of range", filename, v+1, u+1)
			}
			adj.AddEdge(v, u)
		}
	}

	if hasCutVertexInterior(ringSize, adj) {
		return newConfiguration(ringSize, true, filename, datastructure.NewNearTriangulation(adj, degrees))
	}

	// The interior is 2-connected: drop the ring and relax the degree of
	// every vertex that sends three edges into it (such a configuration
	// stays reducible when that degree shrinks by one).
	interior := datastructure.NewAdjacency(vertexSize - ringSize)
	for v := ringSize; v < vertexSize; v++ {
		isIncidentRing := false
		nAdj := 0
		for _, u := range adj.Neighbors(v) {
			if u < ringSize {
				isIncidentRing = true
				continue
			}
			interior.AddEdge(v-ringSize, u-ringSize)
			nAdj++
		}
		deg := degrees[v].Upper()
		if isIncidentRing && deg-nAdj == 3 {
			relaxed := datastructure.NewDegree(util.Max(deg-1, pkg.MIN_DEGREE), deg)
			degrees[v] = &relaxed
		}
	}
	degrees = degrees[ringSize:]
	return newConfiguration(ringSize, false, filename, datastructure.NewNearTriangulation(interior, degrees))
}
