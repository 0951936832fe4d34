package datastructure

import (
	"fmt"
	"strconv"

	"github.com/edge-coloring/projective-discharging/pkg"
	"github.com/pkg/errors"
)

// Degree is a closed integer interval of possible vertex degrees. The
// upper bound pkg.MAX_DEGREE plays the role of infinity. Degree is a value
// type; every operation is pure.
type Degree struct {
	lower int
	upper int
}

func NewDegree(lower, upper int) Degree {
	return Degree{lower: lower, upper: upper}
}

func NewFixedDegree(deg int) Degree {
	return Degree{lower: deg, upper: deg}
}

// DegreeFromString parses "5", "5+", "8-" style degree strings. "k+" means
// [k, MAX_DEGREE], "k-" means [MIN_DEGREE, k].
func DegreeFromString(str string) (Degree, error) {
	if str == "" {
		return Degree{}, errors.New("failed to parse empty string as degree")
	}
	if suffix := str[len(str)-1]; suffix == '+' || suffix == '-' {
		deg, err := strconv.Atoi(str[:len(str)-1])
		if err != nil {
			return Degree{}, errors.Wrapf(err, "failed to parse %q as degree", str)
		}
		if suffix == '+' {
			return NewDegree(deg, pkg.MAX_DEGREE), nil
		}
		return NewDegree(pkg.MIN_DEGREE, deg), nil
	}
	deg, err := strconv.Atoi(str)
	if err != nil {
		return Degree{}, errors.Wrapf(err, "failed to parse %q as degree", str)
	}
	return NewFixedDegree(deg), nil
}

func (d Degree) Lower() int {
	return d.lower
}

func (d Degree) Upper() int {
	return d.upper
}

func (d Degree) String() string {
	if d.Fixed() {
		return strconv.Itoa(d.lower)
	}
	if d.upper == pkg.MAX_DEGREE {
		return strconv.Itoa(d.lower) + "+"
	}
	if d.lower == pkg.MIN_DEGREE {
		return strconv.Itoa(d.upper) + "-"
	}
	return fmt.Sprintf("%d-%d", d.lower, d.upper)
}

// Include reports whether every degree admitted by o is admitted by d.
func (d Degree) Include(o Degree) bool {
	return d.lower <= o.lower && o.upper <= d.upper
}

func DegreeDisjoint(d0, d1 Degree) bool {
	return d0.upper < d1.lower || d1.upper < d0.lower
}

func (d Degree) Fixed() bool {
	return d.lower == d.upper
}

// DivideDegree splits the range of degree into the fixed degrees
// lower, lower+1, ... and one open-ended tail starting at maxDegree.
// For maxDegree = 8: 5+ -> 5, 6, 7, 8+ and 7+ -> 7, 8+ and 6- -> 5, 6.
func DivideDegree(degree Degree, maxDegree int) []Degree {
	if degree.Lower() > maxDegree {
		panic(fmt.Sprintf("degree %s starts beyond max degree %d", degree, maxDegree))
	}
	var degrees []Degree
	deg := degree.Lower()
	for deg < degree.Upper() && deg < maxDegree {
		degrees = append(degrees, NewFixedDegree(deg))
		deg++
	}
	return append(degrees, NewDegree(deg, degree.Upper()))
}
