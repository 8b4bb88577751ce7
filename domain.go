package realfn

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Domain is a subset of the real line, represented as a union of intervals.
//
// The intervals are kept in canonical form: sorted in ascending order and
// pairwise disjoint, with no two neighbouring intervals touching at a point
// that either of them includes. Two domains describing the same set thus
// have identical interval lists.
//
// The zero value is the empty set. Domains must be copied with
// [Domain.Clone] before being modified if they might be shared; all
// functions in this package that hand out domains return copies.
type Domain struct {
	ivs []Interval
}

// NewDomain returns the union of the given intervals.
func NewDomain(ivs ...Interval) (Domain, error) {
	var d Domain
	for _, iv := range ivs {
		if err := d.Add(iv); err != nil {
			return Domain{}, err
		}
	}
	return d, nil
}

// MustDomain is like [NewDomain] but panics on error.
func MustDomain(ivs ...Interval) Domain {
	d, err := NewDomain(ivs...)
	if err != nil {
		panic(err)
	}
	return d
}

// RealLine returns the domain containing every real number.
func RealLine() Domain {
	return Domain{ivs: []Interval{RealLineInterval()}}
}

// Add adds an interval to the domain, merging it with any intervals it
// overlaps or touches. It returns [ErrInvalidInterval] if iv isn't a valid
// interval.
func (d *Domain) Add(iv Interval) error {
	if !iv.IsValid() {
		return fmt.Errorf("adding %v to domain: %w", iv, ErrInvalidInterval)
	}
	i := sort.Search(len(d.ivs), func(k int) bool {
		return !lowerLess(d.ivs[k].low, iv.low)
	})
	d.ivs = slices.Insert(d.ivs, i, iv)
	for i > 0 {
		u, ok := d.ivs[i-1].Union(d.ivs[i])
		if !ok {
			break
		}
		d.ivs[i-1] = u
		d.ivs = slices.Delete(d.ivs, i, i+1)
		i--
	}
	for i+1 < len(d.ivs) {
		u, ok := d.ivs[i].Union(d.ivs[i+1])
		if !ok {
			break
		}
		d.ivs[i] = u
		d.ivs = slices.Delete(d.ivs, i+1, i+2)
	}
	return nil
}

// Union returns the union of d and o. Neither input is modified.
func (d Domain) Union(o Domain) Domain {
	var out []Interval
	var cur Interval
	have := false
	i, j := 0, 0
	for i < len(d.ivs) || j < len(o.ivs) {
		var next Interval
		if j >= len(o.ivs) || (i < len(d.ivs) && !lowerLess(o.ivs[j].low, d.ivs[i].low)) {
			next = d.ivs[i]
			i++
		} else {
			next = o.ivs[j]
			j++
		}
		if !have {
			cur, have = next, true
			continue
		}
		if u, ok := cur.Union(next); ok {
			cur = u
		} else {
			out = append(out, cur)
			cur = next
		}
	}
	if have {
		out = append(out, cur)
	}
	return Domain{ivs: out}
}

// Intersect returns the intersection of d and o. Neither input is modified.
func (d Domain) Intersect(o Domain) Domain {
	var out Domain
	i, j := 0, 0
	for i < len(d.ivs) && j < len(o.ivs) {
		a, b := d.ivs[i], o.ivs[j]
		if x, ok := a.Intersect(b); ok {
			out.appendCanonical(x)
		}
		switch {
		case upperLess(a.high, b.high):
			i++
		case upperLess(b.high, a.high):
			j++
		default:
			i++
			j++
		}
	}
	return out
}

// appendCanonical appends an interval that doesn't start before the last
// interval of d, merging the two if possible.
func (d *Domain) appendCanonical(iv Interval) {
	if n := len(d.ivs); n > 0 {
		if u, ok := d.ivs[n-1].Union(iv); ok {
			d.ivs[n-1] = u
			return
		}
	}
	d.ivs = append(d.ivs, iv)
}

// Contains reports whether x is an element of the domain.
func (d Domain) Contains(x float64) bool {
	// The first interval that doesn't end before x. If it excludes its upper
	// bound x, the next interval may start at x.
	i := sort.Search(len(d.ivs), func(k int) bool {
		return d.ivs[k].high.Value >= x
	})
	for ; i < len(d.ivs) && d.ivs[i].low.Value <= x; i++ {
		if d.ivs[i].Contains(x) {
			return true
		}
	}
	return false
}

// IsContiguous reports whether the domain is empty or a single interval.
func (d Domain) IsContiguous() bool { return len(d.ivs) <= 1 }

// IsEmpty reports whether the domain is the empty set.
func (d Domain) IsEmpty() bool { return len(d.ivs) == 0 }

// Len returns the number of intervals.
func (d Domain) Len() int { return len(d.ivs) }

// At returns the i'th interval in ascending order.
func (d Domain) At(i int) Interval { return d.ivs[i] }

// Intervals returns an iterator over the domain's intervals in ascending
// order.
func (d Domain) Intervals() iter.Seq[Interval] {
	return slices.Values(d.ivs)
}

// Extent returns the smallest interval covering the whole domain. The second
// return value is false if the domain is empty.
func (d Domain) Extent() (Interval, bool) {
	if len(d.ivs) == 0 {
		return Interval{}, false
	}
	return Interval{low: d.ivs[0].low, high: d.ivs[len(d.ivs)-1].high}, true
}

// Clone returns a copy of d that doesn't share storage with it.
func (d Domain) Clone() Domain {
	return Domain{ivs: slices.Clone(d.ivs)}
}

// Equal reports whether d and o describe the same set.
func (d Domain) Equal(o Domain) bool {
	return slices.Equal(d.ivs, o.ivs)
}

func (d Domain) String() string {
	if len(d.ivs) == 0 {
		return "∅"
	}
	var sb strings.Builder
	for i, iv := range d.ivs {
		if i > 0 {
			sb.WriteString(" ∪ ")
		}
		sb.WriteString(iv.String())
	}
	return sb.String()
}
