// Package filter holds the search criteria model and the predicate that
// evaluates it against the cached article collection.
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// DateRange buckets articles by age relative to evaluation time.
type DateRange string

const (
	DateRangeNone  DateRange = ""
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangeYear  DateRange = "year"
)

// MaxVolume bounds the archive's volume numbering.
const MaxVolume = 20

// ArticleTypes is the archive's fixed type taxonomy.
var ArticleTypes = []string{"research", "review", "case-study"}

// Categories is the archive's fixed subject taxonomy.
var Categories = []string{"sciences", "humanities", "engineering"}

// Dimension identifies one independent filter axis. The set is closed:
// applying criteria is an exhaustive switch, never generic key iteration.
type Dimension int

const (
	DimQuery Dimension = iota
	DimAuthor
	DimDateRange
	DimVolume
	DimType
	DimCategory
)

// Dimensions lists every axis in serialization order.
var Dimensions = []Dimension{DimQuery, DimAuthor, DimDateRange, DimVolume, DimType, DimCategory}

func (d Dimension) String() string {
	switch d {
	case DimQuery:
		return "query"
	case DimAuthor:
		return "author"
	case DimDateRange:
		return "dateRange"
	case DimVolume:
		return "volume"
	case DimType:
		return "type"
	case DimCategory:
		return "category"
	}
	return "unknown"
}

// Criteria holds the current value of every filter dimension. The zero value
// matches everything.
type Criteria struct {
	Query     string
	Author    string
	DateRange DateRange
	Volume    int // 0 means unset
	Type      string
	Category  string
}

// Set updates a single dimension from its raw string form, validating the
// value and leaving every other dimension untouched. An empty raw value
// clears the dimension.
func (c *Criteria) Set(dim Dimension, raw string) error {
	raw = strings.TrimSpace(raw)
	switch dim {
	case DimQuery:
		c.Query = raw
	case DimAuthor:
		c.Author = raw
	case DimDateRange:
		switch DateRange(raw) {
		case DateRangeNone, DateRangeWeek, DateRangeMonth, DateRangeYear:
			c.DateRange = DateRange(raw)
		default:
			return fmt.Errorf("invalid dateRange %q: must be week, month or year", raw)
		}
	case DimVolume:
		if raw == "" {
			c.Volume = 0
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > MaxVolume {
			return fmt.Errorf("invalid volume %q: must be 1..%d", raw, MaxVolume)
		}
		c.Volume = v
	case DimType:
		if raw != "" && !contains(ArticleTypes, raw) {
			return fmt.Errorf("invalid type %q: must be one of %s", raw, strings.Join(ArticleTypes, ", "))
		}
		c.Type = raw
	case DimCategory:
		if raw != "" && !contains(Categories, raw) {
			return fmt.Errorf("invalid category %q: must be one of %s", raw, strings.Join(Categories, ", "))
		}
		c.Category = raw
	default:
		return fmt.Errorf("unknown filter dimension %d", dim)
	}
	return nil
}

// Get returns the raw string form of a dimension, the inverse of Set.
func (c Criteria) Get(dim Dimension) string {
	switch dim {
	case DimQuery:
		return c.Query
	case DimAuthor:
		return c.Author
	case DimDateRange:
		return string(c.DateRange)
	case DimVolume:
		if c.Volume == 0 {
			return ""
		}
		return strconv.Itoa(c.Volume)
	case DimType:
		return c.Type
	case DimCategory:
		return c.Category
	}
	return ""
}

// IsZero reports whether no dimension is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
