// Package role defines the five fixed draft roles and the alias table
// used to normalise the many spellings a flat pro-play CSV export uses
// for them ("toplane", "adc", "utility", ...).
package role

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the closed enumeration of the five draft roles. The integer
// value is stable and is used to index 5x5 weight matrices directly.
type Role int

const (
	Top Role = iota
	Jungle
	Mid
	Bot
	Support
	numRoles = 5
)

// All lists the five roles in stable id order.
var All = [numRoles]Role{Top, Jungle, Mid, Bot, Support}

// NumRoles is the number of distinct roles (5).
const NumRoles = numRoles

// String returns the canonical lowercase form used throughout the
// artifact and in all lookups ("top", "jng", "mid", "bot", "sup").
func (r Role) String() string {
	switch r {
	case Top:
		return "top"
	case Jungle:
		return "jng"
	case Mid:
		return "mid"
	case Bot:
		return "bot"
	case Support:
		return "sup"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the five defined roles.
func (r Role) Valid() bool {
	return r >= Top && r <= Support
}

var aliases = map[string]Role{
	"top":     Top,
	"toplane": Top,
	"jng":     Jungle,
	"jungle":  Jungle,
	"jgl":     Jungle,
	"mid":     Mid,
	"middle":  Mid,
	"midlane": Mid,
	"bot":     Bot,
	"bottom":  Bot,
	"adc":     Bot,
	"carry":   Bot,
	"sup":     Support,
	"supp":    Support,
	"support": Support,
	"utility": Support,
}

// Parse normalises an arbitrary role spelling to a canonical Role. The
// second return is false when the input has no known alias — callers
// (the row parser) reject the row in that case rather than guessing.
func Parse(s string) (Role, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	r, ok := aliases[key]
	return r, ok
}

// MarshalJSON encodes a Role as its canonical string form, so the
// artifact's JSON is readable without a reverse lookup table.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a Role from its canonical string form.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := Parse(s)
	if !ok {
		return fmt.Errorf("role: unknown role %q", s)
	}
	*r = v
	return nil
}
